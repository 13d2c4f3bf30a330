package config

const (
	defaultSourceDir   = "."
	defaultArtifactDir = "artifact"
	defaultCoreVersion = "8.x"
	defaultHistoryPath = ".artifactbuilder/history.db"
)

func applyDefaults(cfg *Config) {
	if cfg.SourceDir == "" {
		cfg.SourceDir = defaultSourceDir
	}
	if cfg.ArtifactDir == "" {
		cfg.ArtifactDir = defaultArtifactDir
	}
	if cfg.CoreVersion == "" {
		cfg.CoreVersion = defaultCoreVersion
	}
	if cfg.History.Path == "" {
		cfg.History.Path = defaultHistoryPath
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
}
