package config

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/artifactbuilder/internal/versioning"
)

var coreVersionPattern = regexp.MustCompile(`^\d+\.x$`)

// Validate checks a configuration after defaults were applied.
func (c *Config) Validate() error {
	if filepath.IsAbs(c.ArtifactDir) {
		return invalid("artifact_dir", c.ArtifactDir, "must be relative to source_dir")
	}
	clean := path.Clean(filepath.ToSlash(c.ArtifactDir))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return invalid("artifact_dir", c.ArtifactDir, "must be a directory inside source_dir")
	}
	if !coreVersionPattern.MatchString(c.CoreVersion) {
		return invalid("core_version", c.CoreVersion, "must look like 8.x")
	}
	if c.Bump != "" {
		if _, ok := versioning.ParsePart(c.Bump); !ok {
			if _, err := versioning.ParseSemantic(c.Bump); err != nil {
				return invalid("bump", c.Bump, "must be a version part or a semantic version")
			}
		}
	}
	if strings.ContainsAny(c.ArtifactType, `/\`) {
		return invalid("artifact_type", c.ArtifactType, "must be a single path segment")
	}
	if c.History.Enabled && c.History.Path == "" {
		return invalid("history.path", c.History.Path, "required when history is enabled")
	}
	return nil
}

func invalid(field, value, reason string) error {
	return ErrConfigInvalid.
		WithContext("field", field).
		WithContext("value", value).
		WithContext("reason", reason)
}
