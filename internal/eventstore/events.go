package eventstore

import "time"

// BuildStarted describes the inputs of a run.
type BuildStarted struct {
	SourceDir   string `json:"source_dir"`
	ArtifactDir string `json:"artifact_dir"`
	CoreVersion string `json:"core_version"`
	Bump        string `json:"bump"`
	// SourceCommit is the HEAD commit the build started from, when known.
	SourceCommit string `json:"source_commit,omitempty"`
}

// StepCompleted records one executed or canceled step.
type StepCompleted struct {
	Step       string `json:"step"`
	Result     string `json:"result"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// BuildCompleted records the outcome of a run and what it produced.
type BuildCompleted struct {
	Outcome       string `json:"outcome"`
	FailedStep    string `json:"failed_step,omitempty"`
	Error         string `json:"error,omitempty"`
	Warnings      int    `json:"warnings"`
	DurationMS    int64  `json:"duration_ms"`
	LatestVersion string `json:"latest_version,omitempty"`
	Version       string `json:"version,omitempty"`
	Legacy        string `json:"legacy_version,omitempty"`
	ArtifactType  string `json:"artifact_type,omitempty"`
	BuildDir      string `json:"build_dir,omitempty"`
	FileCount     int    `json:"file_count"`
}

func NewBuildStarted(buildID string, at time.Time, p BuildStarted) (Event, error) {
	return newEvent(buildID, TypeBuildStarted, at, p)
}

func NewStepCompleted(buildID string, at time.Time, p StepCompleted) (Event, error) {
	return newEvent(buildID, TypeStepCompleted, at, p)
}

func NewBuildCompleted(buildID string, at time.Time, p BuildCompleted) (Event, error) {
	return newEvent(buildID, TypeBuildCompleted, at, p)
}
