package eventstore

import (
	"context"
	"slices"
	"sync"
	"time"
)

// StatusRunning marks a build with no BuildCompleted event. Completed
// builds carry the pipeline outcome as their status.
const StatusRunning = "running"

const defaultHistorySize = 50

// BuildSummary is the read model of one build.
type BuildSummary struct {
	BuildID       string        `json:"build_id"`
	Status        string        `json:"status"`
	StartedAt     time.Time     `json:"started_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
	Duration      time.Duration `json:"duration,omitempty"`
	Input         BuildStarted  `json:"input"`
	Steps         int           `json:"steps"`
	FailedStep    string        `json:"failed_step,omitempty"`
	Error         string        `json:"error,omitempty"`
	Warnings      int           `json:"warnings"`
	LatestVersion string        `json:"latest_version,omitempty"`
	Version       string        `json:"version,omitempty"`
	Legacy        string        `json:"legacy_version,omitempty"`
	BuildDir      string        `json:"build_dir,omitempty"`
	FileCount     int           `json:"file_count"`
}

// BuildHistoryProjection folds journal events into build summaries.
type BuildHistoryProjection struct {
	mu      sync.RWMutex
	store   Store
	builds  map[string]*BuildSummary
	maxSize int
}

// NewBuildHistoryProjection keeps at most maxSize builds; zero or less
// selects the default.
func NewBuildHistoryProjection(store Store, maxSize int) *BuildHistoryProjection {
	if maxSize <= 0 {
		maxSize = defaultHistorySize
	}
	return &BuildHistoryProjection{
		store:   store,
		builds:  make(map[string]*BuildSummary),
		maxSize: maxSize,
	}
}

// Rebuild replaces the projection with the full contents of the store.
func (p *BuildHistoryProjection) Rebuild(ctx context.Context) error {
	events, err := p.store.GetRange(ctx, time.UnixMilli(0), time.Now().Add(time.Hour))
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.builds = make(map[string]*BuildSummary)
	for _, e := range events {
		p.applyLocked(e)
	}
	p.pruneLocked()
	return nil
}

// Apply folds a single event into the projection.
func (p *BuildHistoryProjection) Apply(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyLocked(e)
	p.pruneLocked()
}

func (p *BuildHistoryProjection) applyLocked(e Event) {
	if e.BuildID == "" {
		return
	}
	summary, ok := p.builds[e.BuildID]
	if !ok {
		summary = &BuildSummary{BuildID: e.BuildID, Status: StatusRunning, StartedAt: e.Timestamp}
		p.builds[e.BuildID] = summary
	}

	// undecodable payloads still count toward the build's presence
	switch e.Type {
	case TypeBuildStarted:
		summary.StartedAt = e.Timestamp
		_ = e.Decode(&summary.Input)

	case TypeStepCompleted:
		summary.Steps++

	case TypeBuildCompleted:
		var done BuildCompleted
		if err := e.Decode(&done); err != nil {
			return
		}
		at := e.Timestamp
		summary.CompletedAt = &at
		summary.Status = done.Outcome
		summary.Duration = time.Duration(done.DurationMS) * time.Millisecond
		summary.FailedStep = done.FailedStep
		summary.Error = done.Error
		summary.Warnings = done.Warnings
		summary.LatestVersion = done.LatestVersion
		summary.Version = done.Version
		summary.Legacy = done.Legacy
		summary.BuildDir = done.BuildDir
		summary.FileCount = done.FileCount
	}
}

// pruneLocked drops the oldest builds beyond maxSize.
func (p *BuildHistoryProjection) pruneLocked() {
	if len(p.builds) <= p.maxSize {
		return
	}
	for _, s := range p.sortedLocked()[p.maxSize:] {
		delete(p.builds, s.BuildID)
	}
}

// sortedLocked orders builds newest first, breaking ties by id.
func (p *BuildHistoryProjection) sortedLocked() []*BuildSummary {
	out := make([]*BuildSummary, 0, len(p.builds))
	for _, s := range p.builds {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *BuildSummary) int {
		if c := b.StartedAt.Compare(a.StartedAt); c != 0 {
			return c
		}
		switch {
		case a.BuildID < b.BuildID:
			return -1
		case a.BuildID > b.BuildID:
			return 1
		}
		return 0
	})
	return out
}

// Recent returns up to limit builds, newest first. A limit of zero or less
// returns everything held.
func (p *BuildHistoryProjection) Recent(limit int) []BuildSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()

	sorted := p.sortedLocked()
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]BuildSummary, len(sorted))
	for i, s := range sorted {
		out[i] = *s
	}
	return out
}

// GetBuild returns a copy of one build summary.
func (p *BuildHistoryProjection) GetBuild(buildID string) (BuildSummary, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.builds[buildID]
	if !ok {
		return BuildSummary{}, false
	}
	return *s, true
}

// LastCompleted returns the newest build that finished, if any.
func (p *BuildHistoryProjection) LastCompleted() (BuildSummary, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, s := range p.sortedLocked() {
		if s.CompletedAt != nil {
			return *s, true
		}
	}
	return BuildSummary{}, false
}
