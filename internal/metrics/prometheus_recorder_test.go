package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStepDuration("copy_files", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStepResult("copy_files", ResultSuccess)
	pr.IncBuildOutcome("success")
	pr.SetCollectedFiles("module", 7)
	pr.IncVersionBump("minor")
	pr.IncVersionBump("minor")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
	if got := testutil.ToFloat64(pr.collectedFiles.WithLabelValues("module")); got != 7 {
		t.Fatalf("collected files = %v, want 7", got)
	}
	if got := testutil.ToFloat64(pr.versionBumps.WithLabelValues("minor")); got != 2 {
		t.Fatalf("version bumps = %v, want 2", got)
	}
}

func TestPrometheusRecorderNilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveStepDuration("x", time.Second)
	pr.IncBuildOutcome("success")
	if err := pr.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Fatalf("nil recorder textfile: %v", err)
	}
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome("warning")
	path := filepath.Join(t.TempDir(), "artifactbuilder.prom")
	if err := pr.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), `artifactbuilder_build_outcomes_total{outcome="warning"} 1`) {
		t.Fatalf("textfile missing outcome counter:\n%s", data)
	}
}

func TestWriteTextfileMissingDir(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	err := pr.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !strings.Contains(err.Error(), "cannot write metrics textfile") {
		t.Fatalf("unexpected error: %v", err)
	}
}
