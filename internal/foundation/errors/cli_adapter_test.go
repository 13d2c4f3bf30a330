package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("bad flag").Build(), 2},
		{"version", VersionError("malformed version").Build(), 3},
		{"not found", NotFoundError("missing manifest").Build(), 4},
		{"config", ConfigError("bad config").Build(), 7},
		{"git", GitError("open failed").Build(), 8},
		{"filesystem", FileSystemError("copy failed").Build(), 11},
		{"build", BuildError("step failed").Build(), 11},
		{"wrapped version", fmt.Errorf("step compose_next_version: %w", VersionError("x").Build()), 3},
		{"unclassified", fmt.Errorf("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	var code int
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	adapter.out = &out
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(NotFoundError("composer.json not found").WithContext("path", "/src").Build())

	if code != 4 {
		t.Errorf("exit code = %d, want 4", code)
	}
	if !strings.Contains(out.String(), "composer.json not found") {
		t.Errorf("output missing message: %q", out.String())
	}
	if !strings.Contains(out.String(), "/src") {
		t.Errorf("output missing context: %q", out.String())
	}
}
