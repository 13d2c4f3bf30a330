package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("builder fields", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			Fatal().
			WithContext("file", "artifactbuilder.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if !err.IsFatal() {
			t.Error("expected fatal severity")
		}
		if file, ok := err.Context().GetString("file"); !ok || file != "artifactbuilder.yaml" {
			t.Errorf("expected file context, got %q", file)
		}
	})

	t.Run("sentinel survives context and wrapping", func(t *testing.T) {
		sentinel := VersionError("malformed version").Build()
		enriched := sentinel.WithContext("input", "1.x")
		wrapped := fmt.Errorf("step failed: %w", enriched)

		if !errors.Is(wrapped, sentinel) {
			t.Error("expected errors.Is to match sentinel through wrapping")
		}
		if len(sentinel.Context()) != 0 {
			t.Error("WithContext must not mutate the sentinel")
		}
		if !HasCategory(wrapped, CategoryVersion) {
			t.Error("expected version category in chain")
		}
	})

	t.Run("different message is a different error", func(t *testing.T) {
		a := VersionError("a").Build()
		b := VersionError("b").Build()
		if errors.Is(a, b) {
			t.Error("errors with different messages must not match")
		}
	})

	t.Run("wrap keeps cause", func(t *testing.T) {
		cause := errors.New("disk full")
		err := WrapError(cause, CategoryFileSystem, "copy failed").Build()
		if !errors.Is(err, cause) {
			t.Error("expected cause in chain")
		}
		if err.Error() != "copy failed: disk full" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("unclassified defaults to internal", func(t *testing.T) {
		if GetCategory(errors.New("x")) != CategoryInternal {
			t.Error("expected internal category")
		}
		if IsClassified(errors.New("x")) {
			t.Error("plain error is not classified")
		}
	})
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		builder  *ErrorBuilder
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"config", ConfigError("x"), CategoryConfig, SeverityFatal},
		{"validation", ValidationError("x"), CategoryValidation, SeverityFatal},
		{"version", VersionError("x"), CategoryVersion, SeverityFatal},
		{"not found", NotFoundError("x"), CategoryNotFound, SeverityFatal},
		{"git", GitError("x"), CategoryGit, SeverityError},
		{"filesystem", FileSystemError("x"), CategoryFileSystem, SeverityError},
		{"history", HistoryError("x"), CategoryHistory, SeverityError},
		{"build", BuildError("x"), CategoryBuild, SeverityFatal},
		{"internal", InternalError("x"), CategoryInternal, SeverityFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.Build()
			if err.Category() != tt.category {
				t.Errorf("category = %s, want %s", err.Category(), tt.category)
			}
			if err.Severity() != tt.severity {
				t.Errorf("severity = %s, want %s", err.Severity(), tt.severity)
			}
		})
	}
}
