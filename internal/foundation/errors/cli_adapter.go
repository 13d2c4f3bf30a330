package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter turns errors into exit codes and user-facing messages.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates an adapter writing to stderr.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger, out: os.Stderr, exit: os.Exit}
}

// ExitCodeFor maps err to a process exit code.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	ce, ok := AsClassified(err)
	if !ok {
		return 1
	}
	switch ce.Category() {
	case CategoryValidation:
		return 2
	case CategoryVersion:
		return 3
	case CategoryNotFound:
		return 4
	case CategoryConfig:
		return 7
	case CategoryGit:
		return 8
	case CategoryBuild, CategoryFileSystem:
		return 11
	case CategoryHistory:
		return 12
	case CategoryCanceled:
		return 130
	case CategoryInternal:
		return 10
	default:
		return 1
	}
}

// FormatError renders err for the terminal.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	ce, ok := AsClassified(err)
	if !ok || a.verbose {
		return fmt.Sprintf("Error: %v", err)
	}
	if len(ce.Context()) == 0 {
		return fmt.Sprintf("Error: %v", err)
	}
	return fmt.Sprintf("Error: %v %v", err, map[string]any(ce.Context()))
}

// HandleError logs err, prints it and exits with the mapped code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	a.logError(err)
	_, _ = fmt.Fprintln(a.out, a.FormatError(err))
	a.exit(a.ExitCodeFor(err))
}

func (a *CLIErrorAdapter) logError(err error) {
	ce, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", slog.Any("error", err))
		return
	}
	level := slog.LevelError
	if ce.Severity() == SeverityWarning {
		level = slog.LevelWarn
	}
	if !a.verbose && level < slog.LevelError {
		return
	}
	a.logger.LogAttrs(context.Background(), level, ce.Message(),
		slog.String("category", string(ce.Category())),
		slog.String("severity", string(ce.Severity())))
}
