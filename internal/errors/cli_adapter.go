package errors

import (
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the sitegen CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if be, ok := err.(*BuildError); ok {
		return a.exitCodeFromBuildError(be)
	}

	return 1
}

// exitCodeFromBuildError maps BuildError categories to exit codes.
func (a *CLIErrorAdapter) exitCodeFromBuildError(err *BuildError) int {
	switch err.Category {
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryCatalog:
		return 2 // Invalid input data
	case CategoryTemplate, CategorySchema:
		return 3 // Page generation error
	case CategoryManifest:
		return 4 // Manifest policy error
	case CategorySitemap, CategoryFileSystem:
		return 11 // Output error
	case CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if be, ok := err.(*BuildError); ok {
		return a.formatBuildError(be)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatBuildError formats a BuildError for display.
func (a *CLIErrorAdapter) formatBuildError(err *BuildError) string {
	if a.verbose {
		return err.Error()
	}

	msg := fmt.Sprintf("Error: %s", err.Message)
	if len(err.Context) > 0 {
		for k, v := range err.Context {
			msg += fmt.Sprintf("\n  %s: %v", k, v)
		}
	}
	return msg
}

// LogError emits the error through structured logging with its context.
func (a *CLIErrorAdapter) LogError(err error) {
	if err == nil {
		return
	}

	if be, ok := err.(*BuildError); ok {
		attrs := []any{
			"category", string(be.Category),
			"severity", string(be.Severity),
		}
		for k, v := range be.Context {
			attrs = append(attrs, k, v)
		}
		if be.Cause != nil {
			attrs = append(attrs, "cause", be.Cause.Error())
		}
		a.logger.Error(be.Message, attrs...)
		return
	}

	a.logger.Error(err.Error())
}
