package errors

import "maps"

// ErrorCategory is the broad class of a failure. It selects the exit code.
type ErrorCategory string

const (
	// User input.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryVersion    ErrorCategory = "version"
	CategoryNotFound   ErrorCategory = "not_found"

	// External collaborators.
	CategoryGit        ErrorCategory = "git"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryHistory    ErrorCategory = "history"

	// Pipeline execution.
	CategoryBuild    ErrorCategory = "build"
	CategoryCanceled ErrorCategory = "canceled"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // stops the build
	SeverityError   ErrorSeverity = "error"   // fails the current operation
	SeverityWarning ErrorSeverity = "warning" // recovered locally
)

// ErrorContext is structured key/value context attached to an error.
type ErrorContext map[string]any

// Set adds or replaces a value, allocating the map when needed.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get returns the value stored under key.
func (c ErrorContext) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// GetString returns the value under key when it is a string.
func (c ErrorContext) GetString(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Merge returns a new context holding both maps; other wins on conflicts.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	out := make(ErrorContext, len(c)+len(other))
	maps.Copy(out, c)
	maps.Copy(out, other)
	return out
}
