package errors

// ErrorBuilder constructs ClassifiedError values fluently.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts a builder for category with severity error.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: SeverityError,
		message:  message,
		context:  make(ErrorContext),
	}}
}

// WrapError starts a builder that wraps cause.
func WrapError(cause error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.err.cause = cause
	return b
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.Set(key, value)
	return b
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder { return b.WithSeverity(SeverityFatal) }

func (b *ErrorBuilder) Warning() *ErrorBuilder { return b.WithSeverity(SeverityWarning) }

// Build returns the finished error.
func (b *ErrorBuilder) Build() *ClassifiedError {
	out := b.err
	return &out
}

// ConfigError creates a configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// ValidationError creates an input validation error.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

// VersionError creates a version parsing or bump error.
func VersionError(message string) *ErrorBuilder {
	return NewError(CategoryVersion, message).Fatal()
}

// NotFoundError creates a missing prerequisite error.
func NotFoundError(message string) *ErrorBuilder {
	return NewError(CategoryNotFound, message).Fatal()
}

// GitError creates a version-control error.
func GitError(message string) *ErrorBuilder {
	return NewError(CategoryGit, message)
}

// FileSystemError creates a filesystem error.
func FileSystemError(message string) *ErrorBuilder {
	return NewError(CategoryFileSystem, message)
}

// HistoryError creates a build history storage error.
func HistoryError(message string) *ErrorBuilder {
	return NewError(CategoryHistory, message)
}

// BuildError creates a build step error.
func BuildError(message string) *ErrorBuilder {
	return NewError(CategoryBuild, message).Fatal()
}

// InternalError creates an internal error.
func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
