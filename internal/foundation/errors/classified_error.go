package errors

import (
	stderrors "errors"
	"fmt"
)

// ClassifiedError is a structured error with category, severity and context.
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

func (e *ClassifiedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

func (e *ClassifiedError) Category() ErrorCategory { return e.category }

func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }

func (e *ClassifiedError) Message() string { return e.message }

func (e *ClassifiedError) Context() ErrorContext { return e.context }

// WithContext returns a copy of e with key set in its context.
// The receiver is left untouched so package-level sentinels stay immutable.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	cp := *e
	cp.context = e.context.Merge(ErrorContext{key: value})
	return &cp
}

// Wrap returns a copy of e with cause attached.
func (e *ClassifiedError) Wrap(cause error) *ClassifiedError {
	cp := *e
	cp.cause = cause
	return &cp
}

// Is reports whether target is a ClassifiedError with the same category and message.
func (e *ClassifiedError) Is(target error) bool {
	other, ok := target.(*ClassifiedError)
	if !ok {
		return false
	}
	return e.category == other.category && e.message == other.message
}

func (e *ClassifiedError) IsFatal() bool { return e.severity == SeverityFatal }

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var ce *ClassifiedError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsClassified reports whether err's chain holds a ClassifiedError.
func IsClassified(err error) bool {
	_, ok := AsClassified(err)
	return ok
}

// HasCategory reports whether err's chain holds a ClassifiedError of category.
func HasCategory(err error, category ErrorCategory) bool {
	ce, ok := AsClassified(err)
	return ok && ce.category == category
}

// GetCategory returns the category of err, or CategoryInternal when unclassified.
func GetCategory(err error) ErrorCategory {
	if ce, ok := AsClassified(err); ok {
		return ce.category
	}
	return CategoryInternal
}
