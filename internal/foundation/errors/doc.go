// Package errors provides the classified error primitives used across artifactbuilder.
//
// Every failure that leaves a package boundary is a ClassifiedError carrying a
// category, a severity and optional structured context. Categories drive the CLI
// exit code; sentinels created with the builder compare by category and message,
// so errors.Is keeps working after a sentinel was enriched with WithContext.
//
//	var ErrParse = errors.VersionError("malformed version").Build()
//
//	return errors.WrapError(err, errors.CategoryFileSystem, "copy failed").
//		WithContext("path", p).
//		Build()
package errors
