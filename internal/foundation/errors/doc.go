// Package errors provides foundational, type-safe error primitives used across sitebuilder.
//
// This package contains classified error types and helpers for robust error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (usage, config, document, filesystem, etc.)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: exit code mapping and user-facing formatting
//
// Example usage:
//
//	err := errors.DocumentError("invalid published_date").
//		WithContext("path", doc.Path).
//		WithContext("field", "published_date").
//		WithCause(parseErr).
//		Build()
package errors
