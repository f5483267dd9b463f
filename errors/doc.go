// Package errors provides structured error types for the js-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: property path, handle type, script origin
// and cause chain.
//
// Script failures (syntax errors, thrown exceptions, termination) are not
// reported through this package; they travel as plain-data engine.RtnError
// values. This package covers misuse of the binding itself: calls before
// bootstrap, use of disposed boxes, mixing isolates, stale handles and
// invalid configuration.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseTemplate, errors.KindIsolateMismatch).
//		Path("config", "limits").
//		Handle("Value").
//		Detail("value belongs to isolate %s", id).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Disposed(errors.PhaseContext, "Context")
//	err := errors.InvalidHandle(errors.PhaseHandle, "Value", 12)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
