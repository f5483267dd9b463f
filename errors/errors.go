package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBootstrap Phase = "bootstrap" // process-wide initialization
	PhaseIsolate   Phase = "isolate"   // isolate lifecycle
	PhaseTemplate  Phase = "template"  // object template building
	PhaseContext   Phase = "context"   // context lifecycle
	PhaseCompile   Phase = "compile"   // script compilation
	PhaseRun       Phase = "run"       // script execution
	PhaseValue     Phase = "value"     // value construction and access
	PhaseHandle    Phase = "handle"    // flat handle surface
	PhaseConfig    Phase = "config"    // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindNotInitialized     Kind = "not_initialized"
	KindAlreadyInitialized Kind = "already_initialized"
	KindDisposed           Kind = "disposed"
	KindIsolateMismatch    Kind = "isolate_mismatch"
	KindInvalidHandle      Kind = "invalid_handle"
	KindInvalidInput       Kind = "invalid_input"
	KindTypeMismatch       Kind = "type_mismatch"
	KindNotFound           Kind = "not_found"
	KindUnsupported        Kind = "unsupported"
	KindInvalidData        Kind = "invalid_data"
	KindOutstandingBorrow  Kind = "outstanding_borrow"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Handle string
	Origin string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Handle != "" || e.Origin != "" {
		b.WriteString(": ")
		if e.Handle != "" && e.Origin != "" {
			b.WriteString(e.Handle)
			b.WriteString(" from ")
			b.WriteString(e.Origin)
		} else if e.Handle != "" {
			b.WriteString(e.Handle)
		} else {
			b.WriteString("origin ")
			b.WriteString(e.Origin)
		}
	}

	if e.Detail != "" {
		if e.Handle != "" || e.Origin != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the property path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Handle sets the box type name (Isolate, Context, ObjectTemplate, Value)
func (b *Builder) Handle(t string) *Builder {
	b.err.Handle = t
	return b
}

// Origin sets the script origin
func (b *Builder) Origin(origin string) *Builder {
	b.err.Origin = origin
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotInitialized creates an error for use before bootstrap
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// AlreadyInitialized creates an error for a repeated bootstrap
func AlreadyInitialized(component string) *Error {
	return &Error{
		Phase:  PhaseBootstrap,
		Kind:   KindAlreadyInitialized,
		Detail: fmt.Sprintf("%s already initialized", component),
	}
}

// Disposed creates a use-after-dispose error
func Disposed(phase Phase, handle string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDisposed,
		Handle: handle,
		Detail: "used after dispose",
	}
}

// IsolateMismatch creates an error for boxes from different isolates
func IsolateMismatch(phase Phase, handle, want, got string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIsolateMismatch,
		Handle: handle,
		Detail: fmt.Sprintf("belongs to isolate %s, expected %s", got, want),
	}
}

// InvalidHandle creates an error for an unknown or stale handle
func InvalidHandle(phase Phase, handle string, h uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Handle: handle,
		Detail: fmt.Sprintf("handle %d is not live", h),
		Value:  h,
	}
}

// TypeMismatch creates an error for a value of the wrong kind
func TypeMismatch(phase Phase, path []string, handle, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		Handle: handle,
		Detail: fmt.Sprintf("expected %s", want),
	}
}

// OutstandingBorrow creates an error for disposing a box that others depend on
func OutstandingBorrow(phase Phase, handle string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutstandingBorrow,
		Handle: handle,
		Detail: "dependent boxes are still live",
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ConfigFailed creates a configuration loading error
func ConfigFailed(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("load %s", path),
		Cause:  cause,
	}
}
