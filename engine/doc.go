// Package engine provides the JavaScript object model: isolates, contexts,
// object templates and values, backed by the goja ECMAScript engine.
//
// # Architecture
//
// The engine package provides four caller-owned box types:
//
//	Isolate        - Execution lock, scratch realm and termination state
//	Context        - A realm with its own global object and builtins
//	ObjectTemplate - Ordered property blueprint applied to a context's global
//	Value          - An engine value tagged with its isolate and context
//
// Each box is created by a New* function and released with Dispose.
//
// # Entry Discipline
//
// Every operation that touches engine state goes through one helper:
//
//	s := iso.enter(phase) // lock plus disposed check
//	defer s.exit()        // released in reverse order on every path
//
// Calls against one isolate are therefore serialized. TerminateExecution is
// the exception: it uses a separate lock so it can interrupt a script that
// is holding the execution lock.
//
// # Script Failures
//
// RunScript never panics on script failures. Compile errors, thrown
// exceptions and termination all arrive as an RtnError with a message, an
// optional location and an optional stack:
//
//	rtn := ctx.RunScript("throw new Error('boom')", "main.js")
//	if rtn.Error != nil {
//	    fmt.Printf("%+v\n", rtn.Error) // Error: boom, then frames
//	}
//
// Misuse of the binding itself (use after dispose, mixing isolates, calls
// before Init) panics with a structured *errors.Error.
//
// # Value Predicates
//
// Value.Kind classifies a value without running script code: no getters,
// no proxy traps, no user conversions. The Is* predicates read from it.
//
// # WebAssembly
//
// With Config.EnableWebAssembly, contexts get a WebAssembly global whose
// Module constructor compiles bytes with wazero. Such module objects report
// IsWasmModuleObject.
package engine
