// Package jsruntime provides a handle-based JavaScript embedding layer for Go.
//
// The library exposes an engine object model made of isolates, contexts,
// object templates and values as plain boxes with explicit lifetimes, and
// normalizes every script failure into a single plain-data error. The
// underlying ECMAScript engine is goja.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	jsruntime/         Root package with the shared Disposer interface
//	├── engine/        Isolates, contexts, templates, values, exception translation
//	├── capi/          Flat handle-based surface mirroring the engine entry points
//	├── resource/      Handle table with borrow tracking used by capi
//	├── errors/        Structured error types for misuse and configuration
//	├── metrics/       Prometheus collectors for heap statistics and script runs
//	├── config/        YAML/TOML configuration for the runner
//	└── cmd/run/       Command-line runner and interactive REPL
//
// # Quick Start
//
//	if err := engine.Init(); err != nil {
//	    log.Fatal(err)
//	}
//
//	iso := engine.NewIsolate()
//	defer iso.Dispose()
//
//	global := engine.NewObjectTemplate(iso)
//	defer global.Dispose()
//	answer := engine.NewValueInteger(iso, 42)
//	defer answer.Dispose()
//	global.Set("answer", answer, engine.ReadOnly)
//
//	ctx := engine.NewContext(iso, global)
//	defer ctx.Dispose()
//
//	rtn := ctx.RunScript("answer + 1", "main.js")
//	if rtn.Error != nil {
//	    log.Fatal(rtn.Error)
//	}
//	defer rtn.Value.Dispose()
//	fmt.Println(rtn.Value.Int32()) // 43
//
// # Thread Safety
//
// Every entry point that touches an isolate holds that isolate's execution
// lock for the duration of the call, so calls against the same isolate are
// serialized. Distinct isolates run in parallel without contention.
// TerminateExecution is the only operation meant to be called while another
// goroutine is blocked in RunScript.
//
// # Memory Model
//
// Isolate, Context, ObjectTemplate and Value boxes are owned by the caller
// from creation until the matching Dispose call. Values produced inside a
// call and not returned are reclaimed by the Go garbage collector once the
// call ends.
package jsruntime
