// Package capi is the flat, handle-based surface of the engine.
//
// Every function takes and returns resource.Handle values, plain structs
// and strings, so the surface can sit behind a foreign-function boundary.
// Boxes live in one process-wide handle table:
//
//	if err := capi.Init(); err != nil {
//	    log.Fatal(err)
//	}
//
//	iso := capi.NewIsolate()
//	ctx := capi.NewContext(iso, 0)
//
//	rtn := capi.RunScript(ctx, "6 * 7", "main.js")
//	if rtn.Error != nil {
//	    log.Fatal(rtn.Error)
//	}
//	fmt.Println(capi.ValueToInt32(rtn.Value)) // 42
//
//	capi.ValueDispose(rtn.Value)
//	capi.ContextDispose(ctx)
//	capi.IsolateDispose(iso)
//
// Contexts, templates and values borrow the handle of their isolate, so
// IsolateDispose fails with an outstanding-borrow error until they are all
// disposed. Handle 0 is the null handle and dispose functions accept it.
//
// Unknown or stale handles fail with an invalid-handle error where a
// function returns one, and yield zero results elsewhere. Misuse the
// engine reports by panicking with *errors.Error is recovered at this
// boundary in the same way.
package capi
