// Package resource provides the handle table behind the flat API.
//
// Handles are small integers standing in for Go values that callers on the
// other side of a handle boundary cannot hold directly: isolates, contexts,
// object templates and values. Each handle carries a type tag, and a
// generation so that a handle to a freed slot never resolves to whatever
// reuses the slot.
//
// # Handle Table
//
// The UnifiedTable maps handles to Go values:
//
//	table := resource.NewTable()
//
//	// Insert a value, get a handle
//	handle := table.Insert(typeID, myValue)
//
//	// Retrieve value by handle
//	value, ok := table.Get(handle)
//
//	// Remove, running the value's Drop method if it has one
//	value, err := table.Remove(handle)
//
// # Type Safety
//
// Each kind of value gets its own type ID, and Typed gives a view of the
// table restricted to one of them:
//
//	isolates := resource.NewTyped[*engine.Isolate](table, TypeIsolate)
//	iso, ok := isolates.Get(handle) // !ok for handles of any other type
//
// # Borrows
//
// A handle can be borrowed by dependents. Remove refuses to drop a handle
// with outstanding borrows and returns ErrOutstandingBorrow; dependents
// return their borrow when they are dropped:
//
//	table.Borrow(isoHandle)
//	ctxHandle := table.Insert(TypeContext, ctxBox) // ctxBox.Drop returns the borrow
//
// # Observers
//
// Observers receive every successful lifecycle operation:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("%s %d", e.Type, e.Handle)
//	}))
//
// Close drops the remaining entries newest first, so dependents are
// released before the handles they borrow.
package resource
