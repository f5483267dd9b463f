package resource

import "fmt"

// Typed is a view of a UnifiedTable restricted to one type tag.
type Typed[T any] struct {
	table  *UnifiedTable
	typeID TypeID
}

var _ TypedTable[int] = (*Typed[int])(nil)

// NewTyped returns a typed view of table for typeID.
func NewTyped[T any](table *UnifiedTable, typeID TypeID) *Typed[T] {
	return &Typed[T]{table: table, typeID: typeID}
}

// TypeID returns the tag of the view.
func (t *Typed[T]) TypeID() TypeID {
	return t.typeID
}

// Table returns the underlying table.
func (t *Typed[T]) Table() *UnifiedTable {
	return t.table
}

// Insert adds a value and returns its handle.
func (t *Typed[T]) Insert(value T) Handle {
	return t.table.Insert(t.typeID, value)
}

// Get retrieves a value by handle. Handles of other types are not found.
func (t *Typed[T]) Get(handle Handle) (T, bool) {
	var zero T
	v, ok := t.table.GetTyped(handle, t.typeID)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Remove drops an entry of this type and returns its value.
func (t *Typed[T]) Remove(handle Handle) (T, error) {
	var zero T
	if _, ok := t.Get(handle); !ok {
		return zero, ErrNotFound
	}
	v, err := t.table.Remove(handle)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("resource: handle %d held %T", handle, v)
	}
	return typed, nil
}

// Len returns the number of live entries of this type.
func (t *Typed[T]) Len() int {
	n := 0
	t.Each(func(Handle, T) bool {
		n++
		return true
	})
	return n
}

// Each iterates over the live entries of this type.
func (t *Typed[T]) Each(fn func(Handle, T) bool) {
	t.table.Each(func(h Handle, typeID TypeID, v any) bool {
		if typeID != t.typeID {
			return true
		}
		typed, ok := v.(T)
		if !ok {
			return true
		}
		return fn(h, typed)
	})
}
