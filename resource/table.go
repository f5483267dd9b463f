package resource

import (
	"sync"
)

// UnifiedTable implements the Table interface on a LocalBackend.
type UnifiedTable struct {
	backend   *LocalBackend
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

var _ Table = (*UnifiedTable)(nil)

// NewTable creates a new unified table with a LocalBackend.
func NewTable() *UnifiedTable {
	return &UnifiedTable{
		backend: NewLocalBackend(),
	}
}

// Insert adds a value and returns its handle.
func (t *UnifiedTable) Insert(typeID TypeID, value any) Handle {
	t.closeMu.RLock()
	if t.closed {
		t.closeMu.RUnlock()
		return 0
	}
	t.closeMu.RUnlock()

	handle, err := t.backend.Create(typeID, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})

	return handle
}

// Get retrieves a value by handle.
func (t *UnifiedTable) Get(handle Handle) (any, bool) {
	return t.backend.Get(handle)
}

// GetTyped retrieves a value only if it matches the expected type.
func (t *UnifiedTable) GetTyped(handle Handle, typeID TypeID) (any, bool) {
	actualTypeID, ok := t.backend.TypeID(handle)
	if !ok || actualTypeID != typeID {
		return nil, false
	}
	return t.backend.Get(handle)
}

// TypeOf returns the type tag of a live handle.
func (t *UnifiedTable) TypeOf(handle Handle) (TypeID, bool) {
	return t.backend.TypeID(handle)
}

// Remove drops an entry and returns its value. A value implementing
// Dropper is dropped after the entry leaves the table.
func (t *UnifiedTable) Remove(handle Handle) (any, error) {
	typeID, _ := t.backend.TypeID(handle)
	value, err := t.backend.Drop(handle)
	if err != nil {
		return nil, err
	}

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})

	return value, nil
}

// Borrow pins a handle until ReturnBorrow is called.
func (t *UnifiedTable) Borrow(handle Handle) bool {
	typeID, _ := t.backend.TypeID(handle)
	if !t.backend.Borrow(handle) {
		return false
	}
	t.notify(Event{Type: EventBorrowed, Handle: handle, TypeID: typeID})
	return true
}

// ReturnBorrow releases one borrow of a handle.
func (t *UnifiedTable) ReturnBorrow(handle Handle) bool {
	typeID, _ := t.backend.TypeID(handle)
	if !t.backend.ReturnBorrow(handle) {
		return false
	}
	t.notify(Event{Type: EventBorrowReturned, Handle: handle, TypeID: typeID})
	return true
}

// Borrows returns the number of outstanding borrows of a handle.
func (t *UnifiedTable) Borrows(handle Handle) uint32 {
	return t.backend.Borrows(handle)
}

// Subscribe adds an observer for lifecycle events.
func (t *UnifiedTable) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *UnifiedTable) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live entries.
func (t *UnifiedTable) Len() int {
	return t.backend.Len()
}

// Each iterates over all live entries.
func (t *UnifiedTable) Each(fn func(Handle, TypeID, any) bool) {
	t.backend.Each(fn)
}

// Clear drops all entries. Newer entries go first, and entries that are
// still borrowed are retried once their borrowers are gone.
func (t *UnifiedTable) Clear() {
	for {
		// Collect handles first to avoid holding the lock during Remove.
		var handles []Handle
		t.backend.Each(func(h Handle, _ TypeID, _ any) bool {
			handles = append(handles, h)
			return true
		})
		if len(handles) == 0 {
			return
		}

		removed := 0
		for i := len(handles) - 1; i >= 0; i-- {
			if _, err := t.Remove(handles[i]); err == nil {
				removed++
			}
		}
		if removed == 0 {
			return
		}
	}
}

// Close releases all entries and stops accepting operations.
func (t *UnifiedTable) Close() error {
	t.closeMu.Lock()
	t.closed = true
	t.closeMu.Unlock()

	return t.backend.Close()
}

func (t *UnifiedTable) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
