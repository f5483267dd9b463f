package resource

// Handle is an opaque reference to an entry in a table. The low bits hold
// the slot, the high bits a generation that changes every time the slot is
// reused. Handle 0 is reserved and always invalid.
type Handle uint32

// TypeID tags the kind of value a handle refers to.
type TypeID uint32

// EventType identifies a lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	EventBorrowed
	EventBorrowReturned
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	case EventBorrowed:
		return "borrowed"
	case EventBorrowReturned:
		return "borrow_returned"
	default:
		return "unknown"
	}
}

// Event represents a handle lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	TypeID TypeID
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
// Notifications are delivered synchronously, outside the backend lock.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface. Function
// values are not comparable, so an ObserverFunc cannot be unsubscribed.
type ObserverFunc func(Event)

func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Backend provides the underlying storage for a table.
type Backend interface {
	// Create stores a value and returns a handle.
	Create(typeID TypeID, value any) (Handle, error)

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// TypeID returns the type tag of a live handle.
	TypeID(handle Handle) (TypeID, bool)

	// Drop removes an entry and returns its value. It fails with
	// ErrNotFound for unknown handles and ErrOutstandingBorrow while the
	// entry is borrowed.
	Drop(handle Handle) (any, error)

	// Borrow increments the borrow count of a live handle.
	Borrow(handle Handle) bool

	// ReturnBorrow decrements the borrow count of a live handle.
	ReturnBorrow(handle Handle) bool

	// Borrows returns the current borrow count.
	Borrows(handle Handle) uint32

	// Close drops every remaining entry.
	Close() error
}

// Table manages handles with type information and observer support.
type Table interface {
	// Insert adds a value and returns its handle, or 0 when the table is
	// closed or full.
	Insert(typeID TypeID, value any) Handle

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// GetTyped retrieves a value only if it matches the expected type.
	GetTyped(handle Handle, typeID TypeID) (any, bool)

	// Remove drops an entry, running its Dropper, and returns its value.
	Remove(handle Handle) (any, error)

	// Borrow pins a handle so that Remove fails until the borrow is
	// returned.
	Borrow(handle Handle) bool

	// ReturnBorrow releases one borrow.
	ReturnBorrow(handle Handle) bool

	// Subscribe adds an observer for lifecycle events.
	Subscribe(Observer)

	// Unsubscribe removes an observer.
	Unsubscribe(Observer)

	// Len returns the number of live entries.
	Len() int

	// Clear drops all entries.
	Clear()

	// Close releases all entries and stops accepting operations.
	Close() error
}

// TypedTable provides type-safe access to entries of a single type.
type TypedTable[T any] interface {
	// Insert adds a value and returns its handle.
	Insert(value T) Handle

	// Get retrieves a value by handle.
	Get(handle Handle) (T, bool)

	// Remove drops an entry and returns its value.
	Remove(handle Handle) (T, error)

	// Len returns the number of live entries of this type.
	Len() int

	// Each iterates over the live entries of this type.
	Each(func(Handle, T) bool)
}

// Dropper is optionally implemented by values that need cleanup when their
// handle is removed.
type Dropper interface {
	Drop()
}
