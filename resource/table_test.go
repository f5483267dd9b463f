package resource

import (
	"errors"
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

func TestUnifiedTable_Basic(t *testing.T) {
	table := NewTable()

	// Insert
	h := table.Insert(1, "test")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	// Get
	val, ok := table.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	// GetTyped with correct type
	if _, ok := table.GetTyped(h, 1); !ok {
		t.Fatal("GetTyped with correct type failed")
	}

	// GetTyped with wrong type
	if _, ok := table.GetTyped(h, 2); ok {
		t.Fatal("GetTyped with wrong type should fail")
	}

	if typeID, ok := table.TypeOf(h); !ok || typeID != 1 {
		t.Fatalf("TypeOf = %d, %v", typeID, ok)
	}

	// Remove
	val, err := table.Remove(h)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	// Len should be 0
	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
}

func TestUnifiedTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := table.Insert(1, "test")
	table.Borrow(h)
	table.ReturnBorrow(h)
	table.Remove(h)

	want := []EventType{EventCreated, EventBorrowed, EventBorrowReturned, EventDropped}
	if len(obs.events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(obs.events))
	}
	for i, e := range obs.events {
		if e.Type != want[i] {
			t.Errorf("event %d = %v, want %v", i, e.Type, want[i])
		}
		if e.Handle != h || e.TypeID != 1 {
			t.Errorf("event %d = %+v", i, e)
		}
	}

	// Failed operations are silent
	table.Remove(h)
	table.Borrow(h)
	if len(obs.events) != len(want) {
		t.Fatal("failed operations should not notify")
	}

	// Unsubscribe
	table.Unsubscribe(obs)
	table.Insert(1, "test2")
	if len(obs.events) != len(want) {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestUnifiedTable_ObserverFunc(t *testing.T) {
	table := NewTable()

	var created int
	table.Subscribe(ObserverFunc(func(e Event) {
		if e.Type == EventCreated {
			created++
		}
	}))
	table.Insert(1, "a")
	table.Insert(2, "b")

	if created != 2 {
		t.Fatalf("created = %d, want 2", created)
	}
}

func TestUnifiedTable_BorrowBlocksRemove(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	owner := table.Insert(1, d)
	if !table.Borrow(owner) {
		t.Fatal("Borrow failed")
	}

	if _, err := table.Remove(owner); !errors.Is(err, ErrOutstandingBorrow) {
		t.Fatalf("Remove = %v, want ErrOutstandingBorrow", err)
	}
	if d.count != 0 {
		t.Fatal("a refused Remove must not drop the value")
	}

	table.ReturnBorrow(owner)
	if table.Borrows(owner) != 0 {
		t.Fatalf("Borrows = %d", table.Borrows(owner))
	}
	if _, err := table.Remove(owner); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if d.count != 1 {
		t.Fatalf("Drop called %d times", d.count)
	}
}

// borrower returns its borrow of owner when dropped.
type borrower struct {
	table *UnifiedTable
	owner Handle
}

func (b *borrower) Drop() {
	b.table.ReturnBorrow(b.owner)
}

func TestUnifiedTable_Clear(t *testing.T) {
	table := NewTable()

	owner := table.Insert(1, "owner")
	table.Insert(1, "b")
	for i := 0; i < 3; i++ {
		table.Borrow(owner)
		table.Insert(2, &borrower{table: table, owner: owner})
	}

	if table.Len() != 5 {
		t.Fatalf("Expected Len() == 5, got %d", table.Len())
	}

	table.Clear()

	if table.Len() != 0 {
		t.Fatalf("Expected Len() == 0 after Clear, got %d", table.Len())
	}
}

func TestUnifiedTable_ClearStopsOnStuckBorrow(t *testing.T) {
	table := NewTable()

	owner := table.Insert(1, "owner")
	table.Borrow(owner)
	table.Insert(1, "other")

	table.Clear()

	if table.Len() != 1 {
		t.Fatalf("Expected the borrowed entry to survive, Len() = %d", table.Len())
	}
}

func TestUnifiedTable_Close(t *testing.T) {
	table := NewTable()

	d := &dropCounter{}
	table.Insert(1, d)
	table.Insert(1, "b")

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if d.count != 1 {
		t.Fatalf("Close should drop remaining values, Drop called %d times", d.count)
	}

	// Insert should fail after Close
	if h := table.Insert(1, "c"); h != 0 {
		t.Fatal("Expected Insert to fail after Close")
	}
}

type dropCounter struct {
	count int
}

func (d *dropCounter) Drop() {
	d.count++
}

func TestUnifiedTable_DropperInterface(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	h := table.Insert(1, d)
	table.Remove(h)

	if d.count != 1 {
		t.Fatalf("Expected Drop() to be called once, called %d times", d.count)
	}
}

func TestEventType_String(t *testing.T) {
	tests := map[EventType]string{
		EventCreated:        "created",
		EventDropped:        "dropped",
		EventBorrowed:       "borrowed",
		EventBorrowReturned: "borrow_returned",
		EventType(99):       "unknown",
	}
	for et, want := range tests {
		if got := et.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", et, got, want)
		}
	}
}
