package resource

import (
	"errors"
	"testing"
)

type widget struct{ name string }

func TestTyped(t *testing.T) {
	table := NewTable()
	widgets := NewTyped[*widget](table, 1)
	labels := NewTyped[string](table, 2)

	w := widgets.Insert(&widget{"a"})
	l := labels.Insert("label")
	widgets.Insert(&widget{"b"})

	if got, ok := widgets.Get(w); !ok || got.name != "a" {
		t.Fatalf("Get = %v, %v", got, ok)
	}
	if _, ok := widgets.Get(l); ok {
		t.Fatal("typed view should not see other types")
	}
	if widgets.Len() != 2 || labels.Len() != 1 {
		t.Fatalf("Len = %d, %d", widgets.Len(), labels.Len())
	}

	var names []string
	widgets.Each(func(_ Handle, w *widget) bool {
		names = append(names, w.name)
		return true
	})
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Each = %v", names)
	}

	if _, err := widgets.Remove(l); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Remove across types = %v, want ErrNotFound", err)
	}
	if got, err := widgets.Remove(w); err != nil || got.name != "a" {
		t.Fatalf("Remove = %v, %v", got, err)
	}
	if table.Len() != 2 {
		t.Fatalf("table Len = %d", table.Len())
	}
	if widgets.TypeID() != 1 || widgets.Table() != table {
		t.Fatal("view accessors")
	}
}
