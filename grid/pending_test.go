package grid

import (
	"reflect"
	"testing"
)

func TestPendingBuffer_UpsertKeepsOneEntryPerCell(t *testing.T) {
	var b PendingBuffer
	if !b.Upsert(PendingChange{RowID: "r1", ColumnID: "price", Value: 1.0}) {
		t.Fatalf("first upsert: got appended=false, want true")
	}
	b.Upsert(PendingChange{RowID: "r2", ColumnID: "price", Value: 2.0})
	if b.Upsert(PendingChange{RowID: "r1", ColumnID: "price", Value: 3.0}) {
		t.Fatalf("second upsert of same cell: got appended=true, want false")
	}

	want := []PendingChange{
		{RowID: "r1", ColumnID: "price", Value: 3.0},
		{RowID: "r2", ColumnID: "price", Value: 2.0},
	}
	if got := b.Changes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("changes: got %v, want %v", got, want)
	}
	if v, ok := b.Get("r1", "price"); !ok || v != 3.0 {
		t.Fatalf("get r1/price: got %v %v, want 3 true", v, ok)
	}
	if _, ok := b.Get("r1", "name"); ok {
		t.Fatalf("get r1/name: got ok=true, want false")
	}
}

func TestPendingBuffer_ChangesIsACopy(t *testing.T) {
	var b PendingBuffer
	if got := b.Changes(); got == nil || len(got) != 0 {
		t.Fatalf("empty changes: got %#v, want empty non-nil slice", got)
	}

	b.Upsert(PendingChange{RowID: "r1", ColumnID: "name", Value: "a"})
	got := b.Changes()
	got[0].Value = "mutated"
	if v, _ := b.Get("r1", "name"); v != "a" {
		t.Fatalf("buffer after mutating copy: got %v, want %q", v, "a")
	}

	b.Clear()
	if b.Len() != 0 {
		t.Fatalf("len after clear: got %d, want 0", b.Len())
	}
}
