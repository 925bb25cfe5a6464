package grid

import (
	"reflect"
	"testing"
)

func TestPinning_PinUnpinAndToggle(t *testing.T) {
	c := newControllers(newTestTable(2), Config{})

	c.pinning.PinColumnToLeft("price")
	c.pinning.PinColumnToLeft("price")
	c.pinning.PinColumnToLeft("name")
	if got := c.pinning.Pinning().Left; !reflect.DeepEqual(got, []string{"price", "name"}) {
		t.Fatalf("left pinned: got %v, want [price name]", got)
	}
	if got := c.pinning.Pinning().Right; got == nil || len(got) != 0 {
		t.Fatalf("right pinned: got %#v, want empty", got)
	}

	c.pinning.UnpinColumn("price")
	if got := c.pinning.Pinning().Left; !reflect.DeepEqual(got, []string{"name"}) {
		t.Fatalf("left pinned after unpin: got %v, want [name]", got)
	}

	c.pinning.TogglePinned("id")
	c.pinning.TogglePinned("name")
	if got := c.pinning.Pinning().Left; !reflect.DeepEqual(got, []string{"id"}) {
		t.Fatalf("left pinned after toggles: got %v, want [id]", got)
	}

	c.pinning.ToggleColumnPinning()
	if got := c.pinning.Pinning().Left; len(got) != 0 {
		t.Fatalf("left pinned after unpin all: got %v, want empty", got)
	}
}

func TestPinning_ReordersLeafColumns(t *testing.T) {
	tbl := newTestTable(2)
	c := newControllers(tbl, Config{})
	c.pinning.PinColumnToLeft("price")

	var ids []string
	for _, col := range tbl.LeafColumns() {
		ids = append(ids, col.ID)
	}
	if !reflect.DeepEqual(ids, []string{"price", "id", "name"}) {
		t.Fatalf("leaf columns: got %v, want [price id name]", ids)
	}
}

func TestPinning_Layouts(t *testing.T) {
	tbl := newTestTable(2)
	c := newControllers(tbl, Config{})
	c.pinning.PinColumnToLeft("id")
	c.pinning.PinColumnToLeft("name")

	col, _ := tbl.Column("name")
	if got := c.pinning.HeaderLayout(col); got != (CellLayout{Pinned: true, Left: 4, Width: 8}) {
		t.Fatalf("header layout: got %+v, want pinned at 4 width 8", got)
	}
	if got := c.pinning.CellLayout(col); got != c.pinning.HeaderLayout(col) {
		t.Fatalf("cell layout %+v differs from header layout", got)
	}

	price, _ := tbl.Column("price")
	if got := c.pinning.CellLayout(price); got.Pinned || got.Left != 0 {
		t.Fatalf("unpinned layout: got %+v", got)
	}
}

func TestPinning_DeferredFlush(t *testing.T) {
	m := New(newTestTable(2), Config{})
	p := m.Pinning()
	p.PinColumnToLeft("name")

	first := p.ForceUpdatePinning()
	second := p.ForceUpdatePinning()
	if first == nil || second == nil {
		t.Fatalf("expected flush commands")
	}

	stale := first().(flushLayoutMsg)
	if p.flush.accept(stale) {
		t.Fatalf("superseded flush accepted")
	}
	latest := second().(flushLayoutMsg)
	if !p.flush.accept(latest) {
		t.Fatalf("latest flush rejected")
	}

	m.Close()
	if p.flush.accept(latest) {
		t.Fatalf("flush accepted after close")
	}
	if cmd := p.ForceUpdatePinning(); cmd != nil {
		t.Fatalf("flush scheduled after close")
	}
	// Delivering a late flush to a closed grid is a no-op.
	m, _ = m.Update(latest)
	if !m.Closed() {
		t.Fatalf("model reopened by late flush")
	}
}
