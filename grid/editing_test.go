package grid

import (
	"reflect"
	"testing"
)

func editableControllers(rec *recorder, n int) controllers {
	return newControllers(newTestTable(n), rec.config(Config{Editable: true}))
}

func TestEditing_ToggleDiscardsPendingChanges(t *testing.T) {
	var rec recorder
	c := editableControllers(&rec, 3)

	c.editing.ToggleReadOnly()
	if c.store.ReadOnly() {
		t.Fatalf("read-only after first toggle: got true, want false")
	}
	c.editing.HandleCellChange("r1", "price", 42.0)
	c.editing.ToggleReadOnly()

	if !c.store.ReadOnly() {
		t.Fatalf("read-only after second toggle: got false, want true")
	}
	if got := c.store.PendingChanges(); len(got) != 0 {
		t.Fatalf("pending after discard: got %v, want empty", got)
	}
	if len(rec.saves) != 0 {
		t.Fatalf("save notifications: got %d, want 0", len(rec.saves))
	}
	if rec.toggles != 2 {
		t.Fatalf("toggle notifications: got %d, want 2", rec.toggles)
	}
}

func TestEditing_SaveEmitsOnceAndReturnsToReadOnly(t *testing.T) {
	var rec recorder
	c := editableControllers(&rec, 3)

	c.editing.ToggleReadOnly()
	c.editing.HandleCellChange("r1", "price", 41.0)
	c.editing.HandleCellChange("r1", "price", 42.0)
	c.editing.SaveChanges()

	want := [][]PendingChange{{{RowID: "r1", ColumnID: "price", Value: 42.0}}}
	if !reflect.DeepEqual(rec.saves, want) {
		t.Fatalf("saves: got %v, want %v", rec.saves, want)
	}
	if !c.store.ReadOnly() {
		t.Fatalf("read-only after save: got false, want true")
	}
	if got := c.store.PendingChanges(); len(got) != 0 {
		t.Fatalf("pending after save: got %v, want empty", got)
	}

	c.editing.SaveChanges()
	if len(rec.saves) != 1 {
		t.Fatalf("saves after empty save: got %d, want 1", len(rec.saves))
	}
}

func TestEditing_CancelDiscardsAndNotifies(t *testing.T) {
	var rec recorder
	c := editableControllers(&rec, 3)

	c.editing.ToggleReadOnly()
	c.editing.HandleCellChange("r2", "name", "renamed")
	c.editing.CancelChanges()

	if rec.cancels != 1 {
		t.Fatalf("cancel notifications: got %d, want 1", rec.cancels)
	}
	if !c.store.ReadOnly() || len(c.store.PendingChanges()) != 0 {
		t.Fatalf("after cancel: got read-only=%v pending=%v", c.store.ReadOnly(), c.store.PendingChanges())
	}
	if len(rec.saves) != 0 {
		t.Fatalf("save notifications: got %d, want 0", len(rec.saves))
	}
}

func TestEditing_ConfirmDiscardCanVeto(t *testing.T) {
	var asked []PendingChange
	allow := false
	c := newControllers(newTestTable(3), Config{
		Editable: true,
		ConfirmDiscard: func(changes []PendingChange) bool {
			asked = changes
			return allow
		},
	})

	c.editing.ToggleReadOnly()
	c.editing.HandleCellChange("r0", "price", 42.0)
	c.editing.ToggleReadOnly()
	if c.store.ReadOnly() {
		t.Fatalf("read-only after veto: got true, want false")
	}
	if len(asked) != 1 || len(c.store.PendingChanges()) != 1 {
		t.Fatalf("after veto: asked=%v pending=%v", asked, c.store.PendingChanges())
	}

	allow = true
	c.editing.ToggleReadOnly()
	if !c.store.ReadOnly() || len(c.store.PendingChanges()) != 0 {
		t.Fatalf("after confirmed discard: read-only=%v pending=%v", c.store.ReadOnly(), c.store.PendingChanges())
	}
}

func TestEditing_EnteringEditModeClearsSelection(t *testing.T) {
	var rec recorder
	c := editableControllers(&rec, 3)
	c.selection.SelectAll()

	c.editing.ToggleReadOnly()
	if got := rec.lastSelectionIDs(t); len(got) != 0 {
		t.Fatalf("selection after entering edit mode: got %v, want empty", got)
	}
}

func TestEditing_CellChangeIgnoredWhenReadOnly(t *testing.T) {
	var rec recorder
	c := editableControllers(&rec, 3)
	c.editing.HandleCellChange("r0", "price", 1.0)
	if got := c.store.PendingChanges(); len(got) != 0 {
		t.Fatalf("pending in read-only mode: got %v, want empty", got)
	}
}

func TestEditing_NavigationAttachedOnlyWhenEditable(t *testing.T) {
	ro := newControllers(newTestTable(2), Config{})
	if ro.editing.Attached() {
		t.Fatalf("non-editable grid: navigation attached")
	}

	ed := newControllers(newTestTable(2), Config{Editable: true})
	if !ed.editing.Attached() {
		t.Fatalf("editable grid: navigation not attached")
	}
	ed.editing.Detach()
	ed.editing.Detach()
	if ed.editing.Attached() {
		t.Fatalf("after detach: navigation attached")
	}
}

func TestEditing_KeyNavigation(t *testing.T) {
	var rec recorder
	c := editableControllers(&rec, 3)
	c.editing.ToggleReadOnly()
	if !c.editing.SetActiveCell("r0", "id") {
		t.Fatalf("set active cell r0/id: got false")
	}

	steps := []struct {
		key  string
		want ActiveCell
	}{
		{key: "up", want: ActiveCell{RowID: "r0", ColumnID: "id"}},
		{key: "left", want: ActiveCell{RowID: "r0", ColumnID: "id"}},
		{key: "right", want: ActiveCell{RowID: "r0", ColumnID: "name"}},
		{key: "down", want: ActiveCell{RowID: "r1", ColumnID: "name"}},
		{key: "tab", want: ActiveCell{RowID: "r1", ColumnID: "price"}},
		{key: "tab", want: ActiveCell{RowID: "r2", ColumnID: "id"}},
		{key: "shift+tab", want: ActiveCell{RowID: "r1", ColumnID: "price"}},
		{key: "down", want: ActiveCell{RowID: "r2", ColumnID: "price"}},
		{key: "down", want: ActiveCell{RowID: "r2", ColumnID: "price"}},
		{key: "tab", want: ActiveCell{RowID: "r2", ColumnID: "price"}},
	}
	for i, st := range steps {
		if !c.keys.Dispatch(keyMsg(st.key)) {
			t.Fatalf("step %d %s: got handled=false, want true", i, st.key)
		}
		got, ok := c.editing.ActiveCell()
		if !ok || got != st.want {
			t.Fatalf("step %d %s: got %+v, want %+v", i, st.key, got, st.want)
		}
	}

	c.editing.SetActiveCell("r0", "id")
	if !c.keys.Dispatch(keyMsg("shift+tab")) {
		t.Fatalf("shift+tab at first cell: got handled=false, want true")
	}
	if got, _ := c.editing.ActiveCell(); got != (ActiveCell{RowID: "r0", ColumnID: "id"}) {
		t.Fatalf("shift+tab at first cell: got %+v, want r0/id", got)
	}
}

func TestEditing_NavigationIgnoredOutsideEditMode(t *testing.T) {
	c := newControllers(newTestTable(3), Config{Editable: true})
	c.editing.SetActiveCell("r0", "id")
	if c.editing.HandleKeyNavigation(keyMsg("down")) {
		t.Fatalf("down in read-only mode: got handled=true, want false")
	}
	if got, _ := c.editing.ActiveCell(); got.RowID != "r0" {
		t.Fatalf("active cell moved in read-only mode: %+v", got)
	}
}

func TestEditing_SetActiveCellRejectsUnrenderedCells(t *testing.T) {
	c := newControllers(newTestTable(12), Config{Editable: true, Paginate: true})
	if c.editing.SetActiveCell("r11", "id") {
		t.Fatalf("row on page 2: got true, want false")
	}
	if c.editing.SetActiveCell("r0", "missing") {
		t.Fatalf("unknown column: got true, want false")
	}
	if _, ok := c.editing.ActiveCell(); ok {
		t.Fatalf("active cell set after rejected targets")
	}
}

func TestEditing_ReconcileDropsStaleActiveCell(t *testing.T) {
	tbl := newTestTable(12)
	c := newControllers(tbl, Config{Editable: true, Paginate: true})
	c.editing.SetActiveCell("r3", "price")

	c.pagination.GoToNextPage()
	c.editing.Reconcile()
	if _, ok := c.editing.ActiveCell(); ok {
		t.Fatalf("active cell kept after paging away")
	}

	c.pagination.GoToPreviousPage()
	c.editing.SetActiveCell("r3", "price")
	c.store.SetColumnVisibility("price", false)
	c.editing.Reconcile()
	if _, ok := c.editing.ActiveCell(); ok {
		t.Fatalf("active cell kept after hiding its column")
	}
}
