package grid

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/gridkit/table"
)

// EditingController owns the read-only flag, the pending change buffer and
// the active cell.
type EditingController struct {
	s        *Store
	n        *notifier
	km       KeyMap
	keys     *KeyScope
	rendered func() []table.Row
	confirm  func([]PendingChange) bool

	// clearSelection deselects all rows through the selection controller.
	clearSelection func()
	// focus moves input focus to the active cell's editor.
	focus func(ActiveCell)

	release func()
}

func newEditingController(s *Store, n *notifier, km KeyMap, keys *KeyScope, rendered func() []table.Row, confirm func([]PendingChange) bool) *EditingController {
	return &EditingController{s: s, n: n, km: km, keys: keys, rendered: rendered, confirm: confirm}
}

// Attach registers keyboard cell navigation while the grid is configured as
// editable. It is a no-op otherwise.
func (c *EditingController) Attach() {
	if !c.s.editable || c.release != nil {
		return
	}
	c.release = c.keys.Listen(c.HandleKeyNavigation)
}

// Detach releases keyboard cell navigation.
func (c *EditingController) Detach() {
	if c.release == nil {
		return
	}
	c.release()
	c.release = nil
}

// Attached reports whether keyboard navigation is registered.
func (c *EditingController) Attached() bool { return c.release != nil }

// ToggleReadOnly flips the read-only flag. Leaving edit mode discards pending
// changes unless the ConfirmDiscard hook vetoes it; entering edit mode clears
// the row selection.
func (c *EditingController) ToggleReadOnly() {
	if !c.s.readOnly && c.s.pending.Len() > 0 {
		// Pending edits are dropped, not saved.
		if c.confirm != nil && !c.confirm(c.s.pending.Changes()) {
			return
		}
		c.s.pending.Clear()
	}

	c.s.readOnly = !c.s.readOnly
	if !c.s.readOnly && c.clearSelection != nil {
		c.clearSelection()
	}
	c.n.toggleReadOnly()
}

// HandleCellChange records value as the pending value of a cell. It is
// ignored outside edit mode.
func (c *EditingController) HandleCellChange(rowID, columnID string, value any) {
	if !c.s.EditMode() {
		return
	}
	c.s.pending.Upsert(PendingChange{RowID: rowID, ColumnID: columnID, Value: value})
}

// SaveChanges commits the pending changes to the host and returns to
// read-only. It does nothing when there are no pending changes.
func (c *EditingController) SaveChanges() {
	if c.s.pending.Len() == 0 {
		return
	}
	changes := c.s.pending.Changes()
	c.n.saveChanges(changes)
	c.s.pending.Clear()
	c.s.readOnly = true
}

// CancelChanges discards the pending changes and returns to read-only.
func (c *EditingController) CancelChanges() {
	c.s.pending.Clear()
	c.n.cancelChanges()
	c.s.readOnly = true
}

// PendingValue returns the uncommitted value of a cell.
func (c *EditingController) PendingValue(rowID, columnID string) (any, bool) {
	return c.s.pending.Get(rowID, columnID)
}

// PendingCount returns the number of cells with uncommitted values.
func (c *EditingController) PendingCount() int { return c.s.pending.Len() }

// ActiveCell returns the active cell, if any.
func (c *EditingController) ActiveCell() (ActiveCell, bool) { return c.s.ActiveCell() }

// SetActiveCell targets a rendered cell and moves focus to it. It reports
// false, leaving the active cell unchanged, when the cell is not rendered.
func (c *EditingController) SetActiveCell(rowID, columnID string) bool {
	if indexOfRow(c.rendered(), rowID) < 0 || indexOfColumn(c.s.tbl.LeafColumns(), columnID) < 0 {
		return false
	}
	ac := ActiveCell{RowID: rowID, ColumnID: columnID}
	if cur, ok := c.s.ActiveCell(); ok && cur == ac {
		return true
	}
	c.s.setActive(ac)
	if c.focus != nil {
		c.focus(ac)
	}
	return true
}

// ClearActiveCell removes the active cell.
func (c *EditingController) ClearActiveCell() { c.s.clearActive() }

// IsEditing reports whether the cell is the active cell in edit mode.
func (c *EditingController) IsEditing(rowID, columnID string) bool {
	ac, ok := c.s.ActiveCell()
	return ok && c.s.EditMode() && ac.RowID == rowID && ac.ColumnID == columnID
}

// Reconcile drops the active cell when it no longer references a rendered
// row and visible column.
func (c *EditingController) Reconcile() {
	ac, ok := c.s.ActiveCell()
	if !ok {
		return
	}
	if indexOfRow(c.rendered(), ac.RowID) < 0 || indexOfColumn(c.s.tbl.LeafColumns(), ac.ColumnID) < 0 {
		c.s.clearActive()
	}
}

// HandleKeyNavigation moves the active cell with the arrow keys, Tab and
// Shift+Tab. It only acts in edit mode with an active cell, and consumes
// every navigation key it acts on.
func (c *EditingController) HandleKeyNavigation(msg tea.KeyMsg) bool {
	if !c.s.EditMode() {
		return false
	}
	ac, ok := c.s.ActiveCell()
	if !ok {
		return false
	}

	rows := c.rendered()
	cols := c.s.tbl.LeafColumns()
	ri := indexOfRow(rows, ac.RowID)
	ci := indexOfColumn(cols, ac.ColumnID)
	if ri < 0 || ci < 0 {
		return false
	}

	nr, nc := ri, ci
	switch {
	case key.Matches(msg, c.km.Up):
		nr = clampIndex(ri-1, len(rows))
	case key.Matches(msg, c.km.Down):
		nr = clampIndex(ri+1, len(rows))
	case key.Matches(msg, c.km.Left):
		nc = clampIndex(ci-1, len(cols))
	case key.Matches(msg, c.km.Right):
		nc = clampIndex(ci+1, len(cols))
	case key.Matches(msg, c.km.Tab):
		switch {
		case ci < len(cols)-1:
			nc = ci + 1
		case ri < len(rows)-1:
			nr, nc = ri+1, 0
		}
	case key.Matches(msg, c.km.ShiftTab):
		switch {
		case ci > 0:
			nc = ci - 1
		case ri > 0:
			nr, nc = ri-1, len(cols)-1
		}
	default:
		return false
	}

	if nr != ri || nc != ci {
		c.SetActiveCell(rows[nr].ID, cols[nc].ID)
	}
	return true
}

func clampIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return min(max(i, 0), n-1)
}
