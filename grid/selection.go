package grid

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/gridkit/table"
)

// ModifierKey names a modifier reported by ModifierMsg.
type ModifierKey uint8

const (
	ModifierShift ModifierKey = iota
	ModifierCtrl
	ModifierMeta
)

// ModifierMsg reports a modifier key going down or up, for hosts whose input
// source can observe bare modifier transitions.
type ModifierMsg struct {
	Key  ModifierKey
	Down bool
}

// SelectionController implements click, shift-range and ctrl-toggle row
// selection and the global selection shortcuts.
type SelectionController struct {
	s        *Store
	n        *notifier
	log      *slog.Logger
	km       KeyMap
	keys     *KeyScope
	rendered func() []table.Row

	release func()
}

func newSelectionController(s *Store, n *notifier, km KeyMap, keys *KeyScope, rendered func() []table.Row) *SelectionController {
	return &SelectionController{s: s, n: n, log: s.log, km: km, keys: keys, rendered: rendered}
}

// Mount registers the selection shortcuts for the lifetime of the grid.
func (c *SelectionController) Mount() {
	if c.release != nil {
		return
	}
	c.release = c.keys.Listen(c.HandleKey)
}

// Unmount releases the selection shortcuts.
func (c *SelectionController) Unmount() {
	if c.release == nil {
		return
	}
	c.release()
	c.release = nil
}

// Mounted reports whether the shortcuts are registered.
func (c *SelectionController) Mounted() bool { return c.release != nil }

// HandleRowClick applies a click on row using the tracked modifier keys:
// shift extends a range from the anchor, ctrl/cmd toggles the row, and a
// plain click selects the row exclusively or deselects it when already
// selected.
func (c *SelectionController) HandleRowClick(row table.Row) {
	rows := c.rendered()
	idx := indexOfRow(rows, row.ID)
	if idx < 0 {
		return
	}
	mods := c.s.modifiers

	switch {
	case mods.Shift && c.s.anchor >= 0:
		lo, hi := min(c.s.anchor, idx), max(c.s.anchor, idx)
		for i := lo; i <= hi && i < len(rows); i++ {
			c.s.tbl.SetRowSelected(rows[i].ID, true)
		}
	case mods.Ctrl || mods.Meta:
		c.s.tbl.SetRowSelected(row.ID, !c.s.tbl.RowSelection()[row.ID])
		c.s.anchor = idx
	default:
		if c.s.tbl.RowSelection()[row.ID] {
			c.s.tbl.SetRowSelected(row.ID, false)
		} else {
			c.s.tbl.SetRowSelection(nil)
			c.s.tbl.SetRowSelected(row.ID, true)
		}
		c.s.anchor = idx
	}
	c.changed()
}

// HandleKey handles Escape, select-all and modifier tracking. It is
// registered on the grid's KeyScope by Mount.
func (c *SelectionController) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, c.km.ClearSelection):
		c.ClearSelection()
		return true
	case key.Matches(msg, c.km.SelectAll):
		c.SelectAll()
		return true
	}
	return false
}

// HandleModifier tracks a modifier key transition.
func (c *SelectionController) HandleModifier(msg ModifierMsg) {
	switch msg.Key {
	case ModifierShift:
		c.s.modifiers.Shift = msg.Down
	case ModifierCtrl:
		c.s.modifiers.Ctrl = msg.Down
	case ModifierMeta:
		c.s.modifiers.Meta = msg.Down
	}
}

// SetModifiers replaces all modifier flags at once, for input sources that
// report modifiers alongside a click.
func (c *SelectionController) SetModifiers(m Modifiers) { c.s.modifiers = m }

// ClearSelection deselects every row.
func (c *SelectionController) ClearSelection() {
	c.s.tbl.SetRowSelection(nil)
	c.changed()
}

// SelectAll selects every row of the filtered row model.
func (c *SelectionController) SelectAll() {
	for _, r := range c.s.tbl.Rows() {
		c.s.tbl.SetRowSelected(r.ID, true)
	}
	c.changed()
}

// Selected reports whether a row is selected.
func (c *SelectionController) Selected(rowID string) bool { return c.s.selection[rowID] }

// Count returns the number of selected rows.
func (c *SelectionController) Count() int { return len(c.s.selection) }

// SelectedRows reads back the selected rows. A failing read-back yields an
// empty selection.
func (c *SelectionController) SelectedRows() []table.Row {
	rows, err := c.s.tbl.SelectedRows()
	if err != nil {
		c.log.Error("reading back selected rows", "error", err)
		return []table.Row{}
	}
	return rows
}

func (c *SelectionController) changed() {
	if !c.s.syncSelectionFromTable() {
		return
	}
	c.n.selection(c.SelectedRows())
}
