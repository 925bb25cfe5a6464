package grid

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/gridkit/table"
)

// CellLayout is the horizontal placement of a header or body cell.
type CellLayout struct {
	Pinned bool
	// Left is the offset from the grid's left edge for pinned cells.
	Left int
	// Width is the column's fixed width, zero when the column has none.
	Width int
}

// PinningController pins columns to the left edge. The right edge is always
// kept empty.
type PinningController struct {
	s     *Store
	flush layoutFlusher
}

func newPinningController(s *Store) *PinningController {
	return &PinningController{s: s}
}

// Pinning returns the mirrored pinning state.
func (c *PinningController) Pinning() table.Pinning { return c.s.pinning.Clone() }

// IsPinned reports whether the column is pinned to the left edge.
func (c *PinningController) IsPinned(columnID string) bool {
	return slices.Contains(c.s.pinning.Left, columnID)
}

// PinColumnToLeft appends the column to the left-pinned list. Pinning an
// already pinned column is a no-op.
func (c *PinningController) PinColumnToLeft(columnID string) {
	if c.IsPinned(columnID) {
		return
	}
	left := append(slices.Clone(c.s.pinning.Left), columnID)
	c.apply(left)
}

// UnpinColumn removes the column from the left-pinned list.
func (c *PinningController) UnpinColumn(columnID string) {
	if !c.IsPinned(columnID) {
		return
	}
	left := slices.DeleteFunc(slices.Clone(c.s.pinning.Left), func(id string) bool { return id == columnID })
	c.apply(left)
}

// UnpinAllColumns clears the left-pinned list.
func (c *PinningController) UnpinAllColumns() {
	if len(c.s.pinning.Left) == 0 {
		return
	}
	c.apply(nil)
}

// ToggleColumnPinning unpins every column when any is pinned.
func (c *PinningController) ToggleColumnPinning() { c.UnpinAllColumns() }

// TogglePinned pins an unpinned column or unpins a pinned one.
func (c *PinningController) TogglePinned(columnID string) {
	if c.IsPinned(columnID) {
		c.UnpinColumn(columnID)
		return
	}
	c.PinColumnToLeft(columnID)
}

func (c *PinningController) apply(left []string) {
	next := table.Pinning{Left: append([]string{}, left...), Right: []string{}}
	c.s.tbl.SetColumnPinning(next)
	c.s.pinning = table.Pinning{Left: c.s.tbl.ColumnPinning().Left, Right: []string{}}
}

// FlushLayout re-applies the mirrored pinning state to the collaborator.
func (c *PinningController) FlushLayout() {
	c.s.tbl.SetColumnPinning(c.s.pinning.Clone())
}

// ForceUpdatePinning schedules FlushLayout for the next update cycle. The
// flush is dropped when the grid is closed first.
func (c *PinningController) ForceUpdatePinning() tea.Cmd {
	return c.flush.schedule()
}

// HeaderLayout returns the placement of a column header.
func (c *PinningController) HeaderLayout(col table.Column) CellLayout {
	return c.layout(col)
}

// CellLayout returns the placement of a body cell in col.
func (c *PinningController) CellLayout(col table.Column) CellLayout {
	return c.layout(col)
}

func (c *PinningController) layout(col table.Column) CellLayout {
	l := CellLayout{Width: col.Width}
	if c.IsPinned(col.ID) {
		l.Pinned = true
		l.Left = c.s.tbl.PinnedStart(col.ID)
	}
	return l
}
