package grid

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/gridkit/internal/grapheme"
	"github.com/iw2rmb/gridkit/table"
)

const (
	// bodyTop is the screen row of the first body line: header, then rule.
	bodyTop = 2
	// chromeLines counts the header, rule, status and help lines.
	chromeLines = 4
	// gutterWidth is the selection marker column.
	gutterWidth = 2
)

// columnSlot is the on-screen placement of a rendered column.
type columnSlot struct {
	col    table.Column
	x      int
	width  int
	pinned bool
}

func slotAt(slots []columnSlot, x int) (columnSlot, bool) {
	for _, s := range slots {
		if x >= s.x && x < s.x+s.width {
			return s, true
		}
	}
	return columnSlot{}, false
}

// gridWidth is the terminal width in the full-width layout, otherwise the
// content width capped by the terminal.
func (e *engine) gridWidth() int {
	if e.store.FullWidth() {
		return e.width
	}
	return min(e.width, e.contentWidth)
}

// slots places the pinned columns at their frozen offsets, then the
// unpinned columns from colOffset until the grid width is used up.
func (e *engine) slots() []columnSlot {
	total := e.gridWidth()
	cols := e.store.tbl.LeafColumns()

	var out []columnSlot
	var unpinned []table.Column
	x := gutterWidth
	for _, c := range cols {
		l := e.pinning.CellLayout(c)
		if !l.Pinned {
			unpinned = append(unpinned, c)
			continue
		}
		// One separator cell follows each pinned column before this one.
		px := gutterWidth + l.Left + len(out)
		w := min(e.store.tbl.ColumnWidth(c.ID), max(total-px, 0))
		out = append(out, columnSlot{col: c, x: px, width: w, pinned: true})
		x = px + w + 1
	}

	start := min(max(e.colOffset, 0), len(unpinned))
	for _, c := range unpinned[start:] {
		if x >= total {
			break
		}
		w := min(e.store.tbl.ColumnWidth(c.ID), total-x)
		out = append(out, columnSlot{col: c, x: x, width: w})
		x += w + 1
	}
	return out
}

// followActive scrolls the active cell into view.
func (e *engine) followActive() {
	ac, ok := e.store.ActiveCell()
	if !ok {
		return
	}

	if ri := indexOfRow(e.pagination.DisplayedRows(), ac.RowID); ri >= 0 && e.viewport.Height > 0 {
		switch {
		case ri < e.viewport.YOffset:
			e.viewport.SetYOffset(ri)
		case ri >= e.viewport.YOffset+e.viewport.Height:
			e.viewport.SetYOffset(ri - e.viewport.Height + 1)
		}
	}

	if e.pinning.IsPinned(ac.ColumnID) {
		return
	}
	var unpinned []string
	for _, c := range e.store.tbl.LeafColumns() {
		if !e.pinning.IsPinned(c.ID) {
			unpinned = append(unpinned, c.ID)
		}
	}
	ci := slices.Index(unpinned, ac.ColumnID)
	if ci < 0 {
		return
	}
	if ci < e.colOffset {
		e.colOffset = ci
		return
	}
	for e.colOffset < ci && !slices.ContainsFunc(e.slots(), func(s columnSlot) bool { return s.col.ID == ac.ColumnID }) {
		e.colOffset++
	}
}

// rebuild re-renders the body into the viewport.
func (e *engine) rebuild() {
	e.viewport.Width = e.gridWidth()
	e.viewport.SetContent(e.renderBody(e.slots()))
	e.followActive()
	e.viewport.SetContent(e.renderBody(e.slots()))
}

func (e *engine) renderHeader(slots []columnSlot) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))
	sep := e.style.Separator.Render("│")
	for i, s := range slots {
		if i > 0 {
			b.WriteString(sep)
		}
		st := e.style.Header
		if s.pinned {
			st = e.style.PinnedHeader
		}
		title := s.col.Header + e.sortIndicator(s.col.ID)
		b.WriteString(st.Render(grapheme.Fit(title, s.width, false)))
	}
	return b.String()
}

func (e *engine) sortIndicator(columnID string) string {
	for _, sp := range e.store.sorting {
		if sp.ColumnID != columnID {
			continue
		}
		if sp.Desc {
			return " ▼"
		}
		return " ▲"
	}
	return ""
}

func (e *engine) renderRule(slots []columnSlot) string {
	w := gutterWidth
	if n := len(slots); n > 0 {
		last := slots[n-1]
		w = last.x + last.width
	}
	return e.style.Separator.Render(strings.Repeat("─", max(w, 0)))
}

func (e *engine) renderBody(slots []columnSlot) string {
	rows := e.pagination.DisplayedRows()
	if len(rows) == 0 {
		return e.style.Status.Render(strings.Repeat(" ", gutterWidth) + "no rows")
	}

	mode := ModeView
	if e.store.EditMode() {
		mode = ModeEdit
	}
	sep := e.style.Separator.Render("│")

	lines := make([]string, len(rows))
	for i, r := range rows {
		selected := e.selection.Selected(r.ID)
		var b strings.Builder
		if selected {
			b.WriteString(e.style.SelectedRow.Render("▌ "))
		} else {
			b.WriteString(strings.Repeat(" ", gutterWidth))
		}
		for j, s := range slots {
			if j > 0 {
				b.WriteString(sep)
			}
			var text string
			if mode == ModeEdit && e.editing.IsEditing(r.ID, s.col.ID) {
				text = fitStyled(e.cells.Render(r, s.col, mode), s.width)
			} else {
				text = grapheme.Fit(e.cells.Render(r, s.col, mode), s.width, e.cells.AlignRight(s.col.ID))
			}
			b.WriteString(e.cellStyle(r, s, selected).Render(text))
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// fitStyled pads or cuts already styled editor output to width cells.
func fitStyled(text string, width int) string {
	text = lipgloss.NewStyle().MaxWidth(width).Render(text)
	if pad := width - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return text
}

func (e *engine) cellStyle(r table.Row, s columnSlot, selected bool) lipgloss.Style {
	if ac, ok := e.store.ActiveCell(); ok && e.store.EditMode() && ac.RowID == r.ID && ac.ColumnID == s.col.ID {
		return e.style.ActiveCell
	}
	switch {
	case e.cells.Dirty(r, s.col.ID):
		return e.style.DirtyCell
	case selected:
		return e.style.SelectedRow
	case s.pinned:
		return e.style.PinnedCell
	default:
		return e.style.Cell
	}
}

func (e *engine) renderStatus() string {
	parts := []string{"view"}
	if e.store.EditMode() {
		parts[0] = "edit"
	}
	if e.store.Paginated() {
		parts = append(parts, fmt.Sprintf("page %d/%d", e.pagination.PageIndex()+1, e.pagination.TotalPages()))
	}
	parts = append(parts, fmt.Sprintf("%d rows", len(e.store.tbl.Rows())))
	if n := e.selection.Count(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if n := e.editing.PendingCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d pending", n))
	}
	if q := e.search.Query(); q != "" {
		parts = append(parts, fmt.Sprintf("search %q", q))
	}
	return e.style.Status.Render(grapheme.Truncate(strings.Join(parts, " · "), e.gridWidth()))
}

// View renders the header, the scrolled body, a status line and key help.
func (m Model) View() string {
	e := m.e
	if e.closed {
		return ""
	}
	// Controllers may have been driven outside Update.
	e.sync()
	e.rebuild()
	slots := e.slots()
	e.help.Width = e.gridWidth()
	return strings.Join([]string{
		e.renderHeader(slots),
		e.renderRule(slots),
		e.viewport.View(),
		e.renderStatus(),
		e.help.ShortHelpView(e.km.ShortHelp()),
	}, "\n")
}
