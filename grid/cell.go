package grid

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/gridkit/table"
)

// DefaultDateLayout is used by date cells without a DateLayout.
const DefaultDateLayout = "2006-01-02"

// CellKind is the closed set of cell editor types.
type CellKind uint8

const (
	CellText CellKind = iota
	CellNumber
	CellSelect
	CellDate
	CellCheckbox
)

var cellKindNames = [...]string{
	CellText:     "text",
	CellNumber:   "number",
	CellSelect:   "select",
	CellDate:     "date",
	CellCheckbox: "checkbox",
}

func (k CellKind) String() string {
	if int(k) < len(cellKindNames) {
		return cellKindNames[k]
	}
	return fmt.Sprintf("CellKind(%d)", k)
}

// ParseCellKind maps a kind name to its CellKind.
func ParseCellKind(s string) (CellKind, error) {
	for k, name := range cellKindNames {
		if strings.EqualFold(s, name) {
			return CellKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown cell kind %q", s)
}

// CellSpec configures the editor of one column.
type CellSpec struct {
	Kind CellKind
	// Options lists the choices of a CellSelect column.
	Options []string
	// DateLayout is the time layout of a CellDate column.
	DateLayout string
	// Placeholder is shown by empty text, number and date editors.
	Placeholder string
}

// Layout returns the date layout, DefaultDateLayout when unset.
func (s CellSpec) Layout() string {
	if s.DateLayout != "" {
		return s.DateLayout
	}
	return DefaultDateLayout
}

// CellMode selects how a cell is rendered.
type CellMode uint8

const (
	ModeView CellMode = iota
	ModeEdit
)

// cellEditor is the interactive control of the active cell.
type cellEditor interface {
	// update applies a key and reports the new value when it changed.
	update(msg tea.KeyMsg) (value any, changed bool, cmd tea.Cmd)
	view() string
}

// CellRenderer maps (row, column, mode) to cell text and owns the editor of
// the active cell.
type CellRenderer struct {
	specs   map[string]CellSpec
	tbl     Table
	editing *EditingController

	at     ActiveCell
	editor cellEditor
}

func newCellRenderer(specs map[string]CellSpec, tbl Table, editing *EditingController) *CellRenderer {
	return &CellRenderer{specs: specs, tbl: tbl, editing: editing}
}

// Spec returns the editor spec of a column.
func (r *CellRenderer) Spec(columnID string) (CellSpec, bool) {
	s, ok := r.specs[columnID]
	return s, ok
}

// Value returns the cell's pending value, falling back to the row value.
func (r *CellRenderer) Value(row table.Row, columnID string) any {
	if v, ok := r.editing.PendingValue(row.ID, columnID); ok {
		return v
	}
	return row.Value(columnID)
}

// Dirty reports whether the cell has a pending value.
func (r *CellRenderer) Dirty(row table.Row, columnID string) bool {
	_, ok := r.editing.PendingValue(row.ID, columnID)
	return ok
}

// AlignRight reports whether the column renders right-aligned.
func (r *CellRenderer) AlignRight(columnID string) bool {
	s, ok := r.specs[columnID]
	return ok && s.Kind == CellNumber
}

// Render returns the content of a cell. The active cell renders its editor
// in edit mode.
func (r *CellRenderer) Render(row table.Row, col table.Column, mode CellMode) string {
	if mode == ModeEdit && r.editor != nil && r.at == (ActiveCell{RowID: row.ID, ColumnID: col.ID}) && r.editing.IsEditing(row.ID, col.ID) {
		return r.editor.view()
	}
	return formatCell(r.Value(row, col.ID), r.specs[col.ID])
}

// Focus builds and focuses the editor of a cell. Cells without a spec get no
// editor; the cell itself holds focus.
func (r *CellRenderer) Focus(ac ActiveCell) {
	r.at = ac
	r.editor = nil

	spec, ok := r.specs[ac.ColumnID]
	if !ok {
		return
	}
	var row table.Row
	for _, cand := range r.tbl.Rows() {
		if cand.ID == ac.RowID {
			row = cand
			break
		}
	}
	r.editor = newCellEditor(spec, r.Value(row, ac.ColumnID), r.tbl.ColumnWidth(ac.ColumnID))
}

// Blur drops the active editor.
func (r *CellRenderer) Blur() {
	r.at = ActiveCell{}
	r.editor = nil
}

// Focused returns the cell the editor is bound to.
func (r *CellRenderer) Focused() (ActiveCell, bool) {
	return r.at, r.editor != nil
}

// Update forwards a key to the active editor and records value changes as
// pending changes.
func (r *CellRenderer) Update(msg tea.KeyMsg) tea.Cmd {
	if r.editor == nil || !r.editing.IsEditing(r.at.RowID, r.at.ColumnID) {
		return nil
	}
	v, changed, cmd := r.editor.update(msg)
	if changed {
		r.editing.HandleCellChange(r.at.RowID, r.at.ColumnID, v)
	}
	return cmd
}

func newCellEditor(spec CellSpec, value any, width int) cellEditor {
	switch spec.Kind {
	case CellNumber:
		return &numberEditor{input: newInput(formatCell(value, spec), spec.Placeholder, width)}
	case CellSelect:
		return newSelectEditor(spec.Options, table.FormatValue(value))
	case CellDate:
		return &dateEditor{input: newInput(formatCell(value, spec), spec.Placeholder, width), layout: spec.Layout()}
	case CellCheckbox:
		b, _ := value.(bool)
		return &checkboxEditor{checked: b}
	default:
		return &textEditor{input: newInput(table.FormatValue(value), spec.Placeholder, width)}
	}
}

func formatCell(v any, spec CellSpec) string {
	switch spec.Kind {
	case CellNumber:
		switch n := v.(type) {
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64)
		case float32:
			return strconv.FormatFloat(float64(n), 'f', -1, 32)
		}
	case CellDate:
		if t, ok := v.(time.Time); ok {
			if t.IsZero() {
				return ""
			}
			return t.Format(spec.Layout())
		}
	case CellCheckbox:
		if b, ok := v.(bool); ok && b {
			return "[x]"
		}
		return "[ ]"
	}
	return table.FormatValue(v)
}

// newInput returns a focused single-line input that scrolls within width
// cells, keeping one cell for the cursor.
func newInput(value, placeholder string, width int) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Width = max(width-1, 1)
	in.Placeholder = placeholder
	in.SetValue(value)
	in.CursorEnd()
	in.Focus()
	return in
}

type textEditor struct {
	input textinput.Model
}

func (e *textEditor) update(msg tea.KeyMsg) (any, bool, tea.Cmd) {
	before := e.input.Value()
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	after := e.input.Value()
	return after, after != before, cmd
}

func (e *textEditor) view() string { return e.input.View() }

// numberEditor reports a change only once the text parses as a number. An
// empty input clears the value.
type numberEditor struct {
	input textinput.Model
}

func (e *numberEditor) update(msg tea.KeyMsg) (any, bool, tea.Cmd) {
	before := e.input.Value()
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	after := strings.TrimSpace(e.input.Value())
	if after == strings.TrimSpace(before) {
		return nil, false, cmd
	}
	if after == "" {
		return nil, true, cmd
	}
	n, err := strconv.ParseFloat(after, 64)
	if err != nil {
		return nil, false, cmd
	}
	return n, true, cmd
}

func (e *numberEditor) view() string { return e.input.View() }

// dateEditor reports a change only once the text parses with its layout. An
// empty input clears the value.
type dateEditor struct {
	input  textinput.Model
	layout string
}

func (e *dateEditor) update(msg tea.KeyMsg) (any, bool, tea.Cmd) {
	before := e.input.Value()
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	after := strings.TrimSpace(e.input.Value())
	if after == strings.TrimSpace(before) {
		return nil, false, cmd
	}
	if after == "" {
		return nil, true, cmd
	}
	t, err := time.Parse(e.layout, after)
	if err != nil {
		return nil, false, cmd
	}
	return t, true, cmd
}

func (e *dateEditor) view() string { return e.input.View() }

// selectEditor cycles through its options with space and jumps to the first
// option starting with a typed letter.
type selectEditor struct {
	options []string
	index   int
}

func newSelectEditor(options []string, current string) *selectEditor {
	e := &selectEditor{options: options, index: -1}
	for i, o := range options {
		if o == current {
			e.index = i
			break
		}
	}
	return e
}

func (e *selectEditor) update(msg tea.KeyMsg) (any, bool, tea.Cmd) {
	if len(e.options) == 0 {
		return nil, false, nil
	}
	next := e.index
	switch {
	case msg.Type == tea.KeySpace:
		next = (e.index + 1) % len(e.options)
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		prefix := strings.ToLower(string(msg.Runes))
		for i, o := range e.options {
			if strings.HasPrefix(strings.ToLower(o), prefix) {
				next = i
				break
			}
		}
	}
	if next == e.index || next < 0 {
		return nil, false, nil
	}
	e.index = next
	return e.options[next], true, nil
}

func (e *selectEditor) view() string {
	if e.index < 0 {
		return "‹ ›"
	}
	return "‹" + e.options[e.index] + "›"
}

// checkboxEditor toggles with space or x.
type checkboxEditor struct {
	checked bool
}

func (e *checkboxEditor) update(msg tea.KeyMsg) (any, bool, tea.Cmd) {
	if msg.Type == tea.KeySpace || (msg.Type == tea.KeyRunes && strings.EqualFold(string(msg.Runes), "x")) {
		e.checked = !e.checked
		return e.checked, true, nil
	}
	return nil, false, nil
}

func (e *checkboxEditor) view() string {
	if e.checked {
		return "[x]"
	}
	return "[ ]"
}
