package grid

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the grid key bindings.
type KeyMap struct {
	// Cell navigation in edit mode.
	Up, Down, Left, Right key.Binding
	Tab, ShiftTab         key.Binding

	// Selection shortcuts, active in every mode.
	ClearSelection key.Binding
	SelectAll      key.Binding

	ToggleEdit key.Binding
	Save       key.Binding
	Cancel     key.Binding

	PinColumn  key.Binding
	UnpinAll   key.Binding
	SortColumn key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	CyclePage  key.Binding
	FullWidth  key.Binding
	Copy       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "cell up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "cell down")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "cell left")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "cell right")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next cell")),
		ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev cell")),

		ClearSelection: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
		SelectAll:      key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),

		ToggleEdit: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "edit")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:     key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "cancel")),

		PinColumn:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "pin column")),
		UnpinAll:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "unpin all")),
		SortColumn: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "sort column")),
		NextPage:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next page")),
		PrevPage:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev page")),
		CyclePage:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "page size")),
		FullWidth:  key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "full width")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy rows")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.ToggleEdit, km.Save, km.Cancel, km.SelectAll, km.PinColumn, km.NextPage, km.PrevPage}
}

// FullHelp returns every binding grouped by concern.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Up, km.Down, km.Left, km.Right, km.Tab, km.ShiftTab},
		{km.ClearSelection, km.SelectAll, km.Copy},
		{km.ToggleEdit, km.Save, km.Cancel},
		{km.PinColumn, km.UnpinAll, km.SortColumn},
		{km.NextPage, km.PrevPage, km.CyclePage, km.FullWidth},
	}
}
