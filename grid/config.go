package grid

import (
	"log/slog"

	"github.com/iw2rmb/gridkit/table"
)

// FullWidthKey is the Storage key holding the full-width layout preference
// as "true" or "false".
const FullWidthKey = "gridkit.fullWidth"

// DefaultPageSize is used when Config.PageSizes is empty.
const DefaultPageSize = 10

// Storage persists preferences across sessions.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Config configures the grid Model.
type Config struct {
	// Editable allows the grid to enter edit mode. The grid always starts
	// read-only.
	Editable bool

	// Paginate enables the page window. PageSizes lists the selectable page
	// sizes; the first entry is the initial size.
	Paginate  bool
	PageSizes []int

	// SearchField is the column id the search query filters. Empty disables
	// search.
	SearchField string

	// Cells maps column ids to editor kinds. Columns without an entry are not
	// editable.
	Cells map[string]CellSpec

	// ContentWidth caps the rendered width when the full-width layout is off.
	// Zero means 100 cells.
	ContentWidth int

	// Storage persists the full-width preference. Nil disables persistence.
	Storage Storage

	// Logger receives non-fatal failures. Nil means slog.Default().
	Logger *slog.Logger

	// KeyMap overrides DefaultKeyMap when non-nil.
	KeyMap *KeyMap
	Style  Style

	// Clipboard receives copied rows. Nil disables copying.
	Clipboard Clipboard

	// ConfirmDiscard is asked before leaving edit mode with pending changes.
	// Returning false keeps edit mode and the pending changes. Nil discards
	// silently.
	ConfirmDiscard func(changes []PendingChange) bool

	// Host notifications.
	OnSelection      func(rows []table.Row)
	OnSaveChanges    func(changes []PendingChange)
	OnCancelChanges  func()
	OnToggleReadOnly func()
	OnExport         func(ev ExportEvent)
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) keyMap() KeyMap {
	if c.KeyMap != nil {
		return *c.KeyMap
	}
	return DefaultKeyMap()
}

func (c Config) contentWidth() int {
	if c.ContentWidth > 0 {
		return c.ContentWidth
	}
	return 100
}
