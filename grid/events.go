package grid

import "github.com/iw2rmb/gridkit/table"

// Export formats understood by the export package.
const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
)

// ExportEvent asks the host to encode the current grid contents.
type ExportEvent struct {
	Format string
	// Rows are the filtered rows in row model order, across all pages.
	Rows []table.Row
	// Columns are the visible leaf columns in display order.
	Columns []table.Column
}

// notifier fans grid notifications out to the host callbacks in Config.
type notifier struct {
	onSelection      func([]table.Row)
	onSaveChanges    func([]PendingChange)
	onCancelChanges  func()
	onToggleReadOnly func()
	onExport         func(ExportEvent)
}

func newNotifier(cfg Config) *notifier {
	return &notifier{
		onSelection:      cfg.OnSelection,
		onSaveChanges:    cfg.OnSaveChanges,
		onCancelChanges:  cfg.OnCancelChanges,
		onToggleReadOnly: cfg.OnToggleReadOnly,
		onExport:         cfg.OnExport,
	}
}

func (n *notifier) selection(rows []table.Row) {
	if n.onSelection != nil {
		n.onSelection(rows)
	}
}

func (n *notifier) saveChanges(changes []PendingChange) {
	if n.onSaveChanges != nil {
		n.onSaveChanges(changes)
	}
}

func (n *notifier) cancelChanges() {
	if n.onCancelChanges != nil {
		n.onCancelChanges()
	}
}

func (n *notifier) toggleReadOnly() {
	if n.onToggleReadOnly != nil {
		n.onToggleReadOnly()
	}
}

func (n *notifier) export(ev ExportEvent) {
	if n.onExport != nil {
		n.onExport(ev)
	}
}
