package grid

// Clipboard receives text copied from the grid.
//
// Errors must not crash the UI; failures are logged and ignored.
type Clipboard interface {
	WriteText(s string) error
}
