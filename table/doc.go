// Package table implements the row and column materialization model the grid
// engine renders from.
//
// A Table owns the source data set plus the derived state that shapes it:
// sorting, per-column filters, column visibility, column pinning, the
// pagination model and per-row selection flags. It performs no I/O and has no
// knowledge of input events; the grid package drives it.
package table
