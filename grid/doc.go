// Package grid provides an editable, spreadsheet-like data grid for Bubble
// Tea, backed by the table package.
//
// The package is split into cooperating controllers that share one Store:
// selection (click, shift-range and ctrl-toggle row selection), editing
// (read-only toggle, pending cell changes, save/cancel, keyboard cell
// navigation), pinning (left-edge frozen columns), pagination and search.
// Model routes Bubble Tea messages into the controllers and renders the
// result; hosts observe the grid through the callbacks in Config.
package grid
