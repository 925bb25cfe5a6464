// Package config loads grid configuration from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/iw2rmb/gridkit/grid"
	"github.com/iw2rmb/gridkit/table"
)

// FileName is the configuration file looked up next to a database.
const FileName = "gridkit.toml"

// ErrNoColumns is returned by Validate for a configuration without columns.
var ErrNoColumns = errors.New("no columns configured")

// File is the on-disk grid configuration.
//
//	editable = true
//	paginate = true
//	page_sizes = [10, 25, 50]
//	search_field = "name"
//
//	[[columns]]
//	id = "price"
//	header = "Price"
//	width = 10
//	kind = "number"
//	sortable = true
type File struct {
	Editable     bool     `toml:"editable"`
	Paginate     bool     `toml:"paginate"`
	PageSizes    []int    `toml:"page_sizes,omitempty"`
	SearchField  string   `toml:"search_field,omitempty"`
	ContentWidth int      `toml:"content_width,omitempty"`
	Columns      []Column `toml:"columns"`
}

// Column configures one grid column and its cell editor.
type Column struct {
	ID       string `toml:"id"`
	Header   string `toml:"header,omitempty"`
	Width    int    `toml:"width,omitempty"`
	Sortable bool   `toml:"sortable"`
	Pinnable bool   `toml:"pinnable"`

	// Kind is one of text, number, select, date or checkbox. Empty leaves
	// the column read-only.
	Kind        string   `toml:"kind,omitempty"`
	Options     []string `toml:"options,omitempty"`
	DateLayout  string   `toml:"date_layout,omitempty"`
	Placeholder string   `toml:"placeholder,omitempty"`
}

// Load parses and validates the configuration at path.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

// Find returns the configuration file in dir, or "" when there is none.
func Find(dir string) string {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Validate checks column ids, cell kinds and the search field.
func (f *File) Validate() error {
	if len(f.Columns) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]bool, len(f.Columns))
	for i, c := range f.Columns {
		if c.ID == "" {
			return fmt.Errorf("column %d: missing id", i+1)
		}
		if seen[c.ID] {
			return fmt.Errorf("column %q: duplicate id", c.ID)
		}
		seen[c.ID] = true
		if c.Kind == "" {
			continue
		}
		kind, err := grid.ParseCellKind(c.Kind)
		if err != nil {
			return fmt.Errorf("column %q: %w", c.ID, err)
		}
		if kind == grid.CellSelect && len(c.Options) == 0 {
			return fmt.Errorf("column %q: select cell without options", c.ID)
		}
	}
	if f.SearchField != "" && !seen[f.SearchField] {
		return fmt.Errorf("search field %q is not a column", f.SearchField)
	}
	for _, n := range f.PageSizes {
		if n <= 0 {
			return fmt.Errorf("page size %d must be positive", n)
		}
	}
	return nil
}

// TableColumns returns the column definitions for table.New.
func (f *File) TableColumns() []table.Column {
	cols := make([]table.Column, len(f.Columns))
	for i, c := range f.Columns {
		header := c.Header
		if header == "" {
			header = c.ID
		}
		cols[i] = table.Column{
			ID:      c.ID,
			Header:  header,
			Width:   c.Width,
			CanSort: c.Sortable,
			CanPin:  c.Pinnable,
		}
	}
	return cols
}

// Cells returns the cell editor specs of the editable columns. Call
// Validate first; columns with unknown kinds are skipped.
func (f *File) Cells() map[string]grid.CellSpec {
	cells := make(map[string]grid.CellSpec)
	for _, c := range f.Columns {
		if c.Kind == "" {
			continue
		}
		kind, err := grid.ParseCellKind(c.Kind)
		if err != nil {
			continue
		}
		cells[c.ID] = grid.CellSpec{
			Kind:        kind,
			Options:     c.Options,
			DateLayout:  c.DateLayout,
			Placeholder: c.Placeholder,
		}
	}
	return cells
}

// Apply copies the grid options into cfg.
func (f *File) Apply(cfg *grid.Config) {
	cfg.Editable = f.Editable
	cfg.Paginate = f.Paginate
	cfg.PageSizes = f.PageSizes
	cfg.SearchField = f.SearchField
	cfg.ContentWidth = f.ContentWidth
	cfg.Cells = f.Cells()
}
