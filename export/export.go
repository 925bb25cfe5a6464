// Package export encodes grid export events as CSV or XLSX.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/iw2rmb/gridkit/grid"
	"github.com/iw2rmb/gridkit/table"
)

// ErrUnknownFormat is returned for formats other than csv and xlsx.
var ErrUnknownFormat = errors.New("unknown export format")

// SheetName is the worksheet written by the xlsx encoder.
const SheetName = "Sheet1"

// Encode writes ev to w in ev.Format. The first record holds the column
// headers.
func Encode(w io.Writer, ev grid.ExportEvent) error {
	switch strings.ToLower(ev.Format) {
	case grid.ExportCSV:
		return encodeCSV(w, ev)
	case grid.ExportXLSX:
		return encodeXLSX(w, ev)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ev.Format)
	}
}

// WriteFile encodes ev into dir and returns the written path, named
// base.<format>.
func WriteFile(dir, base string, ev grid.ExportEvent) (string, error) {
	path := filepath.Join(dir, base+"."+strings.ToLower(ev.Format))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := Encode(f, ev); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}

func encodeCSV(w io.Writer, ev grid.ExportEvent) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(ev.Columns))
	for i, c := range ev.Columns {
		header[i] = headerOf(c)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range ev.Rows {
		rec := make([]string, len(ev.Columns))
		for i, c := range ev.Columns {
			rec[i] = textOf(r.Value(c.ID))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func encodeXLSX(w io.Writer, ev grid.ExportEvent) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, c := range ev.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, headerOf(c)); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
	}
	for ri, r := range ev.Rows {
		for ci, c := range ev.Columns {
			v := r.Value(c.ID)
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func headerOf(c table.Column) string {
	if c.Header != "" {
		return c.Header
	}
	return c.ID
}

func textOf(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return table.FormatValue(v)
}
