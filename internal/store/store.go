// Package store is the SQLite backend of the demo grid: it loads one table
// into grid rows and writes saved pending changes back.
package store

import (
	"database/sql"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/iw2rmb/gridkit/grid"
	"github.com/iw2rmb/gridkit/table"
)

// KeyColumn is the column used as row id.
const KeyColumn = "rowid"

// Store reads and updates one SQLite table.
type Store struct {
	db    *sql.DB
	table string
	cells map[string]grid.CellSpec
}

// Open opens the database at dsn and binds it to tableName.
func Open(dsn, tableName string) (*Store, error) {
	if !validIdent(tableName) {
		return nil, errors.Errorf("invalid table name %q", tableName)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "open %s", dsn)
	}
	return &Store{db: db, table: tableName}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SetCells declares the editor kinds of the columns. Date columns are read
// and written in their layout and checkbox columns as 0/1 integers.
func (s *Store) SetCells(cells map[string]grid.CellSpec) {
	s.cells = maps.Clone(cells)
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Columns lists the table's columns in declaration order. Columns with a
// numeric affinity are sortable right away; every column is pinnable.
func (s *Store) Columns() ([]table.Column, error) {
	rows, err := s.db.Query(fmt.Sprintf(`PRAGMA table_info("%s")`, s.table))
	if err != nil {
		return nil, errors.Wrapf(err, "describe %s", s.table)
	}
	defer rows.Close()

	var cols []table.Column
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, errors.Wrapf(err, "describe %s", s.table)
		}
		cols = append(cols, table.Column{ID: name, Header: name, CanSort: true, CanPin: true})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "describe %s", s.table)
	}
	if len(cols) == 0 {
		return nil, errors.Errorf("table %s not found", s.table)
	}
	return cols, nil
}

// Load reads every row of the table. Row ids are the SQLite rowids.
func (s *Store) Load(cols []table.Column) ([]table.Row, error) {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = quote(c.ID)
	}
	q := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s`, KeyColumn, strings.Join(names, ", "), quote(s.table), KeyColumn)
	rows, err := s.db.Query(q)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", s.table)
	}
	defer rows.Close()

	var out []table.Row
	for rows.Next() {
		var id int64
		vals := make([]any, len(cols))
		dest := make([]any, len(cols)+1)
		dest[0] = &id
		for i := range vals {
			dest[i+1] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "load %s", s.table)
		}
		r := table.Row{ID: fmt.Sprint(id), Values: make(map[string]any, len(cols))}
		for i, c := range cols {
			r.Values[c.ID] = s.normalize(c.ID, vals[i])
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "load %s", s.table)
	}
	return out, nil
}

// Apply writes changes in one transaction. Nothing is written when any
// update fails.
func (s *Store) Apply(changes []grid.PendingChange) error {
	if len(changes) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	for _, c := range changes {
		if !validIdent(c.ColumnID) {
			tx.Rollback()
			return errors.Errorf("invalid column %q", c.ColumnID)
		}
		q := fmt.Sprintf(`UPDATE %s SET %s = ? WHERE %s = ?`, quote(s.table), quote(c.ColumnID), KeyColumn)
		res, err := tx.Exec(q, s.bindValue(c.ColumnID, c.Value), c.RowID)
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "update row %s column %s", c.RowID, c.ColumnID)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			tx.Rollback()
			return errors.Errorf("update row %s: no such row", c.RowID)
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}

func (s *Store) normalize(columnID string, v any) any {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	spec, ok := s.cells[columnID]
	if !ok {
		return v
	}
	switch spec.Kind {
	case grid.CellDate:
		str, ok := v.(string)
		if !ok {
			return v
		}
		for _, layout := range []string{spec.Layout(), time.RFC3339} {
			if t, err := time.Parse(layout, str); err == nil {
				return t
			}
		}
	case grid.CellCheckbox:
		if n, ok := v.(int64); ok {
			return n != 0
		}
	}
	return v
}

func (s *Store) bindValue(columnID string, v any) any {
	switch v := v.(type) {
	case time.Time:
		if spec, ok := s.cells[columnID]; ok && spec.Kind == grid.CellDate {
			return v.Format(spec.Layout())
		}
		return v.Format(time.RFC3339)
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return v
	}
}

func quote(ident string) string { return `"` + ident + `"` }

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}
