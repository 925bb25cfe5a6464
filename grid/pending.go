package grid

import "slices"

// PendingChange is an uncommitted edit to one cell.
type PendingChange struct {
	RowID    string
	ColumnID string
	Value    any
}

// PendingBuffer holds at most one PendingChange per (RowID, ColumnID) pair,
// in first-edit order.
type PendingBuffer struct {
	changes []PendingChange
}

// Upsert records c, overwriting the value of an existing change to the same
// cell in place. It reports whether a new entry was appended.
func (b *PendingBuffer) Upsert(c PendingChange) bool {
	for i := range b.changes {
		if b.changes[i].RowID == c.RowID && b.changes[i].ColumnID == c.ColumnID {
			b.changes[i].Value = c.Value
			return false
		}
	}
	b.changes = append(b.changes, c)
	return true
}

// Get returns the pending value for a cell.
func (b *PendingBuffer) Get(rowID, columnID string) (any, bool) {
	for _, c := range b.changes {
		if c.RowID == rowID && c.ColumnID == columnID {
			return c.Value, true
		}
	}
	return nil, false
}

// Changes returns a copy of the buffered changes.
func (b *PendingBuffer) Changes() []PendingChange {
	out := slices.Clone(b.changes)
	if out == nil {
		out = []PendingChange{}
	}
	return out
}

func (b *PendingBuffer) Len() int { return len(b.changes) }

func (b *PendingBuffer) Clear() { b.changes = nil }
