package table

import "slices"

// ColumnPinning returns a copy of the pinning state.
func (t *Table) ColumnPinning() Pinning { return t.pinning.Clone() }

// SetColumnPinning replaces the pinning state. Unknown, unpinnable and
// duplicate ids are dropped.
func (t *Table) SetColumnPinning(p Pinning) {
	t.pinning = Pinning{
		Left:  t.cleanPinned(p.Left, nil),
		Right: t.cleanPinned(p.Right, p.Left),
	}
}

func (t *Table) cleanPinned(ids, exclude []string) []string {
	out := []string{}
	for _, id := range ids {
		c, ok := t.Column(id)
		if !ok || !c.CanPin || slices.Contains(out, id) || slices.Contains(exclude, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// PinnedStart returns the cumulative width of the visible left-pinned
// columns placed before columnID. It is zero for unpinned columns.
func (t *Table) PinnedStart(columnID string) int {
	if !slices.Contains(t.pinning.Left, columnID) {
		return 0
	}
	start := 0
	for _, id := range t.pinning.Left {
		if id == columnID {
			break
		}
		if t.hidden[id] {
			continue
		}
		start += t.ColumnWidth(id)
	}
	return start
}
