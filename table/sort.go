package table

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Sorting returns the active sort order.
func (t *Table) Sorting() []SortSpec { return slices.Clone(t.sorting) }

// SetSorting replaces the sort order. Specs naming unknown or unsortable
// columns are dropped.
func (t *Table) SetSorting(specs []SortSpec) {
	next := make([]SortSpec, 0, len(specs))
	for _, s := range specs {
		c, ok := t.Column(s.ColumnID)
		if !ok || !c.CanSort {
			continue
		}
		next = append(next, s)
	}
	t.sorting = next
}

func (t *Table) sort(rows []Row) {
	if len(t.sorting) == 0 {
		return
	}
	slices.SortStableFunc(rows, func(a, b Row) int {
		for _, s := range t.sorting {
			av, bv := a.Value(s.ColumnID), b.Value(s.ColumnID)
			c := compareValues(av, bv)
			if c == 0 {
				continue
			}
			// Nil stays last in both directions.
			if s.Desc && av != nil && bv != nil {
				return -c
			}
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
}

// compareValues orders nil last, numbers numerically, times chronologically,
// false before true, and everything else case-insensitively as text.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return 1
		default:
			return -1
		}
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(strings.ToLower(FormatValue(a)), strings.ToLower(FormatValue(b)))
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
