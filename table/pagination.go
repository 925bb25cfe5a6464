package table

// Pagination returns the page window state.
func (t *Table) Pagination() Pagination { return t.pagination }

// SetPageSize sets the page size. Non-positive sizes are ignored.
func (t *Table) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	t.pagination.PageSize = size
}

// SetPageIndex sets the page index. Negative indexes clamp to 0.
func (t *Table) SetPageIndex(index int) {
	if index < 0 {
		index = 0
	}
	t.pagination.PageIndex = index
}
