package grid

import (
	"slices"

	"github.com/iw2rmb/gridkit/table"
)

// PaginationController computes the visible row window.
type PaginationController struct {
	s *Store
}

func newPaginationController(s *Store) *PaginationController {
	return &PaginationController{s: s}
}

// DisplayedRows returns the rendered rows: the whole row model when
// pagination is off, otherwise the current page of it.
func (c *PaginationController) DisplayedRows() []table.Row {
	rows := c.s.tbl.Rows()
	if !c.s.paginate {
		return rows
	}
	p := c.s.pagination
	start := p.PageIndex * p.PageSize
	if start >= len(rows) {
		return []table.Row{}
	}
	end := min(start+p.PageSize, len(rows))
	return rows[start:end]
}

// TotalPages returns the page count, at least 1.
func (c *PaginationController) TotalPages() int {
	return c.s.totalPages()
}

// PageIndex returns the zero-based current page.
func (c *PaginationController) PageIndex() int { return c.s.pagination.PageIndex }

// PageSize returns the rows per page.
func (c *PaginationController) PageSize() int { return c.s.pagination.PageSize }

// PageSizes returns the selectable page sizes.
func (c *PaginationController) PageSizes() []int { return slices.Clone(c.s.pageSizes) }

// GoToNextPage advances one page, stopping at the last page.
func (c *PaginationController) GoToNextPage() {
	if c.s.pagination.PageIndex >= c.TotalPages()-1 {
		return
	}
	c.setPageIndex(c.s.pagination.PageIndex + 1)
}

// GoToPreviousPage goes back one page, stopping at the first page.
func (c *PaginationController) GoToPreviousPage() {
	if c.s.pagination.PageIndex <= 0 {
		return
	}
	c.setPageIndex(c.s.pagination.PageIndex - 1)
}

// SetPageSize changes the page size and returns to the first page.
// Non-positive sizes are ignored.
func (c *PaginationController) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	c.s.pagination.PageSize = size
	c.s.tbl.SetPageSize(size)
	c.setPageIndex(0)
}

// CyclePageSize switches to the next entry of PageSizes.
func (c *PaginationController) CyclePageSize() {
	i := slices.Index(c.s.pageSizes, c.s.pagination.PageSize)
	c.SetPageSize(c.s.pageSizes[(i+1)%len(c.s.pageSizes)])
}

func (c *PaginationController) setPageIndex(i int) {
	c.s.pagination.PageIndex = i
	c.s.tbl.SetPageIndex(i)
}
