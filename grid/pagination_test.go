package grid

import (
	"reflect"
	"testing"
)

func TestPagination_Pages(t *testing.T) {
	c := newControllers(newTestTable(12), Config{Paginate: true})

	if got := c.pagination.TotalPages(); got != 2 {
		t.Fatalf("total pages: got %d, want 2", got)
	}
	if got := len(c.pagination.DisplayedRows()); got != 10 {
		t.Fatalf("first page rows: got %d, want 10", got)
	}

	c.pagination.GoToNextPage()
	if got := rowIDs(c.pagination.DisplayedRows()); !reflect.DeepEqual(got, []string{"r10", "r11"}) {
		t.Fatalf("second page: got %v, want [r10 r11]", got)
	}
	c.pagination.GoToNextPage()
	if got := c.pagination.PageIndex(); got != 1 {
		t.Fatalf("page index past last page: got %d, want 1", got)
	}

	c.pagination.GoToPreviousPage()
	c.pagination.GoToPreviousPage()
	if got := c.pagination.PageIndex(); got != 0 {
		t.Fatalf("page index before first page: got %d, want 0", got)
	}
}

func TestPagination_SetPageSizeResetsIndex(t *testing.T) {
	tbl := newTestTable(100)
	c := newControllers(tbl, Config{Paginate: true})
	c.pagination.GoToNextPage()
	c.pagination.GoToNextPage()
	c.pagination.GoToNextPage()

	c.pagination.SetPageSize(25)
	if got := c.pagination.PageIndex(); got != 0 {
		t.Fatalf("page index: got %d, want 0", got)
	}
	if got := c.pagination.TotalPages(); got != 4 {
		t.Fatalf("total pages: got %d, want 4", got)
	}
	if got := tbl.Pagination().PageSize; got != 25 {
		t.Fatalf("table page size: got %d, want 25", got)
	}

	c.pagination.SetPageSize(0)
	if got := c.pagination.PageSize(); got != 25 {
		t.Fatalf("page size after invalid size: got %d, want 25", got)
	}
}

func TestPagination_CyclePageSize(t *testing.T) {
	c := newControllers(newTestTable(3), Config{Paginate: true, PageSizes: []int{10, 25, 50}})
	for _, want := range []int{25, 50, 10} {
		c.pagination.CyclePageSize()
		if got := c.pagination.PageSize(); got != want {
			t.Fatalf("page size: got %d, want %d", got, want)
		}
	}
}

func TestPagination_DisabledShowsAllRows(t *testing.T) {
	c := newControllers(newTestTable(25), Config{})
	if got := len(c.pagination.DisplayedRows()); got != 25 {
		t.Fatalf("rows: got %d, want 25", got)
	}
}

func TestPagination_EmptyData(t *testing.T) {
	c := newControllers(newTestTable(0), Config{Paginate: true})
	if got := c.pagination.TotalPages(); got != 1 {
		t.Fatalf("total pages: got %d, want 1", got)
	}
	if got := c.pagination.DisplayedRows(); len(got) != 0 {
		t.Fatalf("rows: got %v, want empty", got)
	}
}
