package grid

// SearchController filters the grid on one designated field.
type SearchController struct {
	s     *Store
	field string
	query string
}

func newSearchController(s *Store, field string) *SearchController {
	return &SearchController{s: s, field: field}
}

// Field returns the searchable column id, empty when search is disabled.
func (c *SearchController) Field() string { return c.field }

// Query returns the current query.
func (c *SearchController) Query() string { return c.query }

// SetQuery forwards q as the column filter of the searchable field. It does
// nothing when no searchable field is configured.
func (c *SearchController) SetQuery(q string) {
	if c.field == "" {
		return
	}
	c.query = q
	c.s.SetColumnFilter(c.field, q)
}
