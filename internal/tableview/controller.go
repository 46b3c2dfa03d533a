// Package tableview implements the Controller layer shared by every table
// and product list in the storefront.
//
// A Controller owns one record set plus the selector state that decides
// which slice of it is visible, and re-derives that slice after every
// mutation:
//
//	┌──────────┐   ┌────────┐   ┌────────┐   ┌──────┐   ┌──────────┐
//	│ records  │──>│ Filter │──>│ Search │──>│ Sort │──>│ Paginate │──> Snapshot
//	└──────────┘   └────────┘   └────────┘   └──────┘   └──────────┘
//
// Each stage is a pure function over slices and can be used on its own.
//
// # Selector state
//
//   - active filter: a tag, or the all sentinel ("All" by default)
//   - query: free text handed to the MatchFunc
//   - sort: column key and direction, or none
//   - page index: 1-based, always within [1, totalPages]
//
// Changing the filter, query, or sort returns to page 1. Replacing the
// records keeps the page (clamped) unless Options.ResetPageOnReplace is set.
//
// # Concurrency
//
// A Controller is not safe for concurrent use. It belongs to one view and
// is mutated only from that view's update loop.
package tableview

// DefaultPageSize is used when Options.PageSize is not positive.
const DefaultPageSize = 5

// DefaultAllFilter is the filter value that lets every record through.
const DefaultAllFilter = "All"

// Options configures a Controller.
type Options struct {
	PageSize  int
	AllFilter string

	// ResetPageOnReplace returns to page 1 whenever SetRecords is called.
	// Admin tables leave it off so background refreshes keep the user's
	// place; category pages turn it on.
	ResetPageOnReplace bool
}

func (o Options) withDefaults() Options {
	if o.PageSize < 1 {
		o.PageSize = DefaultPageSize
	}
	if o.AllFilter == "" {
		o.AllFilter = DefaultAllFilter
	}
	return o
}

// Snapshot is the derived view state after a mutation. Items is a fresh
// slice owned by the caller.
type Snapshot[T any] struct {
	Items         []T
	PageIndex     int
	PageSize      int
	TotalPages    int
	FilteredCount int
	TotalCount    int
	ActiveFilter  string
	Query         string
	Sort          SortSpec
	Loading       bool
	Err           error
}

// HasPrev reports whether PrevPage would move.
func (s Snapshot[T]) HasPrev() bool { return s.PageIndex > 1 }

// HasNext reports whether NextPage would move.
func (s Snapshot[T]) HasNext() bool { return s.PageIndex < s.TotalPages }

// Empty reports whether there is nothing to show on the current page.
func (s Snapshot[T]) Empty() bool { return len(s.Items) == 0 }

// Controller holds a record set and its selector state.
type Controller[T any] struct {
	columns []Column[T]
	tags    TagFunc[T]
	match   MatchFunc[T]
	opts    Options

	records []T
	filter  string
	query   string
	sort    SortSpec
	page    int
	loading bool
	err     error

	snap Snapshot[T]
}

// New creates a Controller with no records, the all filter, no sort, and
// page 1.
func New[T any](columns []Column[T], tags TagFunc[T], opts Options) *Controller[T] {
	opts = opts.withDefaults()
	c := &Controller[T]{
		columns: columns,
		tags:    tags,
		opts:    opts,
		filter:  opts.AllFilter,
		page:    1,
	}
	c.recompute()
	return c
}

// WithMatcher sets the free-text matcher used by SetQuery.
func (c *Controller[T]) WithMatcher(match MatchFunc[T]) *Controller[T] {
	c.match = match
	c.recompute()
	return c
}

// Columns returns the column set the controller sorts on.
func (c *Controller[T]) Columns() []Column[T] { return c.columns }

// Options returns the effective options.
func (c *Controller[T]) Options() Options { return c.opts }

// Snapshot returns the current derived state.
func (c *Controller[T]) Snapshot() Snapshot[T] { return c.snap }

// SetFilter selects a tag and returns to page 1.
func (c *Controller[T]) SetFilter(value string) Snapshot[T] {
	if value == "" {
		value = c.opts.AllFilter
	}
	c.filter = value
	c.page = 1
	return c.recompute()
}

// SetQuery sets the free-text search and returns to page 1.
func (c *Controller[T]) SetQuery(query string) Snapshot[T] {
	c.query = query
	c.page = 1
	return c.recompute()
}

// SetSort is the column-header protocol: choosing the current column while
// ascending flips it to descending, anything else sorts key ascending.
// Keys that are unknown or not sortable are ignored.
func (c *Controller[T]) SetSort(key string) Snapshot[T] {
	col, ok := findColumn(c.columns, key)
	if !ok || !col.Sortable {
		return c.snap
	}
	if c.sort.Key == key && c.sort.Dir == Ascending {
		c.sort.Dir = Descending
	} else {
		c.sort = SortSpec{Key: key, Dir: Ascending}
	}
	c.page = 1
	return c.recompute()
}

// SetSortSpec applies spec directly, as a sort dropdown does, and returns
// to page 1. A zero spec clears the sort.
func (c *Controller[T]) SetSortSpec(spec SortSpec) Snapshot[T] {
	if !spec.IsZero() {
		if col, ok := findColumn(c.columns, spec.Key); !ok || !col.Sortable {
			return c.snap
		}
	}
	c.sort = spec
	c.page = 1
	return c.recompute()
}

// ClearSort restores insertion order and returns to page 1.
func (c *Controller[T]) ClearSort() Snapshot[T] {
	return c.SetSortSpec(SortSpec{})
}

// NextPage advances one page. It does nothing on the last page.
func (c *Controller[T]) NextPage() Snapshot[T] {
	return c.GoToPage(c.page + 1)
}

// PrevPage goes back one page. It does nothing on page 1.
func (c *Controller[T]) PrevPage() Snapshot[T] {
	return c.GoToPage(c.page - 1)
}

// GoToPage jumps to page n, clamped to [1, totalPages].
func (c *Controller[T]) GoToPage(n int) Snapshot[T] {
	c.page = clampPage(n, c.snap.TotalPages)
	return c.recompute()
}

// SetRecords replaces the record set wholesale. The page index is clamped
// into the new range and only reset when ResetPageOnReplace is set.
func (c *Controller[T]) SetRecords(records []T) Snapshot[T] {
	c.records = clone(records)
	if c.opts.ResetPageOnReplace {
		c.page = 1
	}
	return c.recompute()
}

// SetLoading marks the record source as in flight. While loading the
// snapshot carries no items so the view can draw a placeholder.
func (c *Controller[T]) SetLoading(loading bool) Snapshot[T] {
	c.loading = loading
	return c.recompute()
}

// SetError records the record source's last error. The records are kept.
func (c *Controller[T]) SetError(err error) Snapshot[T] {
	c.err = err
	return c.recompute()
}

// Loaded applies a finished fetch: loading ends, err is recorded, and on
// success the records are replaced.
func (c *Controller[T]) Loaded(records []T, err error) Snapshot[T] {
	c.loading = false
	c.err = err
	if err != nil {
		return c.recompute()
	}
	return c.SetRecords(records)
}

// recompute derives the snapshot from records and selector state. It is
// the only place the snapshot is written.
func (c *Controller[T]) recompute() Snapshot[T] {
	filtered := Filter(c.records, c.tags, c.filter, c.opts.AllFilter)
	filtered = Search(filtered, c.match, c.query)
	ordered := Sort(filtered, c.columns, c.sort)

	total := TotalPages(len(ordered), c.opts.PageSize)
	c.page = clampPage(c.page, total)
	items, _ := Paginate(ordered, c.page, c.opts.PageSize)
	if c.loading {
		items = []T{}
	}

	c.snap = Snapshot[T]{
		Items:         items,
		PageIndex:     c.page,
		PageSize:      c.opts.PageSize,
		TotalPages:    total,
		FilteredCount: len(ordered),
		TotalCount:    len(c.records),
		ActiveFilter:  c.filter,
		Query:         c.query,
		Sort:          c.sort,
		Loading:       c.loading,
		Err:           c.err,
	}
	return c.snap
}

func clampPage(n, total int) int {
	return max(1, min(n, total))
}
