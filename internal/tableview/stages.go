package tableview

import (
	"slices"
	"strings"
)

// Direction is the order applied by the sort stage.
type Direction uint8

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortSpec names the column to sort by and its direction.
// The zero value means no sort: records keep their insertion order.
type SortSpec struct {
	Key string
	Dir Direction
}

// IsZero reports whether s requests no sort.
func (s SortSpec) IsZero() bool { return s.Key == "" }

// Column describes one field of T for display and sorting.
type Column[T any] struct {
	Key      string
	Label    string
	Sortable bool
	Width    int // rendering hint, in cells
	Value    func(T) Value
}

// TagFunc returns the tag or category set a record is filtered on.
type TagFunc[T any] func(T) []string

// MatchFunc reports whether a record matches a free-text query.
// The query is already trimmed and lower-cased.
type MatchFunc[T any] func(rec T, query string) bool

// Filter returns the records whose tag set contains active.
// An empty active value, the all sentinel, or a nil tag function lets
// every record through. The result is never nil and records is not
// modified.
func Filter[T any](records []T, tags TagFunc[T], active, all string) []T {
	if active == "" || active == all || tags == nil {
		return clone(records)
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if slices.Contains(tags(rec), active) {
			out = append(out, rec)
		}
	}
	return out
}

// Search returns the records match accepts for query. A blank query or
// nil matcher lets every record through.
func Search[T any](records []T, match MatchFunc[T], query string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || match == nil {
		return clone(records)
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if match(rec, q) {
			out = append(out, rec)
		}
	}
	return out
}

// Sort returns a copy of records stably ordered by spec. A zero spec or a
// key that names no column returns the records in their original order.
func Sort[T any](records []T, columns []Column[T], spec SortSpec) []T {
	out := clone(records)
	if spec.IsZero() {
		return out
	}
	col, ok := findColumn(columns, spec.Key)
	if !ok || col.Value == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return compareValues(col.Value(a), col.Value(b), spec.Dir)
	})
	return out
}

// Paginate slices out page pageIndex (1-based) of size pageSize.
// A page outside [1, totalPages] yields an empty slice. pageSize below 1
// is treated as 1.
func Paginate[T any](records []T, pageIndex, pageSize int) ([]T, int) {
	if pageSize < 1 {
		pageSize = 1
	}
	total := TotalPages(len(records), pageSize)
	start := (pageIndex - 1) * pageSize
	if pageIndex < 1 || start >= len(records) {
		return []T{}, total
	}
	end := min(start+pageSize, len(records))
	return clone(records[start:end]), total
}

// TotalPages returns max(1, ceil(n/pageSize)).
func TotalPages(n, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	return max(1, (n+pageSize-1)/pageSize)
}

func findColumn[T any](columns []Column[T], key string) (Column[T], bool) {
	for _, c := range columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// clone copies s into a non-nil slice.
func clone[T any](s []T) []T {
	return append(make([]T, 0, len(s)), s...)
}
