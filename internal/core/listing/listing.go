// Package listing is the search/sort/paginate logic shared by every list
// screen. A screen describes itself once with a Spec and applies it to the
// full collection it fetched.
//
// Sorting is stable: items that compare equal keep the order the backend
// returned them in.
package listing

import (
	"slices"
	"strings"
)

// Comparator orders two items the way slices.SortStableFunc expects.
type Comparator[T any] func(a, b T) int

// Spec configures a list screen.
type Spec[T any] struct {
	// Search extracts the field matched by the search query. Nil disables search.
	Search func(T) string
	// Sorts is the fixed set of named comparators the screen offers.
	Sorts map[string]Comparator[T]
	// DefaultSort names the comparator used when the query's key is unknown.
	// An empty or unknown default keeps the backend order.
	DefaultSort string
	// PageSize applies when the query does not set one.
	PageSize int
	// Empty is the message shown when a page has no items.
	Empty string
}

// Query is a visitor's view of a list: search text, sort key and a 0-based page.
type Query struct {
	Search   string
	Sort     string
	Page     int
	PageSize int
}

// Page is one slice of the filtered, sorted collection.
type Page[T any] struct {
	Items     []T    `json:"items"`
	Page      int    `json:"page"`
	PageCount int    `json:"page_count"`
	PageSize  int    `json:"page_size"`
	Total     int    `json:"total"`
	Sort      string `json:"sort"`
	Search    string `json:"search,omitempty"`
	Empty     string `json:"empty_message,omitempty"`
}

// Filter keeps the items whose search field contains q, ignoring case.
// A blank q or a nil field keeps everything. The input is not modified.
func Filter[T any](items []T, q string, field func(T) string) []T {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" || field == nil {
		return slices.Clone(items)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(field(it)), q) {
			out = append(out, it)
		}
	}
	return out
}

// Sort returns a stably sorted copy of items. A nil comparator keeps the order.
func Sort[T any](items []T, cmp Comparator[T]) []T {
	out := slices.Clone(items)
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// Paginate slices items into pages of size and returns page index idx.
// A negative idx is treated as 0; an idx past the last page yields no items.
func Paginate[T any](items []T, idx, size int) ([]T, int) {
	if size <= 0 {
		size = len(items)
	}
	if len(items) == 0 || size == 0 {
		return []T{}, 0
	}
	pageCount := (len(items) + size - 1) / size
	if idx < 0 {
		idx = 0
	}
	start := idx * size
	if start >= len(items) {
		return []T{}, pageCount
	}
	end := min(start+size, len(items))
	return items[start:end], pageCount
}

// SortKey resolves the comparator name a query will actually use.
func (s Spec[T]) SortKey(requested string) string {
	if _, ok := s.Sorts[requested]; ok {
		return requested
	}
	if _, ok := s.Sorts[s.DefaultSort]; ok {
		return s.DefaultSort
	}
	return ""
}

// SortKeys lists the comparator names, sorted, for rendering a picker.
func (s Spec[T]) SortKeys() []string {
	keys := make([]string, 0, len(s.Sorts))
	for k := range s.Sorts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Apply filters, sorts and paginates items according to q.
func (s Spec[T]) Apply(items []T, q Query) Page[T] {
	size := q.PageSize
	if size <= 0 {
		size = s.PageSize
	}
	key := s.SortKey(q.Sort)

	filtered := Filter(items, q.Search, s.Search)
	sorted := Sort(filtered, s.Sorts[key])
	pageItems, pageCount := Paginate(sorted, q.Page, size)

	page := max(q.Page, 0)
	p := Page[T]{
		Items:     pageItems,
		Page:      page,
		PageCount: pageCount,
		PageSize:  size,
		Total:     len(filtered),
		Sort:      key,
		Search:    strings.TrimSpace(q.Search),
	}
	if len(pageItems) == 0 {
		p.Empty = s.Empty
	}
	return p
}
