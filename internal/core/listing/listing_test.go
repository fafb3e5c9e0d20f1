package listing

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/kickside/newsdesk/internal/core/domain"
)

func makeArticles(n int) []domain.Article {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.Article, n)
	for i := range out {
		out[i] = domain.Article{
			ID:        fmt.Sprintf("a%02d", i),
			Title:     fmt.Sprintf("Story number %d", i),
			Category:  domain.Categories[i%len(domain.Categories)],
			Status:    domain.ArticlePublished,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func ids(items []domain.Article) []string {
	out := make([]string, len(items))
	for i, a := range items {
		out[i] = a.ID
	}
	return out
}

func TestApply_PageBoundsAndSum(t *testing.T) {
	for _, n := range []int{0, 1, 14, 15, 16, 31, 45} {
		items := makeArticles(n)
		first := Articles.Apply(items, Query{})

		total := 0
		for p := 0; p < first.PageCount; p++ {
			page := Articles.Apply(items, Query{Page: p})
			if len(page.Items) > Articles.PageSize {
				t.Fatalf("n=%d page %d: %d items exceeds page size", n, p, len(page.Items))
			}
			total += len(page.Items)
		}
		if total != n {
			t.Fatalf("n=%d: pages sum to %d", n, total)
		}
	}
}

func TestApply_EmptyCollection(t *testing.T) {
	page := Articles.Apply(nil, Query{Search: "xyz"})

	if page.PageCount != 0 {
		t.Fatalf("expected pageCount 0, got %d", page.PageCount)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %#v", page.Items)
	}
	if page.Empty != "No articles found" {
		t.Fatalf("unexpected empty message %q", page.Empty)
	}
}

func TestApply_PageBeyondRange(t *testing.T) {
	page := Articles.Apply(makeArticles(20), Query{Page: 7})

	if len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(page.Items))
	}
	if page.PageCount != 2 {
		t.Fatalf("expected 2 pages, got %d", page.PageCount)
	}
}

func TestApply_NegativePageIsFirst(t *testing.T) {
	items := makeArticles(20)
	neg := Articles.Apply(items, Query{Page: -3})
	first := Articles.Apply(items, Query{Page: 0})

	if !slices.Equal(ids(neg.Items), ids(first.Items)) || neg.Page != 0 {
		t.Fatalf("negative page should read as page 0")
	}
}

func TestFilter_CaseInsensitiveAndIdempotent(t *testing.T) {
	items := []domain.Article{
		{ID: "1", Title: "Election Results"},
		{ID: "2", Title: "Football season"},
		{ID: "3", Title: "ELECTION day"},
	}
	once := Filter(items, "election", Articles.Search)
	twice := Filter(once, "election", Articles.Search)

	if !slices.Equal(ids(once), []string{"1", "3"}) {
		t.Fatalf("unexpected filter result %v", ids(once))
	}
	if !slices.Equal(ids(once), ids(twice)) {
		t.Fatalf("filter is not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestFilter_BlankQueryKeepsAll(t *testing.T) {
	items := makeArticles(5)
	if got := Filter(items, "   ", Articles.Search); len(got) != 5 {
		t.Fatalf("expected 5, got %d", len(got))
	}
}

func TestSort_StableUnderReapplication(t *testing.T) {
	items := []domain.Article{
		{ID: "1", Category: "Sports"},
		{ID: "2", Category: "Business"},
		{ID: "3", Category: "Sports"},
		{ID: "4", Category: "Business"},
		{ID: "5", Category: "Sports"},
	}
	byCategory := Articles.Sorts[SortCategory]

	once := Sort(items, byCategory)
	twice := Sort(once, byCategory)

	want := []string{"2", "4", "1", "3", "5"}
	if !slices.Equal(ids(once), want) {
		t.Fatalf("expected backend order within ties %v, got %v", want, ids(once))
	}
	if !slices.Equal(ids(once), ids(twice)) {
		t.Fatalf("re-sorting changed order: %v vs %v", ids(once), ids(twice))
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	items := makeArticles(4)
	before := ids(items)
	_ = Sort(items, Articles.Sorts[SortDate])

	if !slices.Equal(before, ids(items)) {
		t.Fatalf("input was reordered")
	}
}

func TestApply_UnknownSortFallsBackToDefault(t *testing.T) {
	items := makeArticles(3)
	page := Articles.Apply(items, Query{Sort: "nope"})

	if page.Sort != SortDate {
		t.Fatalf("expected default sort %q, got %q", SortDate, page.Sort)
	}
	if page.Items[0].ID != "a02" {
		t.Fatalf("expected newest first, got %s", page.Items[0].ID)
	}
}

func TestApply_TotalCountsFilteredItems(t *testing.T) {
	items := []domain.Article{
		{ID: "1", Title: "alpha"},
		{ID: "2", Title: "beta"},
		{ID: "3", Title: "alphabet"},
	}
	page := Articles.Apply(items, Query{Search: "alp"})

	if page.Total != 2 || page.PageCount != 1 {
		t.Fatalf("unexpected total=%d pageCount=%d", page.Total, page.PageCount)
	}
	if page.Empty != "" {
		t.Fatalf("empty message set on non-empty page")
	}
}

func TestPaginate_CustomPageSize(t *testing.T) {
	items := makeArticles(10)
	page := Articles.Apply(items, Query{PageSize: 4, Page: 2})

	if page.PageCount != 3 || len(page.Items) != 2 {
		t.Fatalf("expected 3 pages and 2 items on last page, got %d/%d", page.PageCount, len(page.Items))
	}
}

func TestUsers_SortByRole(t *testing.T) {
	users := []domain.UserProfile{
		{ID: "1", Role: domain.RoleJournalist},
		{ID: "2", Role: domain.RoleAdmin},
		{ID: "3", Role: domain.RoleEditor},
	}
	page := Users.Apply(users, Query{Sort: SortRole})

	got := []domain.Role{page.Items[0].Role, page.Items[1].Role, page.Items[2].Role}
	want := []domain.Role{domain.RoleAdmin, domain.RoleEditor, domain.RoleJournalist}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected role order %v", got)
	}
}

func TestSpec_SortKeys(t *testing.T) {
	got := Subscribers.SortKeys()
	if !slices.Equal(got, []string{SortDate, SortEmail}) {
		t.Fatalf("unexpected sort keys %v", got)
	}
}
