package state

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previews(ids ...string) []models.PostPreview {
	out := make([]models.PostPreview, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.PostPreview{ID: models.ID(id), Title: "post " + id})
	}
	return out
}

// loaded returns a paginated list resolved with the given count.
func loaded(t *testing.T, page, count int) List {
	t.Helper()
	l := NewList(20)
	l.Page = page
	l, req := Reload(l)
	l, ok := Resolve(l, FetchResult{Generation: req.Generation, Results: previews("1", "2"), Count: count})
	require.True(t, ok)
	return l
}

func TestNewList_Defaults(t *testing.T) {
	l := NewList(0)
	assert.Equal(t, Paginated, l.Mode)
	assert.Equal(t, 1, l.Page)
	assert.Equal(t, DefaultPageSize, l.PageSize)
	assert.False(t, ShowPagination(l))
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{45, 20, 3},
		{40, 20, 2},
		{1, 20, 1},
		{0, 20, 0},
		{21, 10, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(List{TotalCount: tt.count, PageSize: tt.size}), "count=%d size=%d", tt.count, tt.size)
	}
}

func TestPaginationBounds(t *testing.T) {
	last := loaded(t, 3, 45)
	require.Equal(t, 3, TotalPages(last))

	next, _, ok := NextPage(last)
	assert.False(t, ok, "next from the last page is a no-op")
	assert.Equal(t, last, next)

	first := loaded(t, 1, 45)
	prev, _, ok := PrevPage(first)
	assert.False(t, ok, "previous from page 1 is a no-op")
	assert.Equal(t, first, prev)

	moved, req, ok := NextPage(first)
	require.True(t, ok)
	assert.Equal(t, 2, moved.Page)
	assert.True(t, moved.Loading)
	assert.Equal(t, FetchRequest{Generation: moved.Generation, Mode: Paginated, Page: 2, PageSize: 20}, req)
}

func TestGoToPage_Clamps(t *testing.T) {
	l := loaded(t, 1, 45)

	l2, req, ok := GoToPage(l, 99)
	require.True(t, ok)
	assert.Equal(t, 3, l2.Page)
	assert.Equal(t, 3, req.Page)

	l3, req, ok := GoToPage(l2, -4)
	require.True(t, ok)
	assert.Equal(t, 1, l3.Page)
	assert.Equal(t, 1, req.Page)
}

func TestModeExclusivity(t *testing.T) {
	l := loaded(t, 2, 45)
	require.True(t, ShowPagination(l))

	l = SetSearchText(l, "golang")
	l, req := ApplyFilter(l)
	assert.Equal(t, Filtered, l.Mode)
	assert.Equal(t, Filtered, req.Mode)
	assert.Equal(t, models.SearchQuery{Search: "golang"}, req.Query)
	assert.Zero(t, req.Page)
	assert.Zero(t, req.PageSize)

	l, ok := Resolve(l, FetchResult{Generation: req.Generation, Results: previews("7", "8", "9")})
	require.True(t, ok)
	assert.Equal(t, 3, l.TotalCount)
	assert.False(t, ShowPagination(l))

	_, _, ok = NextPage(l)
	assert.False(t, ok, "page navigation is disabled in filtered mode")

	l = SetSearchText(l, "  ")
	l = SetCategory(l, 0)
	l, req = ApplyFilter(l)
	assert.Equal(t, Paginated, l.Mode)
	assert.Equal(t, 1, l.Page)
	assert.Equal(t, FetchRequest{Generation: l.Generation, Mode: Paginated, Page: 1, PageSize: 20}, req)
}

func TestApplyFilter_CategoryOnly(t *testing.T) {
	l := SetCategory(NewList(20), 4)
	l, req := ApplyFilter(l)
	assert.Equal(t, Filtered, l.Mode)
	assert.Equal(t, models.SearchQuery{CategoryID: 4}, req.Query)
}

func TestResolve_DropsStaleGeneration(t *testing.T) {
	l := NewList(20)
	l, first := Reload(l)
	l = SetSearchText(l, "x")
	l, second := ApplyFilter(l)
	require.Greater(t, second.Generation, first.Generation)

	stale, ok := Resolve(l, FetchResult{Generation: first.Generation, Results: previews("old"), Count: 100})
	assert.False(t, ok)
	assert.Equal(t, l, stale)

	fresh, ok := Resolve(l, FetchResult{Generation: second.Generation, Results: previews("new")})
	require.True(t, ok)
	assert.False(t, fresh.Loading)
	if diff := cmp.Diff(previews("new"), fresh.Results); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_FailureKeepsResults(t *testing.T) {
	l := loaded(t, 1, 45)
	before := l.Results

	l, req, ok := NextPage(l)
	require.True(t, ok)
	boom := errors.New("boom")
	l, applied := Resolve(l, FetchResult{Generation: req.Generation, Err: boom})
	require.True(t, applied)

	assert.False(t, l.Loading)
	assert.ErrorIs(t, l.Err, boom)
	assert.Equal(t, before, l.Results)
	assert.Equal(t, 45, l.TotalCount)
}

func TestResolve_SuccessClearsError(t *testing.T) {
	l := NewList(20)
	l.Err = errors.New("old")
	l, req := Reload(l)
	l, _ = Resolve(l, FetchResult{Generation: req.Generation})
	assert.NoError(t, l.Err)
	assert.NotNil(t, l.Results)
	assert.Empty(t, l.Results)
}

func TestRemovePost(t *testing.T) {
	l := loaded(t, 1, 45)

	l, removed := RemovePost(l, "1")
	assert.True(t, removed)
	assert.Equal(t, previews("2"), l.Results)
	assert.Equal(t, 44, l.TotalCount)

	l, removed = RemovePost(l, "missing")
	assert.False(t, removed)
	assert.Equal(t, 44, l.TotalCount)
}

func TestNextPage_AfterCountShrinks(t *testing.T) {
	l := loaded(t, 3, 41)
	require.Equal(t, 3, TotalPages(l))

	l, removed := RemovePost(l, "1")
	require.True(t, removed)
	require.Equal(t, 2, TotalPages(l))

	next, _, ok := NextPage(l)
	assert.False(t, ok, "next never moves to an earlier page")
	assert.Equal(t, l, next)

	prev, req, ok := PrevPage(l)
	require.True(t, ok)
	assert.Equal(t, 2, prev.Page)
	assert.Equal(t, 2, req.Page)

	// a shrunken server count has the same effect
	l = loaded(t, 3, 20)
	_, _, ok = NextPage(l)
	assert.False(t, ok)
}
