package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func samplePortfolio() []PortfolioItem {
	return []PortfolioItem{
		{ID: "a", Title: "A", Category: CategoryPosters},
		{ID: "b", Title: "B", Category: CategoryBranding},
		{ID: "c", Title: "C", Category: CategoryPosters},
		{ID: "d", Title: "D", Category: CategoryIllustrations},
		{ID: "e", Title: "E", Category: "Motion"},
	}
}

func TestFilterByCategory_Posters(t *testing.T) {
	items := samplePortfolio()

	got := FilterByCategory(items, CategoryPosters)

	ids := make([]string, 0, len(got))
	for _, it := range got {
		ids = append(ids, it.ID)
	}
	if diff := cmp.Diff([]string{"a", "c"}, ids); diff != "" {
		t.Fatalf("filtered ids mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterByCategory_AllReturnsInput(t *testing.T) {
	items := samplePortfolio()

	got := FilterByCategory(items, CategoryAll)

	assert.Equal(t, items, got)
}

func TestFilterByCategory_CaseSensitive(t *testing.T) {
	got := FilterByCategory(samplePortfolio(), Category("posters"))
	assert.Empty(t, got)
}

func TestFilterByCategory_UnknownCategoryOnlyUnderAll(t *testing.T) {
	items := samplePortfolio()

	for _, c := range PortfolioCategories() {
		for _, it := range FilterByCategory(items, c) {
			assert.NotEqual(t, "e", it.ID, "category %q surfaced an unknown-category item", c)
		}
	}
	assert.Len(t, FilterByCategory(items, CategoryAll), 5)
	assert.False(t, IsKnownCategory("Motion"))
}

func TestFilterTabs(t *testing.T) {
	tabs := FilterTabs()
	assert.Equal(t, CategoryAll, tabs[0])
	assert.Equal(t, PortfolioCategories(), tabs[1:])
	assert.False(t, IsKnownCategory(CategoryAll))
	assert.True(t, IsKnownCategory(CategorySocialMedia))
}
