package catalog

// Category はポートフォリオの分類タグです。
type Category string

const (
	// CategoryAll は UI 専用の疑似カテゴリ。ストアには保存しない
	CategoryAll Category = "All"

	CategoryBranding      Category = "Branding"
	CategoryPosters       Category = "Posters"
	CategoryPortraits     Category = "Portraits"
	CategoryIllustrations Category = "Illustrations"
	CategorySocialMedia   Category = "Social Media"
)

var portfolioCategories = []Category{
	CategoryBranding,
	CategoryPosters,
	CategoryPortraits,
	CategoryIllustrations,
	CategorySocialMedia,
}

// PortfolioCategories は保存可能なカテゴリの固定セットを返します。
func PortfolioCategories() []Category {
	out := make([]Category, len(portfolioCategories))
	copy(out, portfolioCategories)
	return out
}

// FilterTabs は公開サイトのフィルタタブ（All + 固定セット）を返します。
func FilterTabs() []Category {
	return append([]Category{CategoryAll}, portfolioCategories...)
}

// IsKnownCategory は c が固定セットに含まれるかを返します（All は含まない）。
func IsKnownCategory(c Category) bool {
	for _, k := range portfolioCategories {
		if k == c {
			return true
		}
	}
	return false
}

// Categorized はカテゴリで絞り込めるアイテム
type Categorized interface {
	ItemCategory() Category
}

// FilterByCategory は selected に一致するアイテムだけを元の順序のまま返します。
// selected が All の場合は入力をそのまま返します。比較は大文字小文字を区別します。
func FilterByCategory[T Categorized](items []T, selected Category) []T {
	if selected == CategoryAll {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.ItemCategory() == selected {
			out = append(out, it)
		}
	}
	return out
}
