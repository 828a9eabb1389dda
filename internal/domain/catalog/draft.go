// internal/domain/catalog/draft.go
package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Draft は管理画面の編集フォームの状態です。
// すべて文字列で持ち、送信時に Service / PortfolioItem に変換します。
//   - Tags  : "Logo, Branding, Design" のカンマ区切り
//   - Order : 数値文字列（空なら作成時のリスト件数）
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`

	// PortfolioItem
	ImageURL string `json:"imageUrl,omitempty"`
	Client   string `json:"client,omitempty"`
	Tags     string `json:"tags,omitempty"`

	// Service
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
	Order string `json:"order,omitempty"`

	// 編集元の作成日時（更新時に引き継ぐ。フォームには出さない）
	CreatedAt *time.Time `json:"-"`
}

// NewPortfolioDraft は新規作成フォームの初期値です。
func NewPortfolioDraft() Draft {
	return Draft{Category: string(CategoryBranding)}
}

// NewServiceDraft は新規作成フォームの初期値です（order は追加位置 = 既存件数）。
func NewServiceDraft(existing int) Draft {
	return Draft{
		Icon:  ServiceIcons[0],
		Color: ServiceColors[0].Value,
		Order: strconv.Itoa(existing),
	}
}

// DraftFromPortfolio は編集対象からフォーム状態を作ります（tags は ", " で連結）。
func DraftFromPortfolio(p PortfolioItem) Draft {
	d := Draft{
		Title:       p.Title,
		Description: p.Description,
		Category:    string(p.Category),
		ImageURL:    p.ImageURL,
		Client:      p.Client,
		Tags:        JoinTags(p.Tags),
	}
	if p.CreatedAt != nil {
		t := *p.CreatedAt
		d.CreatedAt = &t
	}
	return d
}

// DraftFromService は編集対象からフォーム状態を作ります。
func DraftFromService(s Service) Draft {
	return Draft{
		Title:       s.Title,
		Description: s.Description,
		Category:    string(s.Category),
		Icon:        s.Icon,
		Color:       s.Color,
		Order:       strconv.Itoa(s.Order),
	}
}

// Validate は必須項目（title / description）をチェックします。
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title", ErrRequiredField)
	}
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("%w: description", ErrRequiredField)
	}
	return nil
}

// PortfolioItem はフォーム状態を保存用のエンティティに変換します。
func (d Draft) PortfolioItem(id string) PortfolioItem {
	p := PortfolioItem{
		ID:          strings.TrimSpace(id),
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Category:    Category(strings.TrimSpace(d.Category)),
		ImageURL:    strings.TrimSpace(d.ImageURL),
		Client:      strings.TrimSpace(d.Client),
		Tags:        SplitTags(d.Tags),
	}
	if d.CreatedAt != nil {
		t := *d.CreatedAt
		p.CreatedAt = &t
	}
	return p
}

// Service はフォーム状態を保存用のエンティティに変換します。
// Order が空なら defaultOrder を使います。
func (d Draft) Service(id string, defaultOrder int) (Service, error) {
	order := defaultOrder
	if s := strings.TrimSpace(d.Order); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Service{}, fmt.Errorf("%w: %q", ErrInvalidOrder, d.Order)
		}
		order = n
	}
	return Service{
		ID:          strings.TrimSpace(id),
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Category:    Category(strings.TrimSpace(d.Category)),
		Icon:        strings.TrimSpace(d.Icon),
		Color:       strings.TrimSpace(d.Color),
		Order:       order,
	}, nil
}

// SplitTags parses "a,b,c" / "a, b, c" into []string (empty trimmed items are removed).
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinTags は編集フォーム用に ", " で連結します。
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// ========================================
// サービス編集フォームの選択肢
// ========================================

// ServiceIcons は同梱アイコンのパス一覧です。
var ServiceIcons = []string{
	"/Icons/logo_18362129.svg",
	"/Icons/poster_2139871.svg",
	"/Icons/artist_15198397.svg",
	"/Icons/social-media_18172766.svg",
	"/Icons/brand-identity_3419234.svg",
	"/Icons/wireframe_11812006.svg",
}

// ColorOption はカードのグラデーション指定です。
type ColorOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

var ServiceColors = []ColorOption{
	{Name: "Primary Blue", Value: "from-primary-500 to-primary-600"},
	{Name: "Purple to Blue", Value: "from-accent-purple to-primary-500"},
	{Name: "Pink to Orange", Value: "from-accent-pink to-accent-orange"},
	{Name: "Orange to Pink", Value: "from-accent-orange to-accent-pink"},
	{Name: "Dark Blue to Purple", Value: "from-primary-600 to-accent-purple"},
	{Name: "Purple to Pink", Value: "from-accent-purple to-accent-pink"},
}
