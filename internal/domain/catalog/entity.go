// internal/domain/catalog/entity.go
package catalog

import (
	"errors"
	"time"
)

// Collection はカタログのコレクション名です（Firestore のコレクション名と一致）。
type Collection string

const (
	CollectionServices  Collection = "services"
	CollectionPortfolio Collection = "portfolioItems"
)

// Valid は既知のコレクションかどうかを返します。
func (c Collection) Valid() bool {
	return c == CollectionServices || c == CollectionPortfolio
}

// Service はサービス一覧の 1 件です。
type Service struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category,omitempty" yaml:"category,omitempty"`
	Icon        string   `json:"icon" yaml:"icon"`
	Color       string   `json:"color,omitempty" yaml:"color,omitempty"`
	// 小さいほど先に表示。未設定は 0 扱い
	Order int `json:"order" yaml:"order"`
}

// PortfolioItem はポートフォリオの 1 件です。
type PortfolioItem struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	ImageURL    string   `json:"imageUrl" yaml:"imageUrl"`
	Client      string   `json:"client,omitempty" yaml:"client,omitempty"`
	Tags        []string `json:"tags" yaml:"tags"`
	// ストア側で採番される作成日時。デフォルト（フォールバック）データには無い
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"-"`
}

func (s Service) ItemCategory() Category       { return s.Category }
func (p PortfolioItem) ItemCategory() Category { return p.Category }

// Errors
var (
	ErrInvalidID         = errors.New("catalog: invalid id")
	ErrNotFound          = errors.New("catalog: not found")
	ErrInvalidCollection = errors.New("catalog: invalid collection")
	ErrRequiredField     = errors.New("catalog: required field is empty")
	ErrInvalidOrder      = errors.New("catalog: invalid order")
)
