// internal/domain/catalog/codec.go
package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	common "github.com/Alanove07/designbynexa/internal/domain/common"
)

// 共通型エイリアス（インフラ非依存）
type Record = common.Record
type Document = common.Document

// ドキュメントのフィールド名（フロント側のキー名と一致させる）
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldCategory    = "category"
	fieldIcon        = "icon"
	fieldColor       = "color"
	fieldOrder       = "order"
	fieldImageURL    = "imageUrl"
	fieldClient      = "client"
	fieldTags        = "tags"
	fieldCreatedAt   = "createdAt"
)

// ========================================
// Service
// ========================================

func DecodeService(doc Document) Service {
	d := doc.Data
	return Service{
		ID:          strings.TrimSpace(doc.ID),
		Title:       asString(d[fieldTitle]),
		Description: asString(d[fieldDescription]),
		Category:    Category(asString(d[fieldCategory])),
		Icon:        asString(d[fieldIcon]),
		Color:       asString(d[fieldColor]),
		Order:       asInt(d[fieldOrder]),
	}
}

// EncodeService は ID を除いたレコード全体を返します（Update は全体上書き）。
func EncodeService(s Service) Record {
	rec := Record{
		fieldTitle:       s.Title,
		fieldDescription: s.Description,
		fieldIcon:        s.Icon,
		fieldColor:       s.Color,
		fieldOrder:       s.Order,
	}
	if s.Category != "" {
		rec[fieldCategory] = string(s.Category)
	}
	return rec
}

// ========================================
// PortfolioItem
// ========================================

func DecodePortfolioItem(doc Document) PortfolioItem {
	d := doc.Data
	return PortfolioItem{
		ID:          strings.TrimSpace(doc.ID),
		Title:       asString(d[fieldTitle]),
		Description: asString(d[fieldDescription]),
		Category:    Category(asString(d[fieldCategory])),
		ImageURL:    asString(d[fieldImageURL]),
		Client:      asString(d[fieldClient]),
		Tags:        asStrings(d[fieldTags]),
		CreatedAt:   asTime(d[fieldCreatedAt]),
	}
}

// EncodePortfolioItem は ID を除いたレコード全体を返します。
// CreatedAt が nil の場合は createdAt を含めません（新規作成時は呼び出し側が ServerTimestamp を入れる）。
func EncodePortfolioItem(p PortfolioItem) Record {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	rec := Record{
		fieldTitle:       p.Title,
		fieldDescription: p.Description,
		fieldCategory:    string(p.Category),
		fieldImageURL:    p.ImageURL,
		fieldClient:      p.Client,
		fieldTags:        tags,
	}
	if p.CreatedAt != nil && !p.CreatedAt.IsZero() {
		rec[fieldCreatedAt] = p.CreatedAt.UTC()
	}
	return rec
}

// WithServerCreatedAt は rec に createdAt = ServerTimestamp を入れて返します。
func WithServerCreatedAt(rec Record) Record {
	rec[fieldCreatedAt] = common.ServerTimestamp
	return rec
}

// ========================================
// Loose value helpers
// ========================================
// ストアによって数値・時刻・配列の型が揺れるため、ここで吸収する
// （Firestore: int64/time.Time/[]any, Postgres JSONB: float64/string/[]any）

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float32:
		return int(t)
	case float64:
		return int(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil {
			return int(f)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return 0
}

func asStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		// 古いデータで tags が文字列のまま保存されているケース
		return SplitTags(t)
	default:
		return []string{}
	}
}

func asTime(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return nil
		}
		u := t.UTC()
		return &u
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil
		}
		u := t.UTC()
		return &u
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
			if parsed, err := time.Parse(layout, s); err == nil {
				u := parsed.UTC()
				return &u
			}
		}
	}
	return nil
}
