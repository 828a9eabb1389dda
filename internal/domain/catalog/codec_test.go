package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	common "github.com/Alanove07/designbynexa/internal/domain/common"
)

func TestDecodePortfolioItem_FirestoreShapes(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := Document{ID: "p1", Data: Record{
		"title":       "T",
		"description": "D",
		"category":    "Posters",
		"imageUrl":    "u",
		"tags":        []any{"x", "y", 3},
		"createdAt":   ts,
	}}

	p := DecodePortfolioItem(doc)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, CategoryPosters, p.Category)
	assert.Equal(t, []string{"x", "y"}, p.Tags)
	require.NotNil(t, p.CreatedAt)
	assert.True(t, ts.Equal(*p.CreatedAt))
	assert.Equal(t, "", p.Client)
}

func TestDecodePortfolioItem_JSONShapes(t *testing.T) {
	doc := Document{ID: "p2", Data: Record{
		"title":     "T",
		"tags":      "a, b",
		"createdAt": "2025-01-02T03:04:05Z",
	}}

	p := DecodePortfolioItem(doc)

	assert.Equal(t, []string{"a", "b"}, p.Tags)
	require.NotNil(t, p.CreatedAt)
	assert.Equal(t, 2025, p.CreatedAt.Year())
}

func TestDecodeService_OrderShapes(t *testing.T) {
	for _, v := range []any{int64(3), float64(3), 3, "3"} {
		s := DecodeService(Document{ID: "s", Data: Record{"order": v}})
		assert.Equal(t, 3, s.Order, "order value %#v", v)
	}
	missing := DecodeService(Document{ID: "s", Data: Record{}})
	assert.Equal(t, 0, missing.Order)
}

func TestEncodePortfolioItem_OmitsMissingCreatedAt(t *testing.T) {
	rec := EncodePortfolioItem(PortfolioItem{Title: "T"})

	_, ok := rec["createdAt"]
	assert.False(t, ok)
	assert.Equal(t, []string{}, rec["tags"])

	rec = WithServerCreatedAt(rec)
	assert.True(t, common.IsServerTimestamp(rec["createdAt"]))
}

func TestEncodeDecodeService(t *testing.T) {
	s := Service{ID: "s9", Title: "T", Description: "D", Icon: "/i.svg", Color: "c", Order: 2}

	got := DecodeService(Document{ID: "s9", Data: EncodeService(s)})

	assert.Equal(t, s, got)
}
