package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	common "github.com/Alanove07/designbynexa/internal/domain/common"
)

func TestDocumentStore_CRUD(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewDocumentStore().WithClock(func() time.Time { return fixed })

	id, err := s.Insert(ctx, "portfolioItems", common.Record{"title": "A", "createdAt": common.ServerTimestamp})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	docs, err := s.List(ctx, "portfolioItems")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, fixed, docs[0].Data["createdAt"])

	require.NoError(t, s.Update(ctx, "portfolioItems", id, common.Record{"title": "B"}))
	docs, _ = s.List(ctx, "portfolioItems")
	assert.Equal(t, common.Record{"title": "B"}, docs[0].Data)

	assert.ErrorIs(t, s.Update(ctx, "portfolioItems", "missing", common.Record{}), common.ErrDocumentNotFound)

	require.NoError(t, s.Delete(ctx, "portfolioItems", id))
	require.NoError(t, s.Delete(ctx, "portfolioItems", id))
	docs, _ = s.List(ctx, "portfolioItems")
	assert.Empty(t, docs)
}

func TestDocumentStore_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()
	_, err := s.Insert(ctx, "c", common.Record{"tags": []string{"a"}})
	require.NoError(t, err)

	docs, _ := s.List(ctx, "c")
	docs[0].Data["tags"].([]string)[0] = "mutated"

	again, _ := s.List(ctx, "c")
	assert.Equal(t, []string{"a"}, again[0].Data["tags"])
}

func TestDocumentStore_InvalidArgs(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()

	_, err := s.List(ctx, " ")
	assert.ErrorIs(t, err, common.ErrInvalidCollection)
	assert.ErrorIs(t, s.Delete(ctx, "c", ""), common.ErrInvalidDocumentID)
}

func TestObjectStore_PublicURL(t *testing.T) {
	s := NewObjectStore("https://cdn.example.com/")
	require.NoError(t, s.Put(context.Background(), "portfolio/1_a b.png", "image/png", []byte{1}))

	assert.Equal(t, "https://cdn.example.com/portfolio/1_a%20b.png", s.PublicURL("portfolio/1_a b.png"))
	o, ok := s.Get("portfolio/1_a b.png")
	require.True(t, ok)
	assert.Equal(t, "image/png", o.ContentType)
}

func TestObjectStore_ReadReturnsCopy(t *testing.T) {
	s := NewObjectStore("")
	require.NoError(t, s.Put(context.Background(), "uploads/1_a.png", "image/png", []byte("abc")))

	ct, data, ok := s.Read("uploads/1_a.png")
	require.True(t, ok)
	assert.Equal(t, "image/png", ct)
	data[0] = 'z'

	_, again, _ := s.Read("uploads/1_a.png")
	assert.Equal(t, []byte("abc"), again)

	_, _, ok = s.Read("uploads/none.png")
	assert.False(t, ok)
}
