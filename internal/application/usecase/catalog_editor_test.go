package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Alanove07/designbynexa/internal/adapters/out/memstore"
	catalogdom "github.com/Alanove07/designbynexa/internal/domain/catalog"
	common "github.com/Alanove07/designbynexa/internal/domain/common"
)

func newTestEditor(t *testing.T, c catalogdom.Collection, store catalogdom.Store, objects catalogdom.ObjectStore, r Reloader) *CatalogEditor {
	t.Helper()
	e, err := NewCatalogEditor(c, EditorDeps{Store: store, Objects: objects, Reloader: r, Logger: zap.NewNop()})
	require.NoError(t, err)
	e.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return e
}

func TestNewCatalogEditor_InvalidCollection(t *testing.T) {
	_, err := NewCatalogEditor("orders", EditorDeps{Store: newFlakyStore()})
	assert.ErrorIs(t, err, catalogdom.ErrInvalidCollection)
}

func TestEditor_CreateServiceWithoutOrderUsesExistingCount(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	for i, id := range []string{"a", "b", "c"} {
		store.Put("services", id, catalogdom.EncodeService(catalogdom.Service{Title: id, Description: "d", Order: i}))
	}
	reloader := &recordingReloader{}
	e := newTestEditor(t, catalogdom.CollectionServices, store, nil, reloader)

	e.BeginCreate(3)
	require.NoError(t, e.Update(func(d *catalogdom.Draft) {
		d.Title = "New"
		d.Description = "Desc"
		d.Order = ""
	}))
	id, err := e.Submit(ctx)
	require.NoError(t, err)

	docs, _ := store.List(ctx, "services")
	var created catalogdom.Service
	for _, d := range docs {
		if d.ID == id {
			created = catalogdom.DecodeService(d)
		}
	}
	assert.Equal(t, 3, created.Order)
	assert.Equal(t, catalogdom.ServiceIcons[0], created.Icon)

	mode, _ := e.Mode()
	assert.Equal(t, ModeClosed, mode)
	assert.Equal(t, []catalogdom.Collection{catalogdom.CollectionServices}, reloader.Calls())
}

func TestEditor_CreatePortfolioStampsCreatedAtAndSplitsTags(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)
	mem := memstore.NewDocumentStore().WithClock(func() time.Time { return fixed })
	e := newTestEditor(t, catalogdom.CollectionPortfolio, mem, nil, nil)

	e.BeginCreate(0)
	assert.Equal(t, string(catalogdom.CategoryBranding), e.Draft().Category)
	require.NoError(t, e.Update(func(d *catalogdom.Draft) {
		d.Title = "Logo"
		d.Description = "Brand refresh"
		d.Tags = "Logo, Branding,  Design"
	}))
	id, err := e.Submit(ctx)
	require.NoError(t, err)

	docs, _ := mem.List(ctx, "portfolioItems")
	require.Len(t, docs, 1)
	item := catalogdom.DecodePortfolioItem(docs[0])
	assert.Equal(t, id, item.ID)
	assert.Equal(t, []string{"Logo", "Branding", "Design"}, item.Tags)
	require.NotNil(t, item.CreatedAt)
	assert.Equal(t, fixed, *item.CreatedAt)
}

func TestEditor_RequiredFieldsCheckedBeforeStoreCall(t *testing.T) {
	store := newFlakyStore()
	e := newTestEditor(t, catalogdom.CollectionPortfolio, store, nil, nil)

	e.BeginCreate(0)
	_, err := e.Submit(context.Background())

	assert.ErrorIs(t, err, catalogdom.ErrRequiredField)
	assert.Equal(t, 0, store.writeCount())
	mode, _ := e.Mode()
	assert.Equal(t, ModeCreating, mode)
}

func TestEditor_WriteFailurePreservesDraft(t *testing.T) {
	store := newFlakyStore()
	store.failWrite = true
	reloader := &recordingReloader{}
	e := newTestEditor(t, catalogdom.CollectionPortfolio, store, nil, reloader)

	e.BeginCreate(0)
	require.NoError(t, e.Update(func(d *catalogdom.Draft) {
		d.Title, d.Description, d.Client = "T", "D", "ACME"
	}))
	before := e.Draft()

	_, err := e.Submit(context.Background())

	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, before, e.Draft())
	assert.Empty(t, reloader.Calls())

	// リトライで成功する
	store.failWrite = false
	_, err = e.Submit(context.Background())
	assert.NoError(t, err)
}

func TestEditor_EditUnchangedRoundTrip(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 3, 3, 3, 3, 0, time.UTC)
	store := newFlakyStore()
	orig := catalogdom.PortfolioItem{
		Title: "Poster", Description: "D", Category: catalogdom.CategoryPosters,
		ImageURL: "/img.png", Client: "C", Tags: []string{"a", "b"}, CreatedAt: &created,
	}
	store.Put("portfolioItems", "p1", catalogdom.EncodePortfolioItem(orig))
	before, _ := store.List(ctx, "portfolioItems")

	e := newTestEditor(t, catalogdom.CollectionPortfolio, store, nil, nil)
	orig.ID = "p1"
	require.NoError(t, e.BeginEdit("p1", catalogdom.DraftFromPortfolio(orig), 1))
	_, err := e.Submit(ctx)
	require.NoError(t, err)

	after, _ := store.List(ctx, "portfolioItems")
	assert.Equal(t, before, after)
}

func TestEditor_EditChangesOnlyEditedField(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	orig := catalogdom.Service{Title: "UI", Description: "D", Icon: "/i.svg", Color: "c", Order: 5}
	store.Put("services", "s1", catalogdom.EncodeService(orig))

	e := newTestEditor(t, catalogdom.CollectionServices, store, nil, nil)
	orig.ID = "s1"
	require.NoError(t, e.BeginEdit("s1", catalogdom.DraftFromService(orig), 1))
	require.NoError(t, e.Update(func(d *catalogdom.Draft) { d.Title = "UX" }))
	_, err := e.Submit(ctx)
	require.NoError(t, err)

	docs, _ := store.List(ctx, "services")
	got := catalogdom.DecodeService(docs[0])
	want := orig
	want.Title = "UX"
	assert.Equal(t, want, got)
}

func TestEditor_EditMissingItemFails(t *testing.T) {
	e := newTestEditor(t, catalogdom.CollectionServices, newFlakyStore(), nil, nil)
	require.NoError(t, e.BeginEdit("ghost", catalogdom.Draft{Title: "t", Description: "d", Order: "1"}, 0))

	_, err := e.Submit(context.Background())

	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.ErrorIs(t, err, common.ErrDocumentNotFound)
}

func TestEditor_UploadFailureLeavesDraftUntouched(t *testing.T) {
	e := newTestEditor(t, catalogdom.CollectionPortfolio, newFlakyStore(), failingObjects{}, nil)
	require.NoError(t, e.BeginEdit("p1", catalogdom.Draft{Title: "t", Description: "d", ImageURL: "/before.png"}, 1))

	_, err := e.UploadImage(context.Background(), "new.png", "image/png", strings.NewReader("png"))

	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Equal(t, "/before.png", e.Draft().ImageURL)

	// submit は引き続き可能
	store := newFlakyStore()
	store.Put("portfolioItems", "p1", common.Record{"title": "t"})
	e.store = store
	_, err = e.Submit(context.Background())
	assert.NoError(t, err)
}

func TestEditor_UploadSetsImageFieldAndKey(t *testing.T) {
	objects := memstore.NewObjectStore("https://cdn.test")
	e := newTestEditor(t, catalogdom.CollectionPortfolio, newFlakyStore(), objects, nil)
	e.BeginCreate(0)

	url, err := e.UploadImage(context.Background(), `C:\fakepath\logo.png`, "image/png", strings.NewReader("png"))

	require.NoError(t, err)
	_, ok := objects.Get("portfolio/1700000000123_logo.png")
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.test/portfolio/1700000000123_logo.png", url)
	assert.Equal(t, url, e.Draft().ImageURL)
}

func TestEditor_ServiceUploadSetsIcon(t *testing.T) {
	objects := memstore.NewObjectStore("https://cdn.test")
	e := newTestEditor(t, catalogdom.CollectionServices, newFlakyStore(), objects, nil)
	e.BeginCreate(0)

	url, err := e.UploadImage(context.Background(), "icon.svg", "image/svg+xml", strings.NewReader("<svg/>"))

	require.NoError(t, err)
	assert.Equal(t, url, e.Draft().Icon)
	assert.True(t, strings.HasPrefix(url, "https://cdn.test/services/"))
}

func TestEditor_SubmitRefusedWhileUploading(t *testing.T) {
	objects := newBlockingObjects()
	e := newTestEditor(t, catalogdom.CollectionPortfolio, newFlakyStore(), objects, nil)
	e.BeginCreate(0)
	require.NoError(t, e.Update(func(d *catalogdom.Draft) { d.Title, d.Description = "t", "d" }))

	done := make(chan error, 1)
	go func() {
		_, err := e.UploadImage(context.Background(), "a.png", "image/png", strings.NewReader("x"))
		done <- err
	}()
	<-objects.started

	_, err := e.Submit(context.Background())
	assert.ErrorIs(t, err, ErrUploadInProgress)

	close(objects.release)
	require.NoError(t, <-done)
	_, err = e.Submit(context.Background())
	assert.NoError(t, err)
}

func TestEditor_DeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	store.Put("portfolioItems", "p1", common.Record{"title": "t"})
	reloader := &recordingReloader{}
	e := newTestEditor(t, catalogdom.CollectionPortfolio, store, nil, reloader)

	var prompt string
	err := e.Delete(ctx, "p1", func(p string) bool { prompt = p; return false })
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, "Are you sure you want to delete this item?", prompt)
	assert.ErrorIs(t, e.Delete(ctx, "p1", nil), ErrNotConfirmed)
	assert.Equal(t, 0, store.writeCount())

	require.NoError(t, e.Delete(ctx, "p1", func(string) bool { return true }))
	docs, _ := store.List(ctx, "portfolioItems")
	assert.Empty(t, docs)
	assert.Len(t, reloader.Calls(), 1)
}

func TestEditor_DeleteFailureNoReload(t *testing.T) {
	store := newFlakyStore()
	store.failWrite = true
	reloader := &recordingReloader{}
	e := newTestEditor(t, catalogdom.CollectionServices, store, nil, reloader)

	err := e.Delete(context.Background(), "s1", func(string) bool { return true })

	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.Empty(t, reloader.Calls())
}

func TestEditor_ClosedEditorRejectsInput(t *testing.T) {
	e := newTestEditor(t, catalogdom.CollectionPortfolio, newFlakyStore(), nil, nil)

	assert.ErrorIs(t, e.Update(func(*catalogdom.Draft) {}), ErrEditorClosed)
	_, err := e.Submit(context.Background())
	assert.ErrorIs(t, err, ErrEditorClosed)

	e.BeginCreate(0)
	e.Cancel()
	mode, id := e.Mode()
	assert.Equal(t, ModeClosed, mode)
	assert.Empty(t, id)
}

func TestEditor_SubmitReloadsLoader(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	store.Put("services", "s1", catalogdom.EncodeService(catalogdom.Service{Title: "S1", Description: "d"}))
	loader := NewCatalogLoader(store, nil, time.Hour)
	require.Len(t, loader.Services(ctx), 1)

	e := newTestEditor(t, catalogdom.CollectionServices, store, nil, loader)
	e.BeginCreate(1)
	require.NoError(t, e.Update(func(d *catalogdom.Draft) { d.Title, d.Description = "S2", "d" }))
	_, err := e.Submit(ctx)
	require.NoError(t, err)

	assert.Len(t, loader.Services(ctx), 2)
}

func TestServiceEditorOptions(t *testing.T) {
	opts := ServiceEditorOptions()
	assert.Len(t, opts.Icons, len(catalogdom.ServiceIcons))
	opts.Icons[0] = "changed"
	assert.NotEqual(t, "changed", catalogdom.ServiceIcons[0])
}

func TestEditor_UnknownCategoryIsStoredAndWarned(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	store := memstore.NewDocumentStore()
	e, err := NewCatalogEditor(catalogdom.CollectionPortfolio, EditorDeps{Store: store, Logger: zap.New(core)})
	require.NoError(t, err)

	e.BeginCreate(0)
	require.NoError(t, e.Update(func(d *catalogdom.Draft) {
		d.Title = "Loop"
		d.Description = "Animated logo"
		d.Category = "Motion"
	}))
	id, err := e.Submit(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	docs, err := store.List(ctx, string(catalogdom.CollectionPortfolio))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 1, logs.FilterMessageSnippet("unknown category").Len())

	e.BeginCreate(1)
	require.NoError(t, e.Update(func(d *catalogdom.Draft) {
		d.Title = "Gig poster"
		d.Description = "A3 print"
		d.Category = string(catalogdom.CategoryPosters)
	}))
	_, err = e.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessageSnippet("unknown category").Len())
}
