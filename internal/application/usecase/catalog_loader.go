// internal/application/usecase/catalog_loader.go
package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	catalogdom "github.com/Alanove07/designbynexa/internal/domain/catalog"
)

// Reloader は Editor の書き込み成功後に呼ばれる「無効化して再読込」シグナルです。
type Reloader interface {
	Reload(ctx context.Context, c catalogdom.Collection)
}

// ==============================
// Fetch-with-fallback
// ==============================

// listStored はストアの全件を decode / sort して返します（フォールバックなし）。
func listStored[T any](
	ctx context.Context,
	store catalogdom.Store,
	c catalogdom.Collection,
	decode func(catalogdom.Document) T,
	sortFn func([]T),
) ([]T, error) {
	docs, err := store.List(ctx, string(c))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c, err)
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, decode(d))
	}
	if sortFn != nil {
		sortFn(out)
	}
	return out, nil
}

// loadWithFallback は結果と「ストア由来かどうか」を返します。
func loadWithFallback[T any](
	ctx context.Context,
	logger *zap.Logger,
	store catalogdom.Store,
	c catalogdom.Collection,
	defaults []T,
	decode func(catalogdom.Document) T,
	sortFn func([]T),
) ([]T, bool) {
	items, err := listStored(ctx, store, c, decode, sortFn)
	switch {
	case err != nil:
		logger.Warn("[catalog_loader] store read failed, using defaults",
			zap.String("collection", string(c)),
			zap.Error(err),
		)
		return cloneSlice(defaults), false
	case len(items) == 0:
		logger.Debug("[catalog_loader] collection empty, using defaults",
			zap.String("collection", string(c)),
		)
		return cloneSlice(defaults), false
	default:
		return items, true
	}
}

// LoadWithFallback はストアから読み込み、失敗または 0 件ならデフォルトのコピーを返します。
// 結果が空になることはありません（defaults が空でない限り）。
func LoadWithFallback[T any](
	ctx context.Context,
	logger *zap.Logger,
	store catalogdom.Store,
	c catalogdom.Collection,
	defaults []T,
	decode func(catalogdom.Document) T,
	sortFn func([]T),
) []T {
	if logger == nil {
		logger = zap.NewNop()
	}
	items, _ := loadWithFallback(ctx, logger, store, c, defaults, decode, sortFn)
	return items
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// ==============================
// CatalogLoader
// ==============================

type cachedList[T any] struct {
	items    []T
	loadedAt time.Time
	ok       bool
}

func (c *cachedList[T]) fresh(now time.Time, ttl time.Duration) bool {
	return c.ok && ttl > 0 && now.Sub(c.loadedAt) < ttl
}

// CatalogLoader は公開サイト向けのカタログ読み込みです。
// ストアから読めた結果だけを ttl の間キャッシュします（フォールバック結果は次回再試行）。
type CatalogLoader struct {
	store  catalogdom.Store
	logger *zap.Logger
	ttl    time.Duration
	now    func() time.Time

	mu        sync.RWMutex
	services  cachedList[catalogdom.Service]
	portfolio cachedList[catalogdom.PortfolioItem]
}

func NewCatalogLoader(store catalogdom.Store, logger *zap.Logger, ttl time.Duration) *CatalogLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogLoader{
		store:  store,
		logger: logger.Named("catalog_loader"),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Services は order 昇順のサービス一覧を返します。
func (l *CatalogLoader) Services(ctx context.Context) []catalogdom.Service {
	l.mu.RLock()
	if l.services.fresh(l.now(), l.ttl) {
		out := cloneSlice(l.services.items)
		l.mu.RUnlock()
		return out
	}
	l.mu.RUnlock()
	return l.loadServices(ctx)
}

// Portfolio は createdAt 降順のポートフォリオ一覧を返します。
func (l *CatalogLoader) Portfolio(ctx context.Context) []catalogdom.PortfolioItem {
	l.mu.RLock()
	if l.portfolio.fresh(l.now(), l.ttl) {
		out := clonePortfolio(l.portfolio.items)
		l.mu.RUnlock()
		return out
	}
	l.mu.RUnlock()
	return l.loadPortfolio(ctx)
}

// FilteredPortfolio は Portfolio をカテゴリで絞り込んだ結果を返します。
func (l *CatalogLoader) FilteredPortfolio(ctx context.Context, selected catalogdom.Category) []catalogdom.PortfolioItem {
	return catalogdom.FilterByCategory(l.Portfolio(ctx), selected)
}

func (l *CatalogLoader) loadServices(ctx context.Context) []catalogdom.Service {
	items, fromStore := loadWithFallback(ctx, l.logger, l.store, catalogdom.CollectionServices,
		catalogdom.DefaultServices(), catalogdom.DecodeService, catalogdom.SortServices)

	l.mu.Lock()
	l.services = cachedList[catalogdom.Service]{items: cloneSlice(items), loadedAt: l.now(), ok: fromStore}
	l.mu.Unlock()
	return items
}

func (l *CatalogLoader) loadPortfolio(ctx context.Context) []catalogdom.PortfolioItem {
	items, fromStore := loadWithFallback(ctx, l.logger, l.store, catalogdom.CollectionPortfolio,
		catalogdom.DefaultPortfolio(), catalogdom.DecodePortfolioItem, catalogdom.SortPortfolioNewestFirst)

	l.mu.Lock()
	l.portfolio = cachedList[catalogdom.PortfolioItem]{items: clonePortfolio(items), loadedAt: l.now(), ok: fromStore}
	l.mu.Unlock()
	return items
}

// Invalidate は指定コレクションのキャッシュを破棄します。
func (l *CatalogLoader) Invalidate(c catalogdom.Collection) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch c {
	case catalogdom.CollectionServices:
		l.services = cachedList[catalogdom.Service]{}
	case catalogdom.CollectionPortfolio:
		l.portfolio = cachedList[catalogdom.PortfolioItem]{}
	}
}

// Reload はキャッシュを破棄して読み直します（Reloader）。
func (l *CatalogLoader) Reload(ctx context.Context, c catalogdom.Collection) {
	l.Invalidate(c)
	switch c {
	case catalogdom.CollectionServices:
		l.loadServices(ctx)
	case catalogdom.CollectionPortfolio:
		l.loadPortfolio(ctx)
	default:
		l.logger.Warn("[catalog_loader] reload for unknown collection", zap.String("collection", string(c)))
	}
}

// ==============================
// Admin listing (no fallback)
// ==============================

// StoredServices は管理画面用の一覧です。エラーはそのまま返し、デフォルトは混ぜません。
func (l *CatalogLoader) StoredServices(ctx context.Context) ([]catalogdom.Service, error) {
	return listStored(ctx, l.store, catalogdom.CollectionServices, catalogdom.DecodeService, catalogdom.SortServices)
}

// StoredPortfolio は管理画面用の一覧です。
func (l *CatalogLoader) StoredPortfolio(ctx context.Context) ([]catalogdom.PortfolioItem, error) {
	return listStored(ctx, l.store, catalogdom.CollectionPortfolio, catalogdom.DecodePortfolioItem, catalogdom.SortPortfolioNewestFirst)
}

// ==============================
// Site aggregate
// ==============================

// SiteContent はトップページ表示に必要なカタログ一式です。
type SiteContent struct {
	Services   []catalogdom.Service       `json:"services"`
	Portfolio  []catalogdom.PortfolioItem `json:"portfolio"`
	Categories []catalogdom.Category      `json:"categories"`
}

// Site は services / portfolio を並行に読み込みます。
// 読み込み自体は失敗しない（フォールバック）ため、errgroup は待ち合わせにだけ使います。
func (l *CatalogLoader) Site(ctx context.Context) SiteContent {
	var out SiteContent
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Services = l.Services(gctx)
		return nil
	})
	g.Go(func() error {
		out.Portfolio = l.Portfolio(gctx)
		return nil
	})
	_ = g.Wait()
	out.Categories = catalogdom.FilterTabs()
	return out
}

func clonePortfolio(in []catalogdom.PortfolioItem) []catalogdom.PortfolioItem {
	out := make([]catalogdom.PortfolioItem, len(in))
	for i, p := range in {
		p.Tags = slices.Clone(p.Tags)
		if p.CreatedAt != nil {
			t := *p.CreatedAt
			p.CreatedAt = &t
		}
		out[i] = p
	}
	return out
}
