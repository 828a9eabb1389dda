// internal/application/usecase/catalog_seed.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	catalogdom "github.com/Alanove07/designbynexa/internal/domain/catalog"
	common "github.com/Alanove07/designbynexa/internal/domain/common"
)

// SeedOptions は組み込みカタログの投入条件です。
type SeedOptions struct {
	// 空なら services / portfolioItems の両方
	Collections []catalogdom.Collection
	// 書き込まずに件数だけ数える
	DryRun bool
	// 既存ドキュメントがあっても上書きする
	Force bool
}

// SeedResult はコレクションごとの結果です。
type SeedResult struct {
	Collection catalogdom.Collection `json:"collection"`
	Written    int                   `json:"written"`
	Skipped    bool                  `json:"skipped"`
	Reason     string                `json:"reason,omitempty"`
}

// CatalogSeeder は組み込みのデフォルトカタログをストアに書き込みます。
// ID は defaults.yaml の id をそのまま使うので、再実行しても重複しません。
type CatalogSeeder struct {
	store  catalogdom.Store
	setter common.DocumentSetter
	logger *zap.Logger
	now    func() time.Time
}

func NewCatalogSeeder(store catalogdom.Store, setter common.DocumentSetter, logger *zap.Logger) (*CatalogSeeder, error) {
	if store == nil || setter == nil {
		return nil, errors.New("seed: store is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogSeeder{store: store, setter: setter, logger: logger.Named("catalog_seed"), now: time.Now}, nil
}

type seedDoc struct {
	id  string
	rec catalogdom.Record
}

// defaultSeedDocs は投入するドキュメントです。
// portfolio の createdAt は先頭ほど新しくし、新しい順の表示が組み込みの並びと一致するようにします。
func defaultSeedDocs(c catalogdom.Collection, now time.Time) []seedDoc {
	switch c {
	case catalogdom.CollectionServices:
		src := catalogdom.DefaultServices()
		out := make([]seedDoc, 0, len(src))
		for _, s := range src {
			out = append(out, seedDoc{id: s.ID, rec: catalogdom.EncodeService(s)})
		}
		return out
	case catalogdom.CollectionPortfolio:
		src := catalogdom.DefaultPortfolio()
		out := make([]seedDoc, 0, len(src))
		base := now.UTC().Truncate(time.Second)
		for i, p := range src {
			at := base.Add(-time.Duration(i) * time.Minute)
			p.CreatedAt = &at
			out = append(out, seedDoc{id: p.ID, rec: catalogdom.EncodePortfolioItem(p)})
		}
		return out
	}
	return nil
}

func (s *CatalogSeeder) Seed(ctx context.Context, opts SeedOptions) ([]SeedResult, error) {
	cols := opts.Collections
	if len(cols) == 0 {
		cols = []catalogdom.Collection{catalogdom.CollectionServices, catalogdom.CollectionPortfolio}
	}

	results := make([]SeedResult, 0, len(cols))
	for _, c := range cols {
		if !c.Valid() {
			return results, fmt.Errorf("%w: %q", catalogdom.ErrInvalidCollection, c)
		}

		res := SeedResult{Collection: c}
		existing, err := s.store.List(ctx, string(c))
		if err != nil {
			return results, fmt.Errorf("seed %s: %w", c, err)
		}
		if len(existing) > 0 && !opts.Force {
			res.Skipped = true
			res.Reason = fmt.Sprintf("collection already has %d documents (use --force to overwrite)", len(existing))
			s.logger.Info("[catalog_seed] skip", zap.String("collection", string(c)), zap.Int("existing", len(existing)))
			results = append(results, res)
			continue
		}

		for _, d := range defaultSeedDocs(c, s.now()) {
			if opts.DryRun {
				res.Written++
				continue
			}
			if err := s.setter.Set(ctx, string(c), strings.TrimSpace(d.id), d.rec); err != nil {
				return append(results, res), fmt.Errorf("seed %s/%s: %w", c, d.id, err)
			}
			res.Written++
		}
		if opts.DryRun {
			res.Reason = "dry run"
		}
		s.logger.Info("[catalog_seed] done",
			zap.String("collection", string(c)),
			zap.Int("written", res.Written),
			zap.Bool("dryRun", opts.DryRun),
		)
		results = append(results, res)
	}
	return results, nil
}
