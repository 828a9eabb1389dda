// cmd/seed/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	usecase "github.com/Alanove07/designbynexa/internal/application/usecase"
	catalogdom "github.com/Alanove07/designbynexa/internal/domain/catalog"
	appcfg "github.com/Alanove07/designbynexa/internal/infra/config"
	"github.com/Alanove07/designbynexa/internal/infra/logging"
	"github.com/Alanove07/designbynexa/internal/platform/di"
)

var (
	flagCollections []string
	flagDryRun      bool
	flagForce       bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the built-in services and portfolio catalog into the configured store",
	Long: `Write the built-in catalog (6 services, 3 portfolio items) into the store
selected by CATALOG_BACKEND (firestore or postgres).

Collections that already contain documents are skipped unless --force is given.
Document ids come from the built-in catalog, so re-running never duplicates items.`,
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().StringSliceVarP(&flagCollections, "collection", "c", nil,
		"collection to seed (services, portfolioItems); repeatable, default both")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be written without writing")
	rootCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite even if the collection is not empty")
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseCollections(raw []string) ([]catalogdom.Collection, error) {
	out := make([]catalogdom.Collection, 0, len(raw))
	for _, r := range raw {
		c := catalogdom.Collection(strings.TrimSpace(r))
		if c == "portfolio" {
			c = catalogdom.CollectionPortfolio
		}
		if !c.Valid() {
			return nil, fmt.Errorf("unknown collection %q (want services or portfolioItems)", r)
		}
		out = append(out, c)
	}
	return out, nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cols, err := parseCollections(flagCollections)
	if err != nil {
		return err
	}

	cfg, err := appcfg.Load()
	if err != nil {
		return err
	}
	if cfg.CatalogBackend == appcfg.BackendMemory {
		return fmt.Errorf("CATALOG_BACKEND=memory has nothing to seed; set firestore or postgres")
	}

	logger := logging.Must(cfg.Env, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	inf, err := di.NewStoreInfra(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer inf.Close()

	store, setter, err := di.NewStores(ctx, cfg, inf)
	if err != nil {
		return err
	}
	seeder, err := usecase.NewCatalogSeeder(store, setter, logger)
	if err != nil {
		return err
	}

	results, err := seeder.Seed(ctx, usecase.SeedOptions{
		Collections: cols,
		DryRun:      flagDryRun,
		Force:       flagForce,
	})
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	_ = enc.Encode(results)
	return err
}
