package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/config"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/db"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/observability"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/seed"
)

var (
	seedCatalog string
	seedMigrate bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and default templates",
	Long: `Creates the admin account from ADMIN_EMAIL/ADMIN_PASSWORD and installs the
template catalog. Records that already exist are left untouched.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedCatalog, "catalog", "", "Path to a template catalog JSON file (default: built-in catalog)")
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", true, "Apply database migrations before seeding")
	rootCmd.AddCommand(seedCmd)
}

// loadCatalog reads the catalog at path, or the built-in one when path is empty
func loadCatalog(path string) ([]seed.CatalogEntry, error) {
	if path == "" {
		return seed.DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return seed.ParseCatalog(data)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	catalog, err := loadCatalog(seedCatalog)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	if seedMigrate {
		if err := database.Migrate(ctx, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	res, err := seed.New(database, cfg.Admin, cfg.Password, logger).Run(ctx, catalog)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSeedResult(res)
	return nil
}
