package main

import (
	"context"
	"time"

	"github.com/Mininormi/mininormi1210/config"
	"github.com/Mininormi/mininormi1210/repository"
	"github.com/spf13/cobra"
)

var (
	seedFile    string
	seedMigrate bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert brands, products, variants and vehicles from a YAML catalog",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "catalog YAML file (required)")
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", false, "create missing tables first")
	_ = seedCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cf, err := LoadCatalogFile(seedFile)
	if err != nil {
		return err
	}
	ds, err := cf.Dataset(time.Now())
	if err != nil {
		return err
	}

	config.InitDB()
	defer config.CloseDB()
	repo := repository.NewCatalogRepository(config.CatalogGorm)

	if seedMigrate {
		if err := repo.Migrate(); err != nil {
			return err
		}
		config.Log.Info().Msg("✓ Catalog tables migrated")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()
	if err := repo.Import(ctx, ds); err != nil {
		return err
	}

	config.Log.Info().
		Int("brands", len(ds.Brands)).
		Int("products", len(ds.Products)).
		Int("variants", len(ds.Variants)).
		Int("vehicles", len(ds.Vehicles)).
		Msg("✅ Catalog seeded")
	return nil
}
