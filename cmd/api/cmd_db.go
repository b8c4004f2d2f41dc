package main

import (
	"fmt"
	"log/slog"

	"shop/internal/infra/db"
	infraRepo "shop/internal/infra/repository"
	"shop/internal/usecase"

	"github.com/spf13/cobra"
)

// api migrate
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootConfig()
			if err != nil {
				return err
			}
			gormDB, closeDB, err := bootDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := db.Migrate(gormDB); err != nil {
				return err
			}
			log.Info("migrated")
			return nil
		},
	}
}

// api seed（何度実行しても同じ結果）
func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo categories and products",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := bootConfig()
			if err != nil {
				return err
			}
			gormDB, closeDB, err := bootDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := db.Migrate(gormDB); err != nil {
				return err
			}

			searcher, closeSearch, err := bootSearch(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeSearch()

			products := infraRepo.NewProductGormRepository(gormDB)
			n, err := seedCatalog(ctx, infraRepo.NewCategoryGormRepository(gormDB), products)
			if err != nil {
				return err
			}

			//seed後はインデックスを作り直す
			catalog := usecase.NewCatalogUsecase(products, infraRepo.NewCategoryGormRepository(gormDB), searcher, nil, log)
			indexed, err := catalog.Reindex(ctx)
			if err != nil {
				return err
			}

			log.Info("seeded", slog.Int("products", n), slog.Int("indexed", indexed))
			return nil
		},
	}
}

// api reindex
func newReindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the product search index from the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := bootConfig()
			if err != nil {
				return err
			}
			gormDB, closeDB, err := bootDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			searcher, closeSearch, err := bootSearch(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeSearch()

			catalog := usecase.NewCatalogUsecase(
				infraRepo.NewProductGormRepository(gormDB),
				infraRepo.NewCategoryGormRepository(gormDB),
				searcher,
				nil,
				log,
			)
			n, err := catalog.Reindex(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d products\n", n)
			return nil
		},
	}
}
