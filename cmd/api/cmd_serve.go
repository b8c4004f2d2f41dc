package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"shop/internal/config"
	"shop/internal/handler"
	"shop/internal/infra/db"
	infraRepo "shop/internal/infra/repository"
	"shop/internal/infra/session"
	"shop/internal/metrics"
	"shop/internal/repository"
	"shop/internal/server"
	"shop/internal/usecase"
	"shop/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, log, err := bootConfig()
	if err != nil {
		return err
	}

	//DB接続
	gormDB, closeDB, err := bootDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	//セッション（redis）
	rdb, err := session.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	//検索（mongo）
	searcher, closeSearch, err := bootSearch(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSearch()

	e := buildServer(cfg, log, gormDB, rdb, searcher)

	log.Info("starting", slog.String("env", cfg.GoEnv))
	return server.Start(ctx, e, cfg.Addr(), log)
}

// DI
func buildServer(
	cfg config.Config,
	log *slog.Logger,
	gormDB *gorm.DB,
	rdb *redis.Client,
	searcher repository.ProductSearcher,
) *echo.Echo {
	//Repository（GORM実装）生成
	users := infraRepo.NewUserGormRepository(gormDB)
	products := infraRepo.NewProductGormRepository(gormDB)
	categories := infraRepo.NewCategoryGormRepository(gormDB)
	carts := infraRepo.NewCartGormRepository(gormDB)
	orders := infraRepo.NewOrderGormRepository(gormDB)
	orderItems := infraRepo.NewOrderItemGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)
	sessions := session.NewRedisSessionRepository(rdb, cfg.SessionTTL)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(
		users,
		sessions,
		usecase.NewBcryptPasswordHasher(12),
		usecase.NewBcryptPasswordVerifier(),
		validator.NewAuthValidator(),
	)
	catalogUC := usecase.NewCatalogUsecase(products, categories, searcher, infraRepo.NewAuditLogGormRepository(gormDB), log)
	cartUC := usecase.NewCartUsecase(carts, carts, products)
	orderUC := usecase.NewOrderUsecase(txm, orders, orderItems)

	m := metrics.New()

	//Handler生成
	return server.New(server.Options{
		Log:            log,
		Metrics:        m,
		Sessions:       authUC,
		AdminJWTSecret: cfg.AdminJWTSecret,
		CORSOrigins:    cfg.CORSOrigins,
	}, server.Handlers{
		Auth:         handler.NewAuthHandler(authUC, m, log, cfg.SessionTTL, cfg.CookieSecure),
		Catalog:      handler.NewCatalogHandler(catalogUC, log),
		AdminCatalog: handler.NewAdminCatalogHandler(catalogUC, log),
		Cart:         handler.NewCartHandler(cartUC, log),
		Order:        handler.NewOrderHandler(orderUC, m, log),
	})
}
