package main

import (
	"context"
	"errors"
	"io/fs"
	"os/signal"
	"syscall"

	"velour/internal/config"
	"velour/internal/handler"
	"velour/internal/infra/db"
	"velour/internal/infra/formrelay"
	infraRepo "velour/internal/infra/repository"
	"velour/internal/logger"
	repo "velour/internal/repository"
	"velour/internal/server"
	"velour/internal/usecase"
	"velour/internal/validator"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	//.envは無くてもよい
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//保存先（memory / postgres）
	var (
		kv    repo.KeyValueStore
		audit repo.AuditLogRepository
		tx    repo.TransactionManager
	)
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		gormDB, err := db.Connect(cfg)
		if err != nil {
			return err
		}
		if err := db.Migrate(gormDB); err != nil {
			return err
		}
		kv = infraRepo.NewKVGormRepository(gormDB)
		audit = infraRepo.NewAuditLogGormRepository(gormDB)
		tx = infraRepo.NewTxManagerGorm(gormDB, cfg.AdminProductsKey)
	default:
		kv = infraRepo.NewMemoryKVStore()
		audit = infraRepo.NewAuditLogMemoryRepository()
		tx = infraRepo.NewTxManagerMemory(kv, cfg.AdminProductsKey, audit)
	}
	log.Info("storage ready", zap.String("driver", cfg.StorageDriver))

	//Repository生成
	seed, err := infraRepo.SeedProducts()
	if err != nil {
		return err
	}
	adminRepo := infraRepo.NewAdminProductKVRepository(kv, cfg.AdminProductsKey)
	catalog := infraRepo.NewCatalogRepository(seed, adminRepo)
	themeRepo := infraRepo.NewThemeKVRepository(kv, cfg.ThemeStorageKey)
	relay := formrelay.NewClient(cfg.FormRelayURL, cfg.FormRelayTimeout)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(kv, catalog, cfg.CartStorageKey, log)
	productUC := usecase.NewProductUsecase(catalog)
	adminUC := usecase.NewAdminProductUsecase(adminRepo, audit, tx, log)
	themeUC := usecase.NewThemeUsecase(themeRepo)
	contactUC := usecase.NewContactUsecase(relay, validator.NewFormValidator(), log)

	//Handler生成
	e := server.New(cfg, log, server.Handlers{
		Cart:         handler.NewCartHandler(cartUC),
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(adminUC),
		Theme:        handler.NewThemeHandler(themeUC),
		Contact:      handler.NewContactHandler(contactUC),
		Health:       handler.NewHealthHandler(),
	})

	//Server起動
	return server.Start(ctx, e, cfg.Addr(), cfg.ShutdownTimeout, log)
}
