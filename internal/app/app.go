package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/db"
	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/utils"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services

	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	utils.LoadDotEnv(log)
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "storefront-backend",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	dbService, err := db.New(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	theDB := dbService.DB()

	if cfg.SeedPath != "" {
		if err := db.Seed(context.Background(), theDB, log, cfg.SeedPath); err != nil {
			log.Warn("Catalog seed failed", "error", err)
		}
	}

	clientset, err := wireClients(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clientset)

	handlerset := wireHandlers(log, serviceset)
	middlewareset := wireMiddleware(log, serviceset)
	router := wireRouter(cfg, handlerset, middlewareset)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Clients:      clientset,
		Repos:        reposet,
		Services:     serviceset,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting server", "port", a.Cfg.Port)
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil {
			a.Log.Warn("Otel shutdown failed", "error", err)
		}
		a.otelShutdown = nil
	}
	if a.Clients.CartStore != nil {
		if err := a.Clients.CartStore.Close(); err != nil {
			a.Log.Warn("Cart store close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
