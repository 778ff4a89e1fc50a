package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/neurobridge-navigation/internal/data/db"
	apphttp "github.com/yungbote/neurobridge-navigation/internal/http"
	"github.com/yungbote/neurobridge-navigation/internal/observability"
	"github.com/yungbote/neurobridge-navigation/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *apphttp.Server
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients

	store        *db.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
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
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})
	metrics := observability.Init(log)

	store, err := db.NewService(cfg.DB, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init db: %w", err)
	}
	if err := db.AutoMigrateAll(store.DB()); err != nil {
		_ = store.Close()
		log.Sync()
		return nil, fmt.Errorf("db automigrate: %w", err)
	}

	layouts, err := loadLayouts(log, cfg)
	if err != nil {
		_ = store.Close()
		log.Sync()
		return nil, fmt.Errorf("load layouts: %w", err)
	}

	clients := wireClients(log, cfg)
	reposet := wireRepos(store.DB(), log)
	serviceset := wireServices(log, cfg, layouts, reposet, clients)
	handlerset := wireHandlers(log, store.DB(), serviceset)
	server := wireServer(log, cfg, handlerset, metrics)

	return &App{
		Log:          log,
		DB:           store.DB(),
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clients,
		store:        store,
		otelShutdown: otelShutdown,
	}, nil
}

// Start warms the layout cache in the background so the first builds after a
// deploy do not all miss at once.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	if a.Clients.LayoutCache == nil {
		return
	}
	go a.warmLayouts(ctx)
}

func (a *App) warmLayouts(ctx context.Context) {
	n, err := a.Services.Navigation.WarmLayouts(ctx)
	if err != nil {
		a.Log.Warn("Layout warm-up failed", "error", err)
		return
	}
	a.Log.Debug("Layout cache warmed", "overrides", n)
}

func (a *App) Run() error {
	addr := ":" + a.Cfg.Port
	a.Log.Info("Server listening", "addr", addr)
	return a.Server.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.Log.Warn("Server shutdown failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Clients.Close(a.Log)
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Log.Warn("DB close failed", "error", err)
		}
	}
	a.Log.Sync()
}
