package app

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/productflow-backend/internal/data/db"
	"github.com/yungbote/productflow-backend/internal/http"
	"github.com/yungbote/productflow-backend/internal/jobs/cleanup"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
	"github.com/yungbote/productflow-backend/internal/platform/filestore"
)

type App struct {
	Log        *logger.Logger
	DB         *gorm.DB
	Cfg        Config
	Repos      Repos
	Aggregates Aggregates
	Files      filestore.Store
	Server     *http.Server

	cleanup *cleanup.Worker
	cancel  context.CancelFunc
}

func New() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	theDB, err := db.Open(log, cfg.Database())
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}

	files, err := filestore.New(log, cfg.Storage())
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init file store: %w", err)
	}
	worker := cleanup.NewWorker(log, files, cfg.Cleanup())

	reposet := wireRepos(theDB, log)
	aggs, err := wireAggregates(theDB, log, reposet, files, worker)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("wire aggregates: %w", err)
	}
	handlerset := wireHandlers(log, aggs, reposet, files)

	return &App{
		Log:        log,
		DB:         theDB,
		Cfg:        cfg,
		Repos:      reposet,
		Aggregates: aggs,
		Files:      files,
		Server:     wireServer(log, cfg, handlerset),
		cleanup:    worker,
	}, nil
}

func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.cleanup.Start(ctx)
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("HTTP server listening", "addr", a.Cfg.HTTPAddr)
	return a.Server.Run(a.Cfg.HTTPAddr)
}

// Close stops the server, drains deferred cleanup and closes the database.
func (a *App) Close() {
	if a == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Log.Warn("HTTP shutdown failed", "error", err)
	}
	if err := a.cleanup.Close(); err != nil {
		a.Log.Warn("Cleanup worker close failed", "error", err)
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
