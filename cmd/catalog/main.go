package main

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Bakeshop/config"
	"Bakeshop/internal/catalog"
	"Bakeshop/pkg/kit"
)

func main() {
	service := "catalog"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load("8082")
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}

	store, err := buildStore(cfg, log)
	if err != nil {
		log.Fatal("init store failed", zap.Error(err))
	}

	s := &catalog.Server{Store: store, Log: log}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	if err := kit.RunHTTPServer(":"+cfg.Service.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func buildStore(cfg *config.Config, log *zap.Logger) (catalog.Store, error) {
	if cfg.Database.URL == "" {
		log.Info("no database configured, using seeded in-memory catalog")
		return catalog.NewSeededMemStore(), nil
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	return catalog.NewPostgresStore(db), nil
}
