package main

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Bakeshop/config"
	"Bakeshop/internal/cart"
	"Bakeshop/pkg/kit"
)

func main() {
	service := "cart"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load("8083")
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}

	snapshots, err := buildSnapshots(cfg, log)
	if err != nil {
		log.Fatal("init snapshot store failed", zap.Error(err))
	}

	s := &cart.Server{
		Svc: cart.NewService(snapshots, log),
		Log: log,
	}

	h := cart.NewHandler(s, cart.HTTPDeps{
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

func buildSnapshots(cfg *config.Config, log *zap.Logger) (cart.SnapshotStore, error) {
	if cfg.Database.URL == "" {
		log.Info("no database configured, using in-memory cart snapshots")
		return cart.NewMemStore(), nil
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	return cart.NewPostgresStore(db), nil
}
