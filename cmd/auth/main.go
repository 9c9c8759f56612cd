package main

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Bakeshop/config"
	"Bakeshop/internal/auth"
	"Bakeshop/pkg/kit"
)

func main() {
	service := "auth"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load("8081")
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("auth.jwt_secret is required")
	}

	store, err := buildStore(cfg, log)
	if err != nil {
		log.Fatal("init store failed", zap.Error(err))
	}

	s := &auth.Server{
		Log:   log,
		Store: store,
		JWT:   auth.NewTokenMaker(cfg.Auth.JWTSecret),
	}

	h := auth.NewHandler(s, auth.HTTPDeps{
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

func buildStore(cfg *config.Config, log *zap.Logger) (auth.UserStore, error) {
	if cfg.Database.URL == "" {
		log.Info("no database configured, using in-memory user store")
		return auth.NewMemStore(), nil
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	return auth.NewPostgresStore(db), nil
}
