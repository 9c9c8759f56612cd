package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Bakeshop/config"
	"Bakeshop/internal/gateway"
	"Bakeshop/pkg/kit"
)

const minSecretLen = 32

func main() {
	service := "gateway"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load("8080")
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}
	if len(cfg.Auth.JWTSecret) < minSecretLen {
		log.Fatal("auth.jwt_secret is required and must be at least 32 chars")
	}

	deps := gateway.Deps{
		JWTSecret:  cfg.Auth.JWTSecret,
		AuthURL:    cfg.Upstream.AuthURL,
		CatalogURL: cfg.Upstream.CatalogURL,
		CartURL:    cfg.Upstream.CartURL,
	}

	h, err := gateway.NewHandler(deps, gateway.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})
	if err != nil {
		log.Fatal("init gateway handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(":"+cfg.Service.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
