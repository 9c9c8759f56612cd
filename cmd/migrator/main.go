package main

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"Bakeshop/pkg/kit"
)

const (
	databaseURLFlag = "database-url"
	migrationsFlag  = "migrations-path"
)

func main() {
	log := kit.NewLogger("migrator")
	defer func() { _ = log.Sync() }()

	databaseURL := pflag.StringP(databaseURLFlag, "d", "", "Postgres DSN (pgx5:// scheme)")
	migrationsPath := pflag.StringP(migrationsFlag, "m", "file://migrations", "migrations source URL")
	pflag.Parse()

	if *databaseURL == "" {
		log.Fatal("--" + databaseURLFlag + " flag: required")
	}

	m, err := migrate.New(*migrationsPath, *databaseURL)
	if err != nil {
		log.Fatal("open migrator failed", zap.Error(err))
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no pending migrations")
			return
		}
		log.Fatal("apply migrations failed", zap.Error(err))
	}

	log.Info("migrations applied")
}
