package main

import (
	"embed"

	"github.com/ghuser/tabshare/pkg/config"
	"github.com/ghuser/tabshare/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := migrator.RunMigrations(cfg.DatabaseURL, MigrationsFS, "goose_db_version_identity"); err != nil {
		panic(err)
	}
}
