package main

import (
	"flag"
	"log"

	"practice_hub_backend/internal/app"
	"practice_hub_backend/internal/config"
	"practice_hub_backend/pkg/configwatcher"
	"practice_hub_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup, even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg interface{}) {
		if updated, ok := newCfg.(*config.Config); ok {
			application.ReloadConfig(updated)
		}
	})

	application.Run()
}
