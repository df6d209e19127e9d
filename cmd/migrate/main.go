package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/foodcart/internal/repo"
	"github.com/angelmondragon/foodcart/pkg/config"
	"github.com/angelmondragon/foodcart/pkg/db"
	"github.com/angelmondragon/foodcart/pkg/db/models"
	"github.com/angelmondragon/foodcart/pkg/logger"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|status")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx = logg.WithFields(context.Background(), map[string]any{
		"env":       cfg.App.Env,
		"cmd":       *cmd,
		"db_driver": cfg.DB.Driver,
	})

	if cfg.Storage.Driver != config.StorageDriverSQL {
		logg.Warn(ctx, "storage driver is not sql, nothing to migrate")
		return
	}

	// The schema is applied explicitly below.
	dbCfg := cfg.DB
	dbCfg.AutoMigrate = false
	dbClient, err := db.New(ctx, dbCfg, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	switch *cmd {
	case "up":
		if err := dbClient.Migrate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "migrate up failed: %v\n", err)
			os.Exit(1)
		}
		logg.Info(ctx, "migrations applied")

	case "status":
		conn := dbClient.DB().WithContext(ctx)
		if !conn.Migrator().HasTable(&models.PersistedRecord{}) {
			fmt.Println("persisted_records: missing")
			return
		}
		count, err := repo.NewRecords(dbClient.DB()).Count(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "migrate status failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("persisted_records: present (%d records)\n", count)

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
