package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/robfig/cron/v3"

	"github.com/vitalmesh/frontdesk/internal/api"
	"github.com/vitalmesh/frontdesk/internal/stores/records"
	"github.com/vitalmesh/frontdesk/pkg/utils"
)

// Start the records API server
func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	// Initialize the record store
	store, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to initialize record store: %v", err)
	}
	defer store.Close()

	// Prune stale records daily when a retention window is configured
	if days := cfg.GetIntWithDefault("RETENTION_DAYS", 0); days > 0 {
		scheduler := cron.New()
		retention := time.Duration(days) * 24 * time.Hour

		_, err := scheduler.AddFunc("@daily", func() {
			removed, err := store.Prune(context.Background(), retention)
			if err != nil {
				log.Printf("[API-MAIN]: Record pruning failed: %v", err)
				return
			}
			log.Printf("[API-MAIN]: Pruned %d stale patient records", removed)
		})
		if err != nil {
			log.Fatalf("[API-MAIN]: Failed to schedule record pruning: %v", err)
		}

		scheduler.Start()
		defer scheduler.Stop()
	}

	// Start
	api.Start(cfg, store)
}

// buildStore selects the record store backend from configuration
func buildStore(cfg *utils.Config) (records.Store, error) {
	switch backend := cfg.GetWithDefault("RECORDS_BACKEND", "file"); backend {
	case "file":
		return records.NewFileStore(cfg.GetWithDefault("RECORDS_DIR", "patient_data"))

	case "mysql":
		dbConfig := mysql.Config{
			User:      cfg.Get("MYSQL_USERNAME"),
			Passwd:    cfg.Get("MYSQL_ROOT_PASSWORD"),
			Net:       "tcp",
			Addr:      fmt.Sprintf("%s:%s", cfg.Get("MYSQL_HOST"), cfg.Get("MYSQL_PORT")),
			DBName:    cfg.Get("MYSQL_DATABASE"),
			ParseTime: true,
		}
		return records.NewMySqlStore(dbConfig.FormatDSN())

	default:
		return nil, fmt.Errorf("unknown records backend %q", backend)
	}
}
