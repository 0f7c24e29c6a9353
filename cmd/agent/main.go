package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/vitalmesh/frontdesk/internal/llm"
	"github.com/vitalmesh/frontdesk/internal/orchestrator"
	"github.com/vitalmesh/frontdesk/internal/roles"
	"github.com/vitalmesh/frontdesk/internal/roles/billing"
	"github.com/vitalmesh/frontdesk/internal/roles/notes"
	"github.com/vitalmesh/frontdesk/internal/roles/support"
	"github.com/vitalmesh/frontdesk/internal/roles/triage"
	"github.com/vitalmesh/frontdesk/internal/stores/records"
	"github.com/vitalmesh/frontdesk/pkg/utils"
)

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
		log.Fatalf("[AGENT]: Failed to initialize record store: %v", err)
	}
	defer store.Close()

	// Assemble the orchestrator with its console-facing boundaries
	orch := orchestrator.New(cfg, store, llm.NewRunner(), &consoleSpeaker{}, &logPresence{})
	binding := orch.Binding()

	for _, role := range []roles.Role{
		triage.New(binding, cfg),
		support.New(binding, cfg),
		billing.New(binding, cfg),
		notes.New(binding, cfg),
	} {
		if err := orch.Register(role); err != nil {
			log.Fatalf("[AGENT]: Failed to register role %s: %v", role.Name(), err)
		}
	}

	// Start interactive session
	ctx := context.Background()
	if err := startInteractiveSession(ctx, orch); err != nil {
		log.Fatalf("[AGENT]: Interactive session failed: %v", err)
	}
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

// startInteractiveSession runs the front desk conversation loop on stdin
func startInteractiveSession(ctx context.Context, orch *orchestrator.Orchestrator) error {
	fmt.Println("Front desk assistant started. Type 'exit' to quit.")

	if err := orch.Start(ctx, roles.Triage); err != nil {
		return fmt.Errorf("failed to start orchestrator: %w", err)
	}

	// Create scanner for reading user input
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "exit" {
			break
		}

		if input == "" {
			continue
		}

		if err := orch.Dispatch(ctx, input); err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		if orch.Session().Terminated() {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	// The session checkpoints once more on the way out
	return orch.Terminate(ctx)
}

// consoleSpeaker prints assistant output to stdout
type consoleSpeaker struct{}

func (consoleSpeaker) Say(ctx context.Context, text string) error {
	fmt.Printf("Assistant: %s\n", text)
	return nil
}

// logPresence records active-role changes in the process log
type logPresence struct{}

func (logPresence) SetAttributes(ctx context.Context, attrs map[string]string) error {
	log.Printf("[PRESENCE]: agent=%s patient_id=%s", attrs["agent"], attrs["patient_id"])
	return nil
}

func (logPresence) Close() error {
	return nil
}
