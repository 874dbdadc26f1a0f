// Command clean reads a raw transaction export, allocates discounts, and
// writes the cleaned CSV.
//
// Usage:
//
//	clean -in export.csv -out cleaned.csv [-workers 4] [-db history.db]
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eshaffer321/transaction-cleaner/internal/application/cleaner"
	"github.com/eshaffer321/transaction-cleaner/internal/cli"
	"github.com/eshaffer321/transaction-cleaner/internal/infrastructure/config"
	"github.com/eshaffer321/transaction-cleaner/internal/infrastructure/logging"
	"github.com/eshaffer321/transaction-cleaner/internal/infrastructure/storage"
	"github.com/eshaffer321/transaction-cleaner/internal/ingest"
)

func main() {
	flags := cli.ParseCleanFlags()
	if flags.InputPath == "" {
		fmt.Fprintln(os.Stderr, "error: -in is required")
		os.Exit(2)
	}

	cfg := config.LoadOrEnv()
	if err := run(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, flags *cli.CleanFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "clean")

	workers := cfg.Allocator.Workers
	if flags.Workers > 0 {
		workers = flags.Workers
	}

	// "-" disables run history entirely
	var repo storage.Repository
	dbPath := cfg.Storage.DatabasePath
	if flags.DBPath != "" {
		dbPath = flags.DBPath
	}
	if dbPath != "-" {
		store, err := storage.NewStorage(dbPath)
		if err != nil {
			return fmt.Errorf("open run history db: %w", err)
		}
		defer func() { _ = store.Close() }()
		repo = store
	}

	cli.PrintHeader(flags.InputPath, workers)

	in, err := os.Open(flags.InputPath)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	service := cleaner.NewService(repo, logger, cleaner.Options{
		Workers: workers,
		TopN:    cfg.Allocator.TopN,
	})

	outcome, err := service.Clean(filepath.Base(flags.InputPath), in)
	if err != nil {
		return err
	}

	out, err := os.Create(flags.OutputPath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if err := ingest.WriteRecords(out, outcome.Records); err != nil {
		return fmt.Errorf("write cleaned CSV: %w", err)
	}

	cli.PrintOutcome(outcome)
	fmt.Printf("\nWrote %d records to %s\n", len(outcome.Records), flags.OutputPath)

	return nil
}
