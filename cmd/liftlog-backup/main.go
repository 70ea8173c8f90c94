package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/tracker"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	exportPath := flag.String("export", "", "write a full backup to this file")
	importPath := flag.String("import", "", "replace all data with the backup in this file")
	dryRun := flag.Bool("dry-run", false, "validate an import and report counts without writing")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := checkFlags(*exportPath, *importPath, *dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "%v\nUsage: liftlog-backup -config config.yaml (-export FILE | -import FILE [-dry-run])\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode: importing into memory, nothing is written")
	}

	// Open store
	var store storage.Store
	if *dryRun {
		store = storage.NewMemory()
	} else {
		if cfg.Store.Driver == storage.DriverPostgres {
			if err := storage.RunMigrations(cfg.Store.Postgres.DSN()); err != nil {
				log.Error("migration failed", "error", err)
				os.Exit(1)
			}
		}
		store, err = storage.Open(ctx, cfg.Store.Driver, cfg.Store.Target())
		if err != nil {
			log.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
			os.Exit(1)
		}
	}
	defer store.Close()

	tr, err := tracker.New(ctx, store, log, tracker.Options{MaxLogEntries: cfg.Limits.MaxLogEntries})
	if err != nil {
		log.Error("failed to load state", "error", err)
		os.Exit(1)
	}

	if *exportPath != "" {
		data, err := tr.Export()
		if err != nil {
			log.Error("export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*exportPath, data, 0644); err != nil {
			log.Error("writing export", "path", *exportPath, "error", err)
			os.Exit(1)
		}
		log.Info("export complete", "path", *exportPath, "bytes", len(data))
		return
	}

	data, err := os.ReadFile(*importPath)
	if err != nil {
		log.Error("reading import", "path", *importPath, "error", err)
		os.Exit(1)
	}
	counts, err := tr.Import(ctx, data)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}
	printCounts(log, counts)
	log.Info("import complete", "dry_run", *dryRun)
}

// checkFlags requires exactly one of export and import; dry-run only
// applies to an import.
func checkFlags(exportPath, importPath string, dryRun bool) error {
	if (exportPath == "") == (importPath == "") {
		return fmt.Errorf("exactly one of -export or -import is required")
	}
	if dryRun && importPath == "" {
		return fmt.Errorf("-dry-run requires -import")
	}
	return nil
}

func printCounts(log *slog.Logger, c tracker.ExportCounts) {
	log.Info("import stats",
		"workouts", c.Workouts,
		"exercises", c.Exercises,
		"exercise_states", c.ExerciseStates,
		"history", c.History,
		"logs", c.Logs,
	)
}
