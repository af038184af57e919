package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"commentboard/app/config"
	"commentboard/app/repositories"
)

// HandleCommand runs a subcommand and returns the process exit code.
func HandleCommand(cfg *config.Config, logger *slog.Logger, args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "serve":
		return runUntilSignal(logger, func(ctx context.Context) error {
			return RunAPIServer(ctx, cfg, logger)
		})
	case "ui":
		return runUntilSignal(logger, func(ctx context.Context) error {
			return RunUIServer(ctx, cfg, logger)
		})
	case "seed":
		return seed(cfg.Storage)
	case "clean":
		clean(cfg.Storage)
		return 0
	case "init":
		return initDb(cfg.Storage)
	case "backup":
		return backup(cfg.Storage)
	case "restore":
		if len(args) < 2 {
			printLine("Error: backup file path required for restore")
			return 1
		}
		return restore(cfg.Storage, args[1])
	case "help":
		printHelp()
		return 0
	default:
		printf("Unknown command: %s\n\n", cmd)
		printHelp()
		return 1
	}
}

// printHelp prints help for the subcommands.
func printHelp() {
	helpText := `Usage: commentboard <command> [options]

Commands:
  serve              Run the comments REST API
  ui                 Run the browser UI (talks to the API at UI_API_BASE_URL)
  seed               Insert sample posts and comments
  clean              Delete the database
  init               Initialize a new empty database
  backup             Create a backup of the database
  restore <file>     Restore the database from a backup
  version            Show version information
  help               Display this help message

Configuration comes from config.yaml, .env and the environment
(SERVER_ADDR, STORAGE_DRIVER, STORAGE_PATH, UI_ADDR, LOG_LEVEL, ...).
`
	printLine(helpText)
}

func runUntilSignal(logger *slog.Logger, run func(ctx context.Context) error) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Error("server failed", "error", err)
		return 1
	}
	return 0
}

// clean removes the database.
func clean(cfg config.StorageConfig) {
	if !databaseExists(cfg) {
		printLine("Database is already clean (does not exist)")
		return
	}

	if !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		printLine("Operation cancelled")
		return
	}

	if err := removeDatabase(cfg); err != nil {
		printf("Failed to clean database: %v\n", err)
		return
	}
	printLine("Database cleaned successfully")
}

// initDb initializes a new empty database.
func initDb(cfg config.StorageConfig) int {
	if databaseExists(cfg) {
		printLine("Database already exists. Use 'clean' first if you want to reinitialize.")
		return 0
	}

	storage, err := openStorage(cfg)
	if err != nil {
		printf("Failed to initialize database: %v\n", err)
		return 1
	}
	if err := storage.Close(); err != nil {
		printf("Failed to close database: %v\n", err)
		return 1
	}

	printf("Database initialized successfully (%s at %s)\n", cfg.Driver, cfg.Path)
	return 0
}

// backup writes a backup of the database into the backup directory.
func backup(cfg config.StorageConfig) int {
	if !databaseExists(cfg) {
		printLine("No database exists to backup")
		return 1
	}

	if err := os.MkdirAll(cfg.BackupDir, 0755); err != nil {
		printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	storage, err := openStorage(cfg)
	if err != nil {
		printf("Failed to open database: %v\n", err)
		return 1
	}
	defer storage.Close()

	backuper, ok := storage.(repositories.Backuper)
	if !ok {
		printf("Storage driver %s does not support backups\n", cfg.Driver)
		return 1
	}

	backupFile := filepath.Join(cfg.BackupDir, fmt.Sprintf("backup_%s_%d.db", cfg.Driver, time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := backuper.Backup(f); err != nil {
		printf("Failed to backup database: %v\n", err)
		return 1
	}

	printf("Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore replaces the database with the contents of backupFile.
func restore(cfg config.StorageConfig, backupFile string) int {
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	if databaseExists(cfg) {
		if !confirm("Existing database found. Do you want to replace it?") {
			printLine("Operation cancelled")
			return 1
		}
		if err := removeDatabase(cfg); err != nil {
			printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	storage, err := openStorage(cfg)
	if err != nil {
		printf("Failed to open database: %v\n", err)
		return 1
	}
	defer storage.Close()

	backuper, ok := storage.(repositories.Backuper)
	if !ok {
		printf("Storage driver %s does not support restore\n", cfg.Driver)
		return 1
	}

	f, err := os.Open(backupFile)
	if err != nil {
		printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := backuper.Restore(f); err != nil {
		printf("Failed to restore database: %v\n", err)
		return 1
	}

	printLine("Database restored successfully")
	return 0
}
