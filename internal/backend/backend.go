// Package backend selects and constructs the backing-table adapter.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"paytrack/internal/sheets"
	"paytrack/internal/sheets/google"
	"paytrack/internal/sheets/memory"
	"paytrack/internal/storage"
)

type Type string

const (
	Sheets Type = "sheets"
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case Sheets, SQLite, Memory:
		return true
	default:
		return false
	}
}

// Config holds what each backend needs to start.
type Config struct {
	Type Type

	// SQLite
	SQLiteDBPath string

	// Google Sheets
	SpreadsheetID   string
	CredentialsJSON string
	CredentialsFile string
	Timeout         time.Duration
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result carries the constructed adapter and its optional cleanup.
type Result struct {
	API     sheets.ValuesAPI
	Cleanup CleanupFunc
}

// New constructs the adapter for the configured backend type.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case Sheets:
		cli, err := google.New(ctx, google.Options{
			SpreadsheetID:   cfg.SpreadsheetID,
			CredentialsJSON: cfg.CredentialsJSON,
			CredentialsFile: cfg.CredentialsFile,
			Timeout:         cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		logger.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.SpreadsheetID)
		return &Result{API: cli}, nil

	case SQLite:
		repo, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite store: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{API: repo, Cleanup: repo.Close}, nil

	default:
		logger.Info("Initialized memory backend")
		return &Result{API: memory.New()}, nil
	}
}
