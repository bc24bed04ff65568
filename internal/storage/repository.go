// Package storage implements the ValuesAPI port on a local SQLite
// database. Each backing table is persisted as numbered rows in a
// single cell-grid table, so the scan-then-write persistence semantics
// are identical to the spreadsheet backend, gaps included.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	ports "paytrack/internal/sheets"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ ports.ValuesAPI = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) ReadRange(ctx context.Context, sheet, rangeSpec string) ([][]string, error) {
	start, end, ok := ports.RowBounds(rangeSpec)
	if !ok {
		return nil, fmt.Errorf("invalid range %q", rangeSpec)
	}

	query := `SELECT row_number, cells FROM sheet_rows WHERE sheet = ?`
	args := []any{sheet}
	if start > 0 {
		query += ` AND row_number >= ?`
		args = append(args, start)
	}
	if end > 0 {
		query += ` AND row_number <= ?`
		args = append(args, end)
	}
	query += ` ORDER BY row_number`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	base := 1
	if start > 0 {
		base = start
	}
	var out [][]string
	for rows.Next() {
		var rowNumber int
		var cellsJSON string
		if err := rows.Scan(&rowNumber, &cellsJSON); err != nil {
			return nil, fmt.Errorf("scan sheet row: %w", err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			return nil, fmt.Errorf("decode cells for row %d: %w", rowNumber, err)
		}
		// Fill physical gaps so positions stay aligned with the grid.
		for base+len(out) < rowNumber {
			out = append(out, []string{})
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sheet rows: %w", err)
	}
	return trimTrailingEmpty(out), nil
}

func (s *SQLiteStore) AppendRow(ctx context.Context, sheet, _ string, row []string) error {
	cells, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode cells: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sheet_rows (sheet, row_number, cells)
		 VALUES (?, (SELECT COALESCE(MAX(row_number), 0) + 1 FROM sheet_rows WHERE sheet = ?), ?)`,
		sheet, sheet, string(cells))
	if err != nil {
		return fmt.Errorf("append row to %s: %w", sheet, err)
	}
	return nil
}

func (s *SQLiteStore) WriteRange(ctx context.Context, sheet, rangeSpec string, rows [][]string) error {
	start, _, ok := ports.RowBounds(rangeSpec)
	if !ok || start == 0 {
		return fmt.Errorf("invalid write range %q", rangeSpec)
	}
	for i, row := range rows {
		cells, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encode cells: %w", err)
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO sheet_rows (sheet, row_number, cells) VALUES (?, ?, ?)
			 ON CONFLICT(sheet, row_number) DO UPDATE SET cells = excluded.cells`,
			sheet, start+i, string(cells))
		if err != nil {
			return fmt.Errorf("write row %d of %s: %w", start+i, sheet, err)
		}
	}
	return nil
}

// ClearRange blanks the addressed rows but keeps them in place, so
// row numbers of later records never shift.
func (s *SQLiteStore) ClearRange(ctx context.Context, sheet, rangeSpec string) error {
	start, end, ok := ports.RowBounds(rangeSpec)
	if !ok || start == 0 {
		return fmt.Errorf("invalid clear range %q", rangeSpec)
	}
	if end == 0 {
		end = start
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE sheet_rows SET cells = '[]' WHERE sheet = ? AND row_number BETWEEN ? AND ?`,
		sheet, start, end)
	if err != nil {
		return fmt.Errorf("clear rows %d-%d of %s: %w", start, end, sheet, err)
	}
	return nil
}

func trimTrailingEmpty(rows [][]string) [][]string {
	last := len(rows)
	for last > 0 && isEmptyRow(rows[last-1]) {
		last--
	}
	return rows[:last]
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
