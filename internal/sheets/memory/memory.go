// Package memory implements the ValuesAPI port as an in-process cell
// grid. It backs the "memory" data backend and the store tests, and
// mirrors the remote store's observable behavior: trailing empty rows
// are not returned, cleared rows stay in place as gaps, and appends
// land after the last non-empty row.
package memory

import (
	"context"
	"fmt"
	"sync"

	ports "paytrack/internal/sheets"
)

type Store struct {
	mu    sync.Mutex
	grids map[string][][]string
}

var _ ports.ValuesAPI = (*Store)(nil)

func New() *Store {
	return &Store{grids: make(map[string][][]string)}
}

// NewSeeded builds a store with pre-populated sheets. Rows are copied.
func NewSeeded(seed map[string][][]string) *Store {
	s := New()
	for sheet, rows := range seed {
		grid := make([][]string, len(rows))
		for i, row := range rows {
			grid[i] = append([]string(nil), row...)
		}
		s.grids[sheet] = grid
	}
	return s
}

func (s *Store) ReadRange(_ context.Context, sheet, rangeSpec string) ([][]string, error) {
	start, end, ok := ports.RowBounds(rangeSpec)
	if !ok {
		return nil, fmt.Errorf("invalid range %q", rangeSpec)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	grid := s.grids[sheet]
	last := lastNonEmptyRow(grid)
	lo, hi := 1, last
	if start > 0 {
		lo = start
	}
	if end > 0 && end < hi {
		hi = end
	}
	var out [][]string
	for r := lo; r <= hi; r++ {
		out = append(out, append([]string(nil), rowAt(grid, r)...))
	}
	return out, nil
}

func (s *Store) AppendRow(_ context.Context, sheet, _ string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	grid := s.grids[sheet]
	next := lastNonEmptyRow(grid) + 1
	grid = growTo(grid, next)
	grid[next-1] = append([]string(nil), row...)
	s.grids[sheet] = grid
	return nil
}

func (s *Store) WriteRange(_ context.Context, sheet, rangeSpec string, rows [][]string) error {
	start, _, ok := ports.RowBounds(rangeSpec)
	if !ok || start == 0 {
		return fmt.Errorf("invalid write range %q", rangeSpec)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	grid := s.grids[sheet]
	grid = growTo(grid, start+len(rows)-1)
	for i, row := range rows {
		grid[start-1+i] = append([]string(nil), row...)
	}
	s.grids[sheet] = grid
	return nil
}

func (s *Store) ClearRange(_ context.Context, sheet, rangeSpec string) error {
	start, end, ok := ports.RowBounds(rangeSpec)
	if !ok || start == 0 {
		return fmt.Errorf("invalid clear range %q", rangeSpec)
	}
	if end == 0 {
		end = start
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	grid := s.grids[sheet]
	for r := start; r <= end && r <= len(grid); r++ {
		for c := range grid[r-1] {
			grid[r-1][c] = ""
		}
	}
	return nil
}

func rowAt(grid [][]string, row int) []string {
	if row < 1 || row > len(grid) {
		return nil
	}
	return grid[row-1]
}

func growTo(grid [][]string, rows int) [][]string {
	for len(grid) < rows {
		grid = append(grid, []string{})
	}
	return grid
}

func lastNonEmptyRow(grid [][]string) int {
	for r := len(grid); r >= 1; r-- {
		for _, cell := range grid[r-1] {
			if cell != "" {
				return r
			}
		}
	}
	return 0
}
