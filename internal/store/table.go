package store

import (
	"context"
	"fmt"

	"paytrack/internal/core"
	"paytrack/internal/sheets"
)

// keyedTable adapts one backing table to key-addressed operations.
// The store has no primary-key index, so find is a full-range scan and
// every mutation re-derives the record's physical row before writing.
// The scan-then-write sequence is deliberately not atomic: a
// concurrent writer can interleave between the read and the write.
// That race is an accepted property of the system, not something this
// layer papers over with locking.
type keyedTable[T any] struct {
	api     sheets.ValuesAPI
	sheet   string
	header  []string
	lastCol byte
	decode  func(row []string) (T, bool)
	encode  func(rec T) []string
	id      func(rec T) string
	withPos func(rec T, pos int) T
}

func (t *keyedTable[T]) span() string {
	return sheets.ColumnSpan(t.lastCol)
}

// list fetches the whole table, skips the header, and maps every
// surviving row. Each record's position is its 1-based row within the
// full fetched range (header = row 1), so positions stay valid for
// targeted writes even when cleared rows shrink the in-memory list.
func (t *keyedTable[T]) list(ctx context.Context) ([]T, error) {
	rows, err := t.api.ReadRange(ctx, t.sheet, t.span())
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", core.ErrUnavailable, t.sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	var out []T
	for i, row := range rows[1:] {
		rec, ok := t.decode(row)
		if !ok {
			continue
		}
		out = append(out, t.withPos(rec, i+2))
	}
	return out, nil
}

// find scans the freshly fetched table for the record with the given
// id. Absence is (zero, false, nil), not an error.
func (t *keyedTable[T]) find(ctx context.Context, id string) (T, bool, error) {
	var zero T
	if id == "" {
		return zero, false, nil
	}
	recs, err := t.list(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, rec := range recs {
		if t.id(rec) == id {
			return rec, true, nil
		}
	}
	return zero, false, nil
}

func (t *keyedTable[T]) append(ctx context.Context, rec T) error {
	if err := t.api.AppendRow(ctx, t.sheet, t.span(), t.encode(rec)); err != nil {
		return fmt.Errorf("%w: append to %s: %v", core.ErrUnavailable, t.sheet, err)
	}
	return nil
}

// update overwrites exactly the addressed row.
func (t *keyedTable[T]) update(ctx context.Context, pos int, rec T) error {
	rng := sheets.RowRange(t.lastCol, pos)
	if err := t.api.WriteRange(ctx, t.sheet, rng, [][]string{t.encode(rec)}); err != nil {
		return fmt.Errorf("%w: write %s %s: %v", core.ErrUnavailable, t.sheet, rng, err)
	}
	return nil
}

// clear blanks the addressed row without shifting subsequent rows. The
// gap is permanent; readers treat the empty row as absent.
func (t *keyedTable[T]) clear(ctx context.Context, pos int) error {
	rng := sheets.RowRange(t.lastCol, pos)
	if err := t.api.ClearRange(ctx, t.sheet, rng); err != nil {
		return fmt.Errorf("%w: clear %s %s: %v", core.ErrUnavailable, t.sheet, rng, err)
	}
	return nil
}

// ensureHeader appends the header row when the fetched range is empty.
func (t *keyedTable[T]) ensureHeader(ctx context.Context) error {
	rows, err := t.api.ReadRange(ctx, t.sheet, t.span())
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", core.ErrUnavailable, t.sheet, err)
	}
	if len(rows) > 0 {
		return nil
	}
	if err := t.api.AppendRow(ctx, t.sheet, t.span(), t.header); err != nil {
		return fmt.Errorf("%w: write header of %s: %v", core.ErrUnavailable, t.sheet, err)
	}
	return nil
}
