// Package sheets defines the port every backing-table adapter
// implements. The store layer addresses tables only through ranges in
// A1 notation ("A:G" for a whole table, "A5:G5" for one row), which
// keeps the adapters interchangeable: Google Sheets, the local SQLite
// grid and the in-memory grid all expose the same four operations.
package sheets

import "context"

// ValuesAPI is the backing-store contract required by the persistence
// service. ReadRange returns every row including the header; an empty
// table yields an empty or header-only result. ClearRange blanks cells
// without shifting subsequent rows, so a deleted row leaves a gap.
type ValuesAPI interface {
	ReadRange(ctx context.Context, sheet, rangeSpec string) ([][]string, error)
	AppendRow(ctx context.Context, sheet, rangeSpec string, row []string) error
	WriteRange(ctx context.Context, sheet, rangeSpec string, rows [][]string) error
	ClearRange(ctx context.Context, sheet, rangeSpec string) error
}
