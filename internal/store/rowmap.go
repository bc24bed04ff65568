package store

import (
	"strings"

	"paytrack/internal/core"
)

// Row layouts of the two backing tables. Mapping is strictly
// order-dependent; changing column order is a breaking change to any
// existing spreadsheet.
var (
	userHeader        = []string{"id", "email", "passwordHash", "name", "role"}
	transactionHeader = []string{"id", "date", "type", "category", "description", "amount", "createdBy"}
)

const (
	userLastCol        byte = 'E' // 5 columns
	transactionLastCol byte = 'G' // 7 columns
)

// cell returns the i-th cell of a row, tolerating short rows: the
// remote store omits trailing empty cells.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// userFromRow decodes one data row into a User. An all-empty row (the
// footprint of a clear-based delete) yields ok=false. A missing role
// cell defaults to the user role.
func userFromRow(row []string) (core.User, bool) {
	if isEmptyRow(row) {
		return core.User{}, false
	}
	role, err := core.ParseRole(cell(row, 4))
	if err != nil {
		role = core.RoleUser
	}
	return core.User{
		ID:           cell(row, 0),
		Email:        cell(row, 1),
		PasswordHash: cell(row, 2),
		Name:         cell(row, 3),
		Role:         role,
	}, true
}

func userToRow(u core.User) []string {
	return []string{u.ID, u.Email, u.PasswordHash, u.Name, string(u.Role)}
}

// transactionFromRow decodes one data row into a Transaction. An
// unparseable amount coerces to zero rather than failing the fetch.
func transactionFromRow(row []string) (core.Transaction, bool) {
	if isEmptyRow(row) {
		return core.Transaction{}, false
	}
	return core.Transaction{
		ID:          cell(row, 0),
		Date:        cell(row, 1),
		Type:        core.TransactionType(cell(row, 2)),
		Category:    cell(row, 3),
		Description: cell(row, 4),
		Amount:      core.MoneyFromCellValue(cell(row, 5)),
		CreatedBy:   cell(row, 6),
	}, true
}

func transactionToRow(t core.Transaction) []string {
	return []string{
		t.ID,
		t.Date,
		string(t.Type),
		t.Category,
		t.Description,
		t.Amount.String(),
		t.CreatedBy,
	}
}
