// Package store is the persistence service: the sole owner of
// read/write access to the Users and Transactions tables. Everything
// above it works with typed records; everything below it sees only
// ranges of cell strings.
package store

import (
	"context"
	"fmt"

	"paytrack/internal/core"
	"paytrack/internal/sheets"
)

type Store struct {
	users        keyedTable[core.User]
	transactions keyedTable[core.Transaction]
}

func New(api sheets.ValuesAPI, usersSheet, transactionsSheet string) *Store {
	return &Store{
		users: keyedTable[core.User]{
			api:     api,
			sheet:   usersSheet,
			header:  userHeader,
			lastCol: userLastCol,
			decode:  userFromRow,
			encode:  userToRow,
			id:      func(u core.User) string { return u.ID },
			withPos: func(u core.User, pos int) core.User { u.RowPos = pos; return u },
		},
		transactions: keyedTable[core.Transaction]{
			api:     api,
			sheet:   transactionsSheet,
			header:  transactionHeader,
			lastCol: transactionLastCol,
			decode:  transactionFromRow,
			encode:  transactionToRow,
			id:      func(t core.Transaction) string { return t.ID },
			withPos: func(t core.Transaction, pos int) core.Transaction { t.RowPos = pos; return t },
		},
	}
}

// EnsureHeaders writes the header row of any table that is still
// completely empty. Called once at startup.
func (s *Store) EnsureHeaders(ctx context.Context) error {
	if err := s.users.ensureHeader(ctx); err != nil {
		return err
	}
	return s.transactions.ensureHeader(ctx)
}

// ---- Users ----

func (s *Store) ListUsers(ctx context.Context) ([]core.User, error) {
	return s.users.list(ctx)
}

// FindUserByEmail scans for an exact-match email. Lookups are
// case-sensitive, matching how emails are stored.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (core.User, bool, error) {
	if email == "" {
		return core.User{}, false, nil
	}
	users, err := s.users.list(ctx)
	if err != nil {
		return core.User{}, false, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return core.User{}, false, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (core.User, bool, error) {
	return s.users.find(ctx, id)
}

// CreateUser appends the record at the table's logical end. Email
// uniqueness is not enforced here; callers pre-check via
// FindUserByEmail and accept the race window between check and append.
func (s *Store) CreateUser(ctx context.Context, u core.User) error {
	return s.users.append(ctx, u)
}

// UpdateUser merges the patch onto the freshly located record and
// overwrites exactly that row. The position must come from a fresh
// scan: a stale cached position would risk writing the wrong row.
func (s *Store) UpdateUser(ctx context.Context, id string, patch core.UserPatch) (core.User, error) {
	u, ok, err := s.users.find(ctx, id)
	if err != nil {
		return core.User{}, err
	}
	if !ok {
		return core.User{}, fmt.Errorf("user %s: %w", id, core.ErrNotFound)
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if err := s.users.update(ctx, u.RowPos, u); err != nil {
		return core.User{}, err
	}
	return u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	u, ok, err := s.users.find(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %s: %w", id, core.ErrNotFound)
	}
	return s.users.clear(ctx, u.RowPos)
}

// ---- Transactions ----

func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.transactions.list(ctx)
}

func (s *Store) FindTransaction(ctx context.Context, id string) (core.Transaction, bool, error) {
	return s.transactions.find(ctx, id)
}

func (s *Store) CreateTransaction(ctx context.Context, t core.Transaction) error {
	return s.transactions.append(ctx, t)
}

func (s *Store) UpdateTransaction(ctx context.Context, id string, patch core.TransactionPatch) (core.Transaction, error) {
	t, ok, err := s.transactions.find(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}
	if !ok {
		return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
	}
	if patch.Date != nil {
		t.Date = *patch.Date
	}
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if err := s.transactions.update(ctx, t.RowPos, t); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	t, ok, err := s.transactions.find(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
	}
	return s.transactions.clear(ctx, t.RowPos)
}
