package store

import (
	"context"
	"errors"
	"testing"

	"paytrack/internal/core"
	"paytrack/internal/sheets/memory"
)

const (
	usersSheet        = "Users"
	transactionsSheet = "Transactions"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(memory.New(), usersSheet, transactionsSheet)
	if err := s.EnsureHeaders(context.Background()); err != nil {
		t.Fatalf("EnsureHeaders: %v", err)
	}
	return s
}

func seedUser(t *testing.T, s *Store, id, email string) core.User {
	t.Helper()
	u := core.User{ID: id, Email: email, PasswordHash: "hash", Name: "Test " + id, Role: core.RoleUser}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s): %v", id, err)
	}
	return u
}

func seedTransaction(t *testing.T, s *Store, id, date string, typ core.TransactionType, cents int64) core.Transaction {
	t.Helper()
	tx := core.Transaction{
		ID:        id,
		Date:      date,
		Type:      typ,
		Category:  "general",
		Amount:    core.Money{Cents: cents},
		CreatedBy: "Test",
	}
	if err := s.CreateTransaction(context.Background(), tx); err != nil {
		t.Fatalf("CreateTransaction(%s): %v", id, err)
	}
	return tx
}

func TestEnsureHeadersIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New(), usersSheet, transactionsSheet)
	if err := s.EnsureHeaders(ctx); err != nil {
		t.Fatalf("first EnsureHeaders: %v", err)
	}
	seedUser(t, s, "USR-1", "a@b.com")
	if err := s.EnsureHeaders(ctx); err != nil {
		t.Fatalf("second EnsureHeaders: %v", err)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("got %d users after repeated EnsureHeaders, want 1", len(users))
	}
}

func TestListUsersSkipsHeader(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("empty table listed %d users", len(users))
	}

	seedUser(t, s, "USR-1", "a@b.com")
	seedUser(t, s, "USR-2", "c@d.com")

	users, err = s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	// Header is row 1, so the first record sits at row 2.
	if users[0].RowPos != 2 || users[1].RowPos != 3 {
		t.Errorf("positions = %d, %d; want 2, 3", users[0].RowPos, users[1].RowPos)
	}
}

func TestFindUserByEmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUser(t, s, "USR-1", "Mario@example.com")

	if _, found, _ := s.FindUserByEmail(ctx, "mario@example.com"); found {
		t.Error("lowercase lookup matched a differently cased email")
	}
	u, found, err := s.FindUserByEmail(ctx, "Mario@example.com")
	if err != nil || !found {
		t.Fatalf("exact lookup failed: found=%v err=%v", found, err)
	}
	if u.ID != "USR-1" {
		t.Errorf("found %s, want USR-1", u.ID)
	}
}

func TestUpdateUserMergesPatch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUser(t, s, "USR-1", "a@b.com")

	newName := "Renamed"
	newRole := core.RoleAdmin
	updated, err := s.UpdateUser(ctx, "USR-1", core.UserPatch{Name: &newName, Role: &newRole})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Name != "Renamed" || updated.Role != core.RoleAdmin {
		t.Errorf("patched fields not applied: %+v", updated)
	}
	if updated.Email != "a@b.com" || updated.PasswordHash != "hash" {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	fetched, found, err := s.FindUserByID(ctx, "USR-1")
	if err != nil || !found {
		t.Fatalf("FindUserByID after update: found=%v err=%v", found, err)
	}
	if fetched.Name != "Renamed" {
		t.Errorf("persisted name = %q, want Renamed", fetched.Name)
	}
}

func TestUpdateMissingUserReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	name := "x"
	if _, err := s.UpdateUser(context.Background(), "USR-missing", core.UserPatch{Name: &name}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDeleteUserLeavesGapAndPreservesPositions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUser(t, s, "USR-1", "a@b.com")
	seedUser(t, s, "USR-2", "c@d.com")
	seedUser(t, s, "USR-3", "e@f.com")

	if err := s.DeleteUser(ctx, "USR-2"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if _, found, _ := s.FindUserByID(ctx, "USR-2"); found {
		t.Error("deleted user still found")
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users after delete, want 2", len(users))
	}
	// The cleared row stays as a gap, so USR-3 keeps its original row.
	if users[1].ID != "USR-3" || users[1].RowPos != 4 {
		t.Errorf("survivor = %s at row %d, want USR-3 at row 4", users[1].ID, users[1].RowPos)
	}

	if err := s.DeleteUser(ctx, "USR-2"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestUpdateAfterDeleteTargetsCorrectRow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedTransaction(t, s, "TXN-1", "2025-03-01", core.TypeExpense, 1000)
	seedTransaction(t, s, "TXN-2", "2025-03-02", core.TypeExpense, 2000)
	seedTransaction(t, s, "TXN-3", "2025-03-03", core.TypeExpense, 3000)

	if err := s.DeleteTransaction(ctx, "TXN-1"); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}

	// Positions are re-derived on every operation, so an update after a
	// delete must still land on the right physical row.
	amount := core.Money{Cents: 9999}
	if _, err := s.UpdateTransaction(ctx, "TXN-3", core.TransactionPatch{Amount: &amount}); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}

	txs, err := s.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	for _, tx := range txs {
		switch tx.ID {
		case "TXN-2":
			if tx.Amount.Cents != 2000 {
				t.Errorf("TXN-2 amount = %d, want untouched 2000", tx.Amount.Cents)
			}
		case "TXN-3":
			if tx.Amount.Cents != 9999 {
				t.Errorf("TXN-3 amount = %d, want 9999", tx.Amount.Cents)
			}
		default:
			t.Errorf("unexpected transaction %s", tx.ID)
		}
	}
}

func TestUpdateDeletedTransactionReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedTransaction(t, s, "TXN-1", "2025-03-01", core.TypeExpense, 1000)

	if err := s.DeleteTransaction(ctx, "TXN-1"); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	date := "2025-03-05"
	if _, err := s.UpdateTransaction(ctx, "TXN-1", core.TransactionPatch{Date: &date}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("update after delete error = %v, want ErrNotFound", err)
	}
}

func TestTransactionPatchNeverTouchesCreatedBy(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedTransaction(t, s, "TXN-1", "2025-03-01", core.TypeExpense, 1000)

	category := "travel"
	updated, err := s.UpdateTransaction(ctx, "TXN-1", core.TransactionPatch{Category: &category})
	if err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if updated.CreatedBy != "Test" {
		t.Errorf("createdBy = %q, want original Test", updated.CreatedBy)
	}
	if updated.Category != "travel" {
		t.Errorf("category = %q, want travel", updated.Category)
	}
}

func TestFindWithEmptyIDIsAbsent(t *testing.T) {
	s := newTestStore(t)
	if _, found, err := s.FindTransaction(context.Background(), ""); found || err != nil {
		t.Errorf("empty id lookup: found=%v err=%v, want absent without error", found, err)
	}
}
