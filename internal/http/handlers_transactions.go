package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"paytrack/internal/core"
	"paytrack/internal/events"
	"paytrack/internal/reports"
)

type transactionRequest struct {
	Date        string      `json:"date"`
	Type        string      `json:"type"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Amount      *core.Money `json:"amount"`
}

type transactionList struct {
	Transactions []core.Transaction `json:"transactions"`
	Count        int                `json:"count"`
}

// handleListTransactions returns all transactions, newest first,
// optionally narrowed by type, category and date range query params.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListTransactions(r.Context())
	if err != nil {
		respondCoreError(w, r, err, "transactions")
		return
	}

	q := r.URL.Query()
	if start, end := q.Get("startDate"), q.Get("endDate"); start != "" || end != "" {
		if start == "" {
			start = "0000-01-01"
		}
		if end == "" {
			end = "9999-12-31"
		}
		txs = reports.FilterByDateRange(txs, start, end)
	}
	if typ := q.Get("type"); typ != "" {
		txs = filterTransactions(txs, func(t core.Transaction) bool {
			return string(t.Type) == typ
		})
	}
	if category := q.Get("category"); category != "" {
		txs = filterTransactions(txs, func(t core.Transaction) bool {
			return strings.EqualFold(t.Category, category)
		})
	}

	reports.SortByDateDesc(txs)
	if txs == nil {
		txs = []core.Transaction{}
	}
	respondData(w, http.StatusOK, transactionList{Transactions: txs, Count: len(txs)})
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tx, found, err := s.store.FindTransaction(r.Context(), id)
	if err != nil {
		respondCoreError(w, r, err, "transaction")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	respondData(w, http.StatusOK, tx)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tx, fieldErrors := transactionFromRequest(req)
	if len(fieldErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", fieldErrors...)
		return
	}

	claims, _ := claimsFrom(r)
	tx.ID = "TXN-" + uuid.NewString()
	tx.CreatedBy = claims.Name
	if tx.CreatedBy == "" {
		tx.CreatedBy = claims.Email
	}

	if err := s.store.CreateTransaction(r.Context(), tx); err != nil {
		respondCoreError(w, r, err, "transaction")
		return
	}
	s.recorder.Record(r.Context(), events.EntityTransaction, events.ActionCreated, tx.ID, claims.Email)
	respondMessage(w, http.StatusCreated, "Transaction created", tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req transactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch, fieldErrors := transactionPatchFromRequest(req)
	if len(fieldErrors) > 0 {
		respondError(w, http.StatusBadRequest, "Validation failed", fieldErrors...)
		return
	}

	tx, err := s.store.UpdateTransaction(r.Context(), id, patch)
	if err != nil {
		respondCoreError(w, r, err, "transaction")
		return
	}
	claims, _ := claimsFrom(r)
	s.recorder.Record(r.Context(), events.EntityTransaction, events.ActionUpdated, id, claims.Email)
	respondMessage(w, http.StatusOK, "Transaction updated", tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		respondCoreError(w, r, err, "transaction")
		return
	}
	claims, _ := claimsFrom(r)
	s.recorder.Record(r.Context(), events.EntityTransaction, events.ActionDeleted, id, claims.Email)
	respondMessage(w, http.StatusOK, "Transaction deleted", nil)
}

// transactionFromRequest validates a full create payload, collecting
// every field error instead of failing on the first.
func transactionFromRequest(req transactionRequest) (core.Transaction, []string) {
	var fieldErrors []string
	tx := core.Transaction{
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
	}

	if date, ok := core.CanonicalDate(req.Date); ok {
		tx.Date = date
	} else {
		fieldErrors = append(fieldErrors, "date must be a valid date (YYYY-MM-DD)")
	}
	if typ, err := core.ParseTransactionType(req.Type); err == nil {
		tx.Type = typ
	} else {
		fieldErrors = append(fieldErrors, "type must be 'income' or 'expense'")
	}
	if tx.Category == "" {
		fieldErrors = append(fieldErrors, "category is required")
	}
	if req.Amount == nil || req.Amount.Validate() != nil {
		fieldErrors = append(fieldErrors, "amount must be a positive number")
	} else {
		tx.Amount = *req.Amount
	}
	return tx, fieldErrors
}

// transactionPatchFromRequest validates the fields present in an
// update payload. Absent fields stay untouched; present-but-invalid
// fields are errors.
func transactionPatchFromRequest(req transactionRequest) (core.TransactionPatch, []string) {
	var (
		patch       core.TransactionPatch
		fieldErrors []string
	)
	if req.Date != "" {
		if date, ok := core.CanonicalDate(req.Date); ok {
			patch.Date = &date
		} else {
			fieldErrors = append(fieldErrors, "date must be a valid date (YYYY-MM-DD)")
		}
	}
	if req.Type != "" {
		if typ, err := core.ParseTransactionType(req.Type); err == nil {
			patch.Type = &typ
		} else {
			fieldErrors = append(fieldErrors, "type must be 'income' or 'expense'")
		}
	}
	if req.Category != "" {
		category := strings.TrimSpace(req.Category)
		if category == "" {
			fieldErrors = append(fieldErrors, "category cannot be blank")
		} else {
			patch.Category = &category
		}
	}
	if req.Description != "" {
		description := strings.TrimSpace(req.Description)
		patch.Description = &description
	}
	if req.Amount != nil {
		if req.Amount.Validate() != nil {
			fieldErrors = append(fieldErrors, "amount must be a positive number")
		} else {
			patch.Amount = req.Amount
		}
	}
	return patch, fieldErrors
}

func filterTransactions(txs []core.Transaction, keep func(core.Transaction) bool) []core.Transaction {
	var out []core.Transaction
	for _, t := range txs {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
