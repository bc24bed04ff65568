package http

import (
	"net/http"
	"strconv"
	"time"

	"paytrack/internal/core"
	"paytrack/internal/reports"
)

// handleBalanceReport returns the all-time income/expense balance.
func (s *Server) handleBalanceReport(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListTransactions(r.Context())
	if err != nil {
		respondCoreError(w, r, err, "transactions")
		return
	}
	respondData(w, http.StatusOK, reports.ComputeBalance(txs))
}

// handleWeeklyReport covers the Sunday-to-Saturday week containing today.
func (s *Server) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	start, end := reports.CurrentWeekRange(time.Now())
	s.buildReport(w, r, "weekly", start, end)
}

// handleMonthlyReport covers the current month by default, or an
// explicit year/month given as query params.
func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := reports.CurrentMonthRange(time.Now())
	if q.Get("year") != "" || q.Get("month") != "" {
		year, errY := strconv.Atoi(q.Get("year"))
		month, errM := strconv.Atoi(q.Get("month"))
		if errY != nil || errM != nil || month < 1 || month > 12 {
			respondError(w, http.StatusBadRequest, "year and month must be valid numbers (month 1-12)")
			return
		}
		start, end = reports.MonthRange(year, month)
	}
	s.buildReport(w, r, "monthly", start, end)
}

// handleRangeReport covers an arbitrary [startDate, endDate] window.
func (s *Server) handleRangeReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, okStart := core.CanonicalDate(q.Get("startDate"))
	end, okEnd := core.CanonicalDate(q.Get("endDate"))
	if !okStart || !okEnd {
		respondError(w, http.StatusBadRequest, "startDate and endDate must be valid dates (YYYY-MM-DD)")
		return
	}
	if start > end {
		respondError(w, http.StatusBadRequest, "startDate must not be after endDate")
		return
	}
	s.buildReport(w, r, "range", start, end)
}

// handleSummaryReport returns today's and the current month's totals
// alongside the all-time balance, the dashboard's one-call payload.
func (s *Server) handleSummaryReport(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListTransactions(r.Context())
	if err != nil {
		respondCoreError(w, r, err, "transactions")
		return
	}

	now := time.Now()
	todayStart, todayEnd := reports.TodayRange(now)
	monthStart, monthEnd := reports.CurrentMonthRange(now)

	today, _, _ := reports.Aggregate(reports.FilterByDateRange(txs, todayStart, todayEnd))
	month, _, _ := reports.Aggregate(reports.FilterByDateRange(txs, monthStart, monthEnd))

	respondData(w, http.StatusOK, map[string]any{
		"today":   today,
		"month":   month,
		"allTime": reports.ComputeBalance(txs),
	})
}

func (s *Server) buildReport(w http.ResponseWriter, r *http.Request, period, start, end string) {
	txs, err := s.store.ListTransactions(r.Context())
	if err != nil {
		respondCoreError(w, r, err, "transactions")
		return
	}
	report := reports.Build(period, txs, start, end)
	reports.SortByDateDesc(report.Transactions)
	if report.Transactions == nil {
		report.Transactions = []core.Transaction{}
	}
	respondData(w, http.StatusOK, report)
}
