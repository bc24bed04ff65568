// Package reports derives balance, category and time-bucketed
// aggregates from a transaction list already fetched by the store.
// Every function is a pure function of its input; nothing here reads
// or caches state.
package reports

import (
	"sort"

	"paytrack/internal/core"
)

// Balance is the income/expense snapshot over a transaction list.
type Balance struct {
	TotalIncome  core.Money `json:"totalIncome"`
	TotalExpense core.Money `json:"totalExpense"`
	Balance      core.Money `json:"balance"`
}

// Summary extends Balance with the number of contributing transactions.
type Summary struct {
	TotalIncome      core.Money `json:"totalIncome"`
	TotalExpense     core.Money `json:"totalExpense"`
	Balance          core.Money `json:"balance"`
	TransactionCount int        `json:"transactionCount"`
}

// DayTotals is one day's income/expense pair for charting.
type DayTotals struct {
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
}

// Report is the full aggregate for a period: summary, expense-only
// category breakdown, per-day series, and the underlying transactions.
type Report struct {
	Period            string                `json:"period"`
	StartDate         string                `json:"startDate"`
	EndDate           string                `json:"endDate"`
	Summary           Summary               `json:"summary"`
	CategoryBreakdown map[string]core.Money `json:"categoryBreakdown"`
	DailyData         map[string]DayTotals  `json:"dailyData"`
	Transactions      []core.Transaction    `json:"transactions"`
}

// ComputeBalance sums amounts grouped by type. Sums run on integer
// cents, so balance == totalIncome - totalExpense holds exactly.
func ComputeBalance(txs []core.Transaction) Balance {
	var b Balance
	for _, t := range txs {
		switch t.Type {
		case core.TypeIncome:
			b.TotalIncome = b.TotalIncome.Add(t.Amount)
		case core.TypeExpense:
			b.TotalExpense = b.TotalExpense.Add(t.Amount)
		}
	}
	b.Balance = b.TotalIncome.Sub(b.TotalExpense)
	return b
}

// FilterByDateRange keeps the transactions whose canonical date falls
// within [start, end]. Dates are normalized to local YYYY-MM-DD before
// comparing; the zero-padded form makes lexicographic comparison
// chronologically correct. Transactions whose date fails to parse are
// dropped; if either bound fails to parse the result is empty.
func FilterByDateRange(txs []core.Transaction, start, end string) []core.Transaction {
	lo, okLo := core.CanonicalDate(start)
	hi, okHi := core.CanonicalDate(end)
	if !okLo || !okHi {
		return nil
	}
	var out []core.Transaction
	for _, t := range txs {
		d, ok := core.CanonicalDate(t.Date)
		if !ok {
			continue
		}
		if d >= lo && d <= hi {
			out = append(out, t)
		}
	}
	return out
}

// Aggregate produces the full report body in a single pass. The
// category breakdown covers expenses only; income rows contribute to
// totals and the daily series but not to the breakdown. Days and
// categories appear only when touched by at least one transaction.
func Aggregate(txs []core.Transaction) (Summary, map[string]core.Money, map[string]DayTotals) {
	summary := Summary{TransactionCount: len(txs)}
	byCategory := make(map[string]core.Money)
	byDay := make(map[string]DayTotals)

	for _, t := range txs {
		day := byDay[t.Date]
		switch t.Type {
		case core.TypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
			day.Income = day.Income.Add(t.Amount)
		default:
			summary.TotalExpense = summary.TotalExpense.Add(t.Amount)
			day.Expense = day.Expense.Add(t.Amount)
			byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
		}
		byDay[t.Date] = day
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary, byCategory, byDay
}

// Build filters the list to [start, end], aggregates it, and assembles
// the report envelope.
func Build(period string, txs []core.Transaction, start, end string) Report {
	filtered := FilterByDateRange(txs, start, end)
	summary, byCategory, byDay := Aggregate(filtered)
	return Report{
		Period:            period,
		StartDate:         start,
		EndDate:           end,
		Summary:           summary,
		CategoryBreakdown: byCategory,
		DailyData:         byDay,
		Transactions:      filtered,
	}
}

// SortByDateDesc orders transactions newest first, the order the API
// returns lists in.
func SortByDateDesc(txs []core.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date > txs[j].Date
	})
}
