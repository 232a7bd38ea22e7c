// Package summary derives the chart-ready dashboard views from a user's
// ledger. Everything here is a pure function of the transactions passed in
// and the instant treated as "now"; nothing is cached or persisted.
package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"moneyhub/internal/models"
)

const (
	// WeeksInWindow is the number of buckets in the weekly series.
	WeeksInWindow = 8
	// RecentLimit is the number of transactions in the recent list.
	RecentLimit = 5
	// BudgetCap is the ceiling of the budget indicator.
	BudgetCap = 75.0
)

var (
	budgetShare = decimal.RequireFromString("0.7")
	hundred     = decimal.NewFromInt(100)
	week        = 7 * 24 * time.Hour
)

// Totals are the headline figures of the dashboard.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	CashFlow decimal.Decimal `json:"cash_flow"`
	// TotalBalance always equals CashFlow. It is kept because clients read it.
	TotalBalance decimal.Decimal `json:"total_balance"`
	Budget       float64         `json:"budget"`
}

// MonthlySeries holds parallel arrays keyed by Labels (YYYY-MM, ascending).
type MonthlySeries struct {
	Labels   []string          `json:"labels"`
	Income   []decimal.Decimal `json:"income"`
	Expenses []decimal.Decimal `json:"expenses"`
	Balance  []decimal.Decimal `json:"balance"`
}

// WeeklySeries holds parallel arrays keyed by ISO week labels (YYYY-Www).
type WeeklySeries struct {
	Labels   []string          `json:"labels"`
	Income   []decimal.Decimal `json:"income"`
	Expenses []decimal.Decimal `json:"expenses"`
}

// Dashboard is the full aggregation payload.
type Dashboard struct {
	Summary            Totals                     `json:"summary"`
	MonthlyData        MonthlySeries              `json:"monthly_data"`
	WeeklyData         WeeklySeries               `json:"weekly_data"`
	CategoryData       map[string]decimal.Decimal `json:"category_data"`
	RecentTransactions []models.Transaction       `json:"recent_transactions"`
}

// Build computes every dashboard view for the given transactions.
func Build(txs []models.Transaction, now time.Time) Dashboard {
	return Dashboard{
		Summary:            ComputeTotals(txs),
		MonthlyData:        Monthly(txs),
		WeeklyData:         Weekly(txs, now),
		CategoryData:       ByCategory(txs),
		RecentTransactions: Recent(txs, RecentLimit),
	}
}

// ComputeTotals sums deposits and withdrawals and derives the budget indicator.
func ComputeTotals(txs []models.Transaction) Totals {
	income, expenses := decimal.Zero, decimal.Zero
	for i := range txs {
		switch txs[i].Type {
		case models.TransactionTypeDeposit:
			income = income.Add(txs[i].Amount)
		case models.TransactionTypeWithdrawal:
			expenses = expenses.Add(txs[i].Amount)
		}
	}

	cashFlow := income.Sub(expenses)
	return Totals{
		Income:       income,
		Expenses:     expenses,
		CashFlow:     cashFlow,
		TotalBalance: cashFlow,
		Budget:       BudgetIndicator(income, expenses),
	}
}

// BudgetIndicator returns min(75, expenses / (income * 0.7) * 100), or 0 when
// there is no income.
func BudgetIndicator(income, expenses decimal.Decimal) float64 {
	if !income.IsPositive() {
		return 0
	}
	pct := expenses.Div(income.Mul(budgetShare)).Mul(hundred).InexactFloat64()
	if pct > BudgetCap {
		return BudgetCap
	}
	return pct
}

type bucket struct {
	income   decimal.Decimal
	expenses decimal.Decimal
}

func (b *bucket) add(tx *models.Transaction) {
	switch tx.Type {
	case models.TransactionTypeDeposit:
		b.income = b.income.Add(tx.Amount)
	case models.TransactionTypeWithdrawal:
		b.expenses = b.expenses.Add(tx.Amount)
	}
}

// MonthKey returns the UTC calendar month of t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// Monthly groups transactions by calendar month.
func Monthly(txs []models.Transaction) MonthlySeries {
	buckets := make(map[string]*bucket)
	for i := range txs {
		key := MonthKey(txs[i].Date)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.add(&txs[i])
	}

	labels := make([]string, 0, len(buckets))
	for key := range buckets {
		labels = append(labels, key)
	}
	sort.Strings(labels)

	series := MonthlySeries{
		Labels:   labels,
		Income:   make([]decimal.Decimal, len(labels)),
		Expenses: make([]decimal.Decimal, len(labels)),
		Balance:  make([]decimal.Decimal, len(labels)),
	}
	for i, key := range labels {
		b := buckets[key]
		series.Income[i] = b.income
		series.Expenses[i] = b.expenses
		series.Balance[i] = b.income.Sub(b.expenses)
	}
	return series
}

// WeekKey returns the ISO 8601 week of t (in UTC) as YYYY-Www.
func WeekKey(t time.Time) string {
	year, wk := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, wk)
}

// Weekly returns exactly WeeksInWindow buckets ending at now. Transactions
// older than eight weeks, or whose week is not one of the seeded buckets, are
// not counted.
func Weekly(txs []models.Transaction, now time.Time) WeeklySeries {
	labels := make([]string, 0, WeeksInWindow)
	buckets := make(map[string]*bucket, WeeksInWindow)
	for i := 0; i < WeeksInWindow; i++ {
		key := WeekKey(now.Add(-time.Duration(WeeksInWindow-1-i) * week))
		if _, ok := buckets[key]; ok {
			continue
		}
		labels = append(labels, key)
		buckets[key] = &bucket{}
	}

	cutoff := now.Add(-WeeksInWindow * week)
	for i := range txs {
		if txs[i].Date.Before(cutoff) {
			continue
		}
		if b, ok := buckets[WeekKey(txs[i].Date)]; ok {
			b.add(&txs[i])
		}
	}

	series := WeeklySeries{
		Labels:   labels,
		Income:   make([]decimal.Decimal, len(labels)),
		Expenses: make([]decimal.Decimal, len(labels)),
	}
	for i, key := range labels {
		series.Income[i] = buckets[key].income
		series.Expenses[i] = buckets[key].expenses
	}
	return series
}

// ByCategory sums withdrawal amounts per category.
func ByCategory(txs []models.Transaction) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for i := range txs {
		if txs[i].Type != models.TransactionTypeWithdrawal {
			continue
		}
		category := txs[i].Category
		if category == "" {
			category = models.DefaultCategory
		}
		out[category] = out[category].Add(txs[i].Amount)
	}
	return out
}

// Recent returns the limit most recent transactions, newest first. The input
// slice is not modified.
func Recent(txs []models.Transaction, limit int) []models.Transaction {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	if limit < 0 {
		limit = 0
	}
	if len(sorted) > limit {
		sorted = sorted[len(sorted)-limit:]
	}

	out := make([]models.Transaction, len(sorted))
	for i := range sorted {
		out[i] = sorted[len(sorted)-1-i]
	}
	return out
}
