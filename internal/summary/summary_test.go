package summary

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"moneyhub/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(id string, typ models.TransactionType, amount, category string, date time.Time) models.Transaction {
	t := models.Transaction{
		Type:     typ,
		Amount:   dec(amount),
		Category: category,
		Date:     date,
	}
	t.ID = id
	return t
}

func assertDec(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestBuildSingleMonthScenario(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("a", models.TransactionTypeDeposit, "5000", "Income", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)),
		tx("b", models.TransactionTypeWithdrawal, "1200", "Bills", time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)),
		tx("c", models.TransactionTypeWithdrawal, "85", "Food", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),
	}

	d := Build(txs, now)

	assertDec(t, "income", d.Summary.Income, "5000")
	assertDec(t, "expenses", d.Summary.Expenses, "1285")
	assertDec(t, "cash_flow", d.Summary.CashFlow, "3715")
	assertDec(t, "total_balance", d.Summary.TotalBalance, "3715")

	if len(d.MonthlyData.Labels) != 1 || d.MonthlyData.Labels[0] != "2024-03" {
		t.Fatalf("expected one monthly bucket 2024-03, got %v", d.MonthlyData.Labels)
	}
	assertDec(t, "monthly income", d.MonthlyData.Income[0], "5000")
	assertDec(t, "monthly expenses", d.MonthlyData.Expenses[0], "1285")
	assertDec(t, "monthly balance", d.MonthlyData.Balance[0], "3715")

	assertDec(t, "bills", d.CategoryData["Bills"], "1200")
	assertDec(t, "food", d.CategoryData["Food"], "85")
	if _, ok := d.CategoryData["Income"]; ok {
		t.Error("deposits must not appear in the category breakdown")
	}

	if len(d.WeeklyData.Labels) != WeeksInWindow {
		t.Errorf("expected %d weekly buckets, got %d", WeeksInWindow, len(d.WeeklyData.Labels))
	}
	if len(d.RecentTransactions) != 3 || d.RecentTransactions[0].ID != "c" {
		t.Errorf("expected newest transaction first, got %+v", d.RecentTransactions)
	}
}

func TestBudgetIndicator(t *testing.T) {
	tests := []struct {
		name     string
		income   string
		expenses string
		want     float64
	}{
		{name: "no_income", income: "0", expenses: "500", want: 0},
		{name: "no_expenses", income: "1000", expenses: "0", want: 0},
		{name: "below_cap", income: "1000", expenses: "350", want: 50},
		{name: "capped", income: "1000", expenses: "900", want: BudgetCap},
		{name: "exactly_cap", income: "1000", expenses: "525", want: BudgetCap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BudgetIndicator(dec(tt.income), dec(tt.expenses)); got != tt.want {
				t.Errorf("BudgetIndicator(%s, %s) = %v, want %v", tt.income, tt.expenses, got, tt.want)
			}
		})
	}
}

func TestMonthlySeries(t *testing.T) {
	txs := []models.Transaction{
		tx("1", models.TransactionTypeWithdrawal, "40", "Food", time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)),
		tx("2", models.TransactionTypeDeposit, "100", "Salary", time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)),
		tx("3", models.TransactionTypeDeposit, "250.25", "Salary", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		tx("4", models.TransactionTypeWithdrawal, "300", "Rent", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)),
	}

	s := Monthly(txs)

	wantLabels := []string{"2023-12", "2024-01", "2024-02"}
	if fmt.Sprint(s.Labels) != fmt.Sprint(wantLabels) {
		t.Fatalf("labels = %v, want %v", s.Labels, wantLabels)
	}
	if len(s.Income) != len(s.Labels) || len(s.Expenses) != len(s.Labels) || len(s.Balance) != len(s.Labels) {
		t.Fatal("monthly arrays must be parallel")
	}
	for i := range s.Labels {
		if !s.Balance[i].Equal(s.Income[i].Sub(s.Expenses[i])) {
			t.Errorf("balance[%d] = %s, want income - expenses = %s", i, s.Balance[i], s.Income[i].Sub(s.Expenses[i]))
		}
	}
	assertDec(t, "jan balance", s.Balance[1], "-300")
	assertDec(t, "feb balance", s.Balance[2], "210.25")
}

func TestMonthlySeriesUsesUTC(t *testing.T) {
	tz := time.FixedZone("UTC+5", 5*3600)
	// 2024-03-01 02:00 at +05:00 is still February in UTC.
	txs := []models.Transaction{
		tx("1", models.TransactionTypeDeposit, "10", "", time.Date(2024, 3, 1, 2, 0, 0, 0, tz)),
	}
	s := Monthly(txs)
	if len(s.Labels) != 1 || s.Labels[0] != "2024-02" {
		t.Errorf("expected 2024-02, got %v", s.Labels)
	}
}

func TestWeeklyAlwaysEightBuckets(t *testing.T) {
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

	t.Run("no_transactions", func(t *testing.T) {
		s := Weekly(nil, now)
		if len(s.Labels) != WeeksInWindow || len(s.Income) != WeeksInWindow || len(s.Expenses) != WeeksInWindow {
			t.Fatalf("expected %d buckets, got %d labels", WeeksInWindow, len(s.Labels))
		}
		for i := range s.Labels {
			if !s.Income[i].IsZero() || !s.Expenses[i].IsZero() {
				t.Errorf("bucket %s should be zero", s.Labels[i])
			}
		}
		if s.Labels[WeeksInWindow-1] != WeekKey(now) {
			t.Errorf("last bucket = %s, want current week %s", s.Labels[WeeksInWindow-1], WeekKey(now))
		}
	})

	t.Run("many_transactions", func(t *testing.T) {
		var txs []models.Transaction
		for i := 0; i < 200; i++ {
			date := now.Add(-time.Duration(i) * 13 * time.Hour)
			txs = append(txs, tx(fmt.Sprint(i), models.TransactionTypeWithdrawal, "1", "Food", date))
		}
		s := Weekly(txs, now)
		if len(s.Labels) != WeeksInWindow {
			t.Fatalf("expected %d buckets, got %d", WeeksInWindow, len(s.Labels))
		}
	})
}

func TestWeeklyAcrossYearBoundary(t *testing.T) {
	// Friday 2025-01-03 falls in ISO week 2025-W01, which began on 2024-12-30.
	now := time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("1", models.TransactionTypeDeposit, "100", "Salary", time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC)),
		tx("2", models.TransactionTypeWithdrawal, "30", "Food", time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)),
		tx("3", models.TransactionTypeWithdrawal, "20", "Food", time.Date(2024, 12, 24, 10, 0, 0, 0, time.UTC)),
	}

	s := Weekly(txs, now)

	want := []string{"2024-W46", "2024-W47", "2024-W48", "2024-W49", "2024-W50", "2024-W51", "2024-W52", "2025-W01"}
	if fmt.Sprint(s.Labels) != fmt.Sprint(want) {
		t.Fatalf("labels = %v, want %v", s.Labels, want)
	}
	assertDec(t, "W01 income", s.Income[7], "100")
	assertDec(t, "W01 expenses", s.Expenses[7], "30")
	assertDec(t, "W52 expenses", s.Expenses[6], "20")
}

func TestWeeklyDropsOutsideWindow(t *testing.T) {
	now := time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		// Inside the 8 week cutoff but in the partial ninth week.
		tx("1", models.TransactionTypeDeposit, "100", "Salary", now.Add(-8*week+time.Hour)),
		// Older than the cutoff.
		tx("2", models.TransactionTypeDeposit, "100", "Salary", now.Add(-10*week)),
		// Future-dated.
		tx("3", models.TransactionTypeDeposit, "100", "Salary", now.Add(week)),
	}

	s := Weekly(txs, now)
	for i := range s.Labels {
		if !s.Income[i].IsZero() {
			t.Errorf("bucket %s income = %s, want 0", s.Labels[i], s.Income[i])
		}
	}
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2024-W01"},
		{time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), "2025-W01"},
		{time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC), "2020-W53"},
		{time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), "2024-W24"},
	}
	for _, tt := range tests {
		if got := WeekKey(tt.date); got != tt.want {
			t.Errorf("WeekKey(%s) = %s, want %s", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestByCategorySumsToExpenses(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("1", models.TransactionTypeWithdrawal, "12.34", "Food", base),
		tx("2", models.TransactionTypeWithdrawal, "7.66", "Food", base.AddDate(0, 0, 1)),
		tx("3", models.TransactionTypeWithdrawal, "900", "Rent", base.AddDate(0, 1, 0)),
		tx("4", models.TransactionTypeWithdrawal, "5", "", base.AddDate(0, 0, 2)),
		tx("5", models.TransactionTypeDeposit, "3000", "Salary", base),
	}

	cats := ByCategory(txs)

	sum := decimal.Zero
	for _, v := range cats {
		sum = sum.Add(v)
	}
	assertDec(t, "category sum", sum, ComputeTotals(txs).Expenses.String())
	assertDec(t, "food", cats["Food"], "20")
	assertDec(t, "other", cats[models.DefaultCategory], "5")
	if len(cats) != 3 {
		t.Errorf("expected 3 categories, got %v", cats)
	}
}

func TestRecent(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var txs []models.Transaction
	// Inserted out of chronological order.
	for _, day := range []int{3, 1, 7, 5, 2, 6, 4} {
		txs = append(txs, tx(fmt.Sprintf("d%d", day), models.TransactionTypeDeposit, "1", "", base.AddDate(0, 0, day)))
	}

	got := Recent(txs, RecentLimit)

	want := []string{"d7", "d6", "d5", "d4", "d3"}
	if len(got) != len(want) {
		t.Fatalf("expected %d transactions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("recent[%d] = %s, want %s", i, got[i].ID, want[i])
		}
	}
	if txs[0].ID != "d3" {
		t.Error("input slice must not be reordered")
	}

	t.Run("fewer_than_limit", func(t *testing.T) {
		if got := Recent(txs[:2], RecentLimit); len(got) != 2 || got[0].ID != "d3" {
			t.Errorf("unexpected result %+v", got)
		}
	})

	t.Run("same_date_tie_break", func(t *testing.T) {
		same := []models.Transaction{
			tx("b", models.TransactionTypeDeposit, "1", "", base),
			tx("a", models.TransactionTypeDeposit, "1", "", base),
		}
		if got := Recent(same, 1); len(got) != 1 || got[0].ID != "b" {
			t.Errorf("expected b, got %+v", got)
		}
	})
}

func TestBuildEmpty(t *testing.T) {
	d := Build(nil, time.Now())
	if !d.Summary.Income.IsZero() || d.Summary.Budget != 0 {
		t.Errorf("expected zero totals, got %+v", d.Summary)
	}
	if len(d.MonthlyData.Labels) != 0 {
		t.Errorf("expected no monthly buckets, got %v", d.MonthlyData.Labels)
	}
	if len(d.WeeklyData.Labels) != WeeksInWindow {
		t.Errorf("expected %d weekly buckets, got %d", WeeksInWindow, len(d.WeeklyData.Labels))
	}
	if d.RecentTransactions == nil || d.CategoryData == nil {
		t.Error("empty collections should serialize as [] and {}")
	}
}
