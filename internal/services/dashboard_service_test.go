package services

import (
	"testing"
	"time"

	"moneyhub/internal/models"
	"moneyhub/internal/summary"
	"moneyhub/internal/testutil"
)

func TestGetDashboard(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("single_month_scenario", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, clock)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeDeposit, "5000", "Income", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeWithdrawal, "1200", "Bills", time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeWithdrawal, "85", "Food", time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC))
		testutil.CreateTestTransaction(t, db, other.ID, models.TransactionTypeDeposit, "999", "Income", time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC))

		d, err := svc.GetDashboard(user.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, "income", d.Summary.Income, "5000")
		testutil.AssertDecimal(t, "expenses", d.Summary.Expenses, "1285")
		testutil.AssertDecimal(t, "cash_flow", d.Summary.CashFlow, "3715")

		if len(d.MonthlyData.Labels) != 1 || d.MonthlyData.Labels[0] != "2024-03" {
			t.Fatalf("expected one monthly bucket, got %v", d.MonthlyData.Labels)
		}
		testutil.AssertDecimal(t, "monthly balance", d.MonthlyData.Balance[0], "3715")

		if len(d.WeeklyData.Labels) != summary.WeeksInWindow {
			t.Errorf("expected %d weeks, got %d", summary.WeeksInWindow, len(d.WeeklyData.Labels))
		}
		// 2024-03-18 is in the current ISO week.
		testutil.AssertDecimal(t, "current week expenses", d.WeeklyData.Expenses[summary.WeeksInWindow-1], "85")

		if len(d.RecentTransactions) != 3 || d.RecentTransactions[0].Category != "Food" {
			t.Errorf("expected newest first, got %+v", d.RecentTransactions)
		}
	})

	t.Run("deleted_transactions_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, clock)
		txSvc := NewTransactionService(db, NewGoalService(db))
		user := testutil.CreateTestUser(t, db)

		kept := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeDeposit, "100", "Salary", now.Add(-time.Hour))
		gone := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeDeposit, "50", "Gift", now.Add(-time.Hour))
		testutil.AssertNoError(t, txSvc.DeleteTransaction(user.ID, gone.ID))

		d, err := svc.GetDashboard(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "income", d.Summary.Income, "100")
		if len(d.RecentTransactions) != 1 || d.RecentTransactions[0].ID != kept.ID {
			t.Errorf("expected only the kept transaction, got %+v", d.RecentTransactions)
		}
	})

	t.Run("empty_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, clock)
		user := testutil.CreateTestUser(t, db)

		d, err := svc.GetDashboard(user.ID)
		testutil.AssertNoError(t, err)
		if d.Summary.Budget != 0 || len(d.WeeklyData.Labels) != summary.WeeksInWindow {
			t.Errorf("unexpected empty dashboard %+v", d)
		}
	})
}

func TestGetTotalsAndCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDashboardService(db, nil)
	user := testutil.CreateTestUser(t, db)
	at := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeDeposit, "1000", "Salary", at)
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeWithdrawal, "250", "Rent", at)
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeWithdrawal, "50", "Food", at)
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeWithdrawal, "25", "Food", at)

	totals, err := svc.GetTotals(user.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimal(t, "deposits", totals.TotalDeposits, "1000")
	testutil.AssertDecimal(t, "withdrawals", totals.TotalWithdrawals, "325")
	testutil.AssertDecimal(t, "balance", totals.Balance, "675")

	cats, err := svc.GetCategoryBreakdown(user.ID)
	testutil.AssertNoError(t, err)
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %v", cats)
	}
	testutil.AssertDecimal(t, "food", cats["Food"], "75")
	testutil.AssertDecimal(t, "rent", cats["Rent"], "250")
}
