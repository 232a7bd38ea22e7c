package testutil_test

import (
	"testing"
	"time"

	"moneyhub/internal/errors"
	"moneyhub/internal/models"
	"moneyhub/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "goals", "transactions", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestUser(t, first)

	var count int64
	if err := second.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty second database, found %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have a generated ID")
	}

	goal := testutil.CreateTestGoal(t, db, user.ID, "1000", "200")
	testutil.AssertDecimal(t, "saved", goal.SavedAmount, "200")
	if goal.Progress != 20 {
		t.Errorf("expected progress 20, got %v", goal.Progress)
	}

	tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeWithdrawal, "85.50", "Food", time.Now())
	testutil.AssertDecimal(t, "amount", tx.Amount, "85.5")

	var reloaded models.Transaction
	if err := db.First(&reloaded, "id = ?", tx.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	testutil.AssertDecimal(t, "reloaded amount", reloaded.Amount, "85.5")
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrGoalNotFound, "custom message")
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
