package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"moneyhub/internal/models"
	"moneyhub/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		deadline := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

		goal, err := svc.CreateGoal(user.ID, "Vacation", testutil.Amount("2000"), testutil.Amount("500"), &deadline)
		testutil.AssertNoError(t, err)

		if goal.ID == "" {
			t.Fatal("expected generated goal ID")
		}
		testutil.AssertDecimal(t, "target", goal.TargetAmount, "2000")
		if goal.Progress != 25 {
			t.Errorf("expected progress 25, got %v", goal.Progress)
		}
	})

	t.Run("saved_defaults_to_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		goal, err := svc.CreateGoal(user.ID, "Car", testutil.Amount("10000"), decimal.Zero, nil)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "saved", goal.SavedAmount, "0")
	})

	t.Run("zero_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Nothing", decimal.Zero, decimal.Zero, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Debt", testutil.Amount("-5"), decimal.Zero, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_saved", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Fund", testutil.Amount("100"), testutil.Amount("-1"), nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("target_too_precise", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Fund", testutil.Amount("100.125"), decimal.Zero, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("saved_out_of_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Fund", testutil.Amount("100"), testutil.Amount("1000000000000000000"), nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "   ", testutil.Amount("100"), decimal.Zero, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetGoals(t *testing.T) {
	t.Run("lists_only_own_goals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestGoal(t, db, user.ID, "100", "0")
		testutil.CreateTestGoal(t, db, user.ID, "200", "50")
		testutil.CreateTestGoal(t, db, other.ID, "300", "0")

		goals, err := svc.GetUserGoals(user.ID)
		testutil.AssertNoError(t, err)
		if len(goals) != 2 {
			t.Fatalf("expected 2 goals, got %d", len(goals))
		}
		if goals[1].Progress != 25 {
			t.Errorf("expected progress filled on list, got %v", goals[1].Progress)
		}
	})

	t.Run("empty_list_not_nil", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		goals, err := svc.GetUserGoals(user.ID)
		testutil.AssertNoError(t, err)
		if goals == nil || len(goals) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", goals)
		}
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, "100", "0")

		_, err := svc.GetGoalByID(other.ID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestUpdateGoal(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, "1000", "200")

		name := "Emergency fund"
		saved := testutil.Amount("750")
		updated, err := svc.UpdateGoal(user.ID, goal.ID, GoalUpdateFields{Name: &name, SavedAmount: &saved})
		testutil.AssertNoError(t, err)

		if updated.Name != name {
			t.Errorf("expected name %q, got %q", name, updated.Name)
		}
		testutil.AssertDecimal(t, "target unchanged", updated.TargetAmount, "1000")
		if updated.Progress != 75 {
			t.Errorf("expected progress 75, got %v", updated.Progress)
		}

		reloaded, err := svc.GetGoalByID(user.ID, goal.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "persisted saved", reloaded.SavedAmount, "750")
	})

	t.Run("set_and_clear_deadline", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, "1000", "0")

		deadline := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		updated, err := svc.UpdateGoal(user.ID, goal.ID, GoalUpdateFields{Deadline: &deadline})
		testutil.AssertNoError(t, err)
		if updated.Deadline == nil {
			t.Fatal("expected deadline set")
		}

		updated, err = svc.UpdateGoal(user.ID, goal.ID, GoalUpdateFields{ClearDeadline: true})
		testutil.AssertNoError(t, err)
		if updated.Deadline != nil {
			t.Error("expected deadline cleared")
		}
	})

	t.Run("invalid_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, "1000", "0")

		zero := decimal.Zero
		_, err := svc.UpdateGoal(user.ID, goal.ID, GoalUpdateFields{TargetAmount: &zero})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_amount_precision", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, "1000", "0")

		target := testutil.Amount("2000.001")
		_, err := svc.UpdateGoal(user.ID, goal.ID, GoalUpdateFields{TargetAmount: &target})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		saved := testutil.Amount("0.333")
		_, err = svc.UpdateGoal(user.ID, goal.ID, GoalUpdateFields{SavedAmount: &saved})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		unchanged, err := svc.GetGoalByID(user.ID, goal.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "target", unchanged.TargetAmount, "1000")
	})

	t.Run("not_owned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, "1000", "0")

		name := "Hijacked"
		_, err := svc.UpdateGoal(other.ID, goal.ID, GoalUpdateFields{Name: &name})
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestDeleteGoal(t *testing.T) {
	t.Run("linked_transactions_keep_goal_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		goalSvc := NewGoalService(db)
		txSvc := NewTransactionService(db, goalSvc)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, "1000", "0")

		tx, err := txSvc.CreateTransaction(user.ID, &goal.ID, models.TransactionTypeDeposit, testutil.Amount("100"), "Savings", "", time.Now())
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, goalSvc.DeleteGoal(user.ID, goal.ID))

		_, err = goalSvc.GetGoalByID(user.ID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")

		kept, err := txSvc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertNoError(t, err)
		if kept.GoalID == nil || *kept.GoalID != goal.ID {
			t.Errorf("expected transaction to keep goal_id %s, got %v", goal.ID, kept.GoalID)
		}
	})

	t.Run("not_owned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, "1000", "0")

		err := svc.DeleteGoal(other.ID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestApplyTransactionEffect(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)
	goal := testutil.CreateTestGoal(t, db, user.ID, "1000", "200")

	apply := func(typ models.TransactionType, amount string) error {
		return db.Transaction(func(tx *gorm.DB) error {
			return svc.ApplyTransactionEffect(tx, goal, &models.Transaction{Type: typ, Amount: testutil.Amount(amount)})
		})
	}

	testutil.AssertNoError(t, apply(models.TransactionTypeDeposit, "300"))
	testutil.AssertDecimal(t, "after deposit", goal.SavedAmount, "500")
	if goal.Progress != 50 {
		t.Errorf("expected progress 50, got %v", goal.Progress)
	}

	testutil.AssertNoError(t, apply(models.TransactionTypeWithdrawal, "650"))
	testutil.AssertDecimal(t, "below zero is not clamped", goal.SavedAmount, "-150")

	err := apply("transfer", "1")
	testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
}
