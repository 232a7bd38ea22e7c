package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneyhub/internal/errors"
	"moneyhub/internal/models"
)

// goalService handles goal-related business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

func validateGoalAmounts(target, saved decimal.Decimal) error {
	if !target.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if saved.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "saved amount cannot be negative")
	}
	if err := checkAmountFits("target amount", target); err != nil {
		return err
	}
	return checkAmountFits("saved amount", saved)
}

// CreateGoal creates a new savings goal for a user.
func (s *goalService) CreateGoal(userID, name string, targetAmount, savedAmount decimal.Decimal, deadline *time.Time) (*models.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if err := validateGoalAmounts(targetAmount, savedAmount); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		UserID:       userID,
		Name:         name,
		TargetAmount: targetAmount,
		SavedAmount:  savedAmount,
		Deadline:     deadline,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetUserGoals returns all goals of a user, oldest first.
func (s *goalService) GetUserGoals(userID string) ([]models.Goal, error) {
	goals := []models.Goal{}
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// findGoal loads a goal owned by userID using the given connection, so it can
// run inside a caller's transaction.
func findGoal(db *gorm.DB, userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// GetGoalByID retrieves a goal by ID for a specific user
func (s *goalService) GetGoalByID(userID, goalID string) (*models.Goal, error) {
	return findGoal(s.db, userID, goalID)
}

// UpdateGoal applies a partial update to a goal.
func (s *goalService) UpdateGoal(userID, goalID string, fields GoalUpdateFields) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name cannot be empty")
		}
		updates["name"] = name
		goal.Name = name
	}
	if fields.TargetAmount != nil {
		if !fields.TargetAmount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
		}
		if err := checkAmountFits("target amount", *fields.TargetAmount); err != nil {
			return nil, err
		}
		updates["target_amount"] = *fields.TargetAmount
		goal.TargetAmount = *fields.TargetAmount
	}
	if fields.SavedAmount != nil {
		if fields.SavedAmount.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "saved amount cannot be negative")
		}
		if err := checkAmountFits("saved amount", *fields.SavedAmount); err != nil {
			return nil, err
		}
		updates["saved_amount"] = *fields.SavedAmount
		goal.SavedAmount = *fields.SavedAmount
	}
	if fields.ClearDeadline {
		updates["deadline"] = nil
		goal.Deadline = nil
	} else if fields.Deadline != nil {
		updates["deadline"] = *fields.Deadline
		goal.Deadline = fields.Deadline
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	goal.Progress = goal.ProgressPercent()
	return goal, nil
}

// DeleteGoal soft-deletes a goal. Linked transactions keep their goal_id.
func (s *goalService) DeleteGoal(userID, goalID string) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ApplyTransactionEffect moves the goal's saved amount by the transaction's
// signed amount: deposits add, withdrawals subtract. It must run on the same
// gorm transaction that inserts the ledger entry.
func (s *goalService) ApplyTransactionEffect(tx *gorm.DB, goal *models.Goal, transaction *models.Transaction) error {
	if !transaction.Type.Valid() {
		return apperrors.ErrInvalidTransactionType
	}
	if err := checkAmountFits("goal saved amount", goal.SavedAmount.Add(transaction.SignedAmount())); err != nil {
		return err
	}

	res := tx.Model(&models.Goal{}).
		Where("id = ? AND user_id = ?", goal.ID, goal.UserID).
		Update("saved_amount", gorm.Expr("saved_amount + ?", transaction.SignedAmount()))
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}

	// Refresh so the caller sees the stored balance.
	if err := tx.Where("id = ?", goal.ID).First(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
