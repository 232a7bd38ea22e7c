package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneyhub/internal/errors"
	"moneyhub/internal/models"
	"moneyhub/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db          *gorm.DB
	goalService GoalServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, goalService GoalServicer) TransactionServicer {
	return &transactionService{
		db:          db,
		goalService: goalService,
	}
}

// CreateTransaction records a ledger entry. When goalID is set the goal's
// saved amount moves with it, and both writes commit or roll back together.
func (s *transactionService) CreateTransaction(
	userID string,
	goalID *string,
	transactionType models.TransactionType,
	amount decimal.Decimal,
	category string,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	// Validate input
	if !transactionType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if err := checkAmountFits("amount", amount); err != nil {
		return nil, err
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = models.DefaultCategory
	}

	// Default date to now if not provided
	if date.IsZero() {
		date = time.Now()
	}

	if goalID != nil && *goalID == "" {
		goalID = nil
	}

	transaction := &models.Transaction{
		UserID:      userID,
		GoalID:      goalID,
		Type:        transactionType,
		Amount:      amount,
		Category:    category,
		Description: strings.TrimSpace(description),
		Date:        date.UTC(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var goal *models.Goal
		if goalID != nil {
			var err error
			if goal, err = findGoal(tx, userID, *goalID); err != nil {
				return err
			}
		}

		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if goal != nil {
			return s.goalService.ApplyTransactionEffect(tx, goal, transaction)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of a user's
// transactions, newest first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", f.FromDate.UTC())
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", f.ToDate.UTC())
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.GoalID != nil {
		q = q.Where("goal_id = ?", *f.GoalID)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction soft-deletes a transaction. A linked goal keeps the
// balance change the transaction made.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	res := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
