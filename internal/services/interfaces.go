package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"moneyhub/internal/models"
	"moneyhub/internal/pagination"
	"moneyhub/internal/summary"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password string) (*models.User, error)
	Authenticate(identifier, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	DeleteUser(id string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	Category *string
	GoalID   *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, goalID *string, transactionType models.TransactionType, amount decimal.Decimal, category, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// GoalUpdateFields carries a partial goal update. Nil fields are left unchanged.
type GoalUpdateFields struct {
	Name          *string
	TargetAmount  *decimal.Decimal
	SavedAmount   *decimal.Decimal
	Deadline      *time.Time
	ClearDeadline bool
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	CreateGoal(userID, name string, targetAmount, savedAmount decimal.Decimal, deadline *time.Time) (*models.Goal, error)
	GetUserGoals(userID string) ([]models.Goal, error)
	GetGoalByID(userID, goalID string) (*models.Goal, error)
	UpdateGoal(userID, goalID string, fields GoalUpdateFields) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
	ApplyTransactionEffect(tx *gorm.DB, goal *models.Goal, transaction *models.Transaction) error
}

// Totals is the compact ledger summary served by /api/summary.
type Totals struct {
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	Balance          decimal.Decimal `json:"balance"`
}

// DashboardServicer defines the contract for ledger aggregation.
type DashboardServicer interface {
	GetDashboard(userID string) (*summary.Dashboard, error)
	GetTotals(userID string) (*Totals, error)
	GetCategoryBreakdown(userID string) (map[string]decimal.Decimal, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
