// Package seed populates a fresh database with an admin account and a small
// demo ledger.
package seed

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "moneyhub/internal/errors"
	"moneyhub/internal/logger"
	"moneyhub/internal/models"
	"moneyhub/internal/services"
)

// Options names the admin account to create.
type Options struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

type demoTransaction struct {
	description string
	txType      models.TransactionType
	amount      string
	category    string
	date        time.Time
}

type demoGoal struct {
	name   string
	saved  string
	target string
}

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

var demoTransactions = []demoTransaction{
	{"Salary", models.TransactionTypeDeposit, "5000", "Income", day(time.February, 24)},
	{"Rent", models.TransactionTypeWithdrawal, "1200", "Bills", day(time.February, 20)},
	{"Groceries", models.TransactionTypeWithdrawal, "85", "Food", day(time.February, 18)},
	{"Freelance Work", models.TransactionTypeDeposit, "800", "Income", day(time.February, 15)},
	{"Utilities", models.TransactionTypeWithdrawal, "150", "Bills", day(time.February, 10)},
	{"Dinner Out", models.TransactionTypeWithdrawal, "45", "Entertainment", day(time.February, 5)},
}

var demoGoals = []demoGoal{
	{"New Laptop", "400", "1500"},
	{"Emergency Fund", "1200", "5000"},
	{"Vacation", "300", "2000"},
}

// Run creates the admin user with its demo goals and transactions. It
// reports false without touching anything when the admin already exists.
func Run(users services.UserServicer, goals services.GoalServicer, transactions services.TransactionServicer, opts Options) (bool, error) {
	log := logger.Get()

	admin, err := users.CreateUser(opts.AdminUsername, opts.AdminEmail, opts.AdminPassword)
	if errors.Is(err, apperrors.ErrDuplicateUser) {
		log.Infow("Admin user already present, skipping seed", "username", opts.AdminUsername)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create admin user: %w", err)
	}

	for _, g := range demoGoals {
		if _, err := goals.CreateGoal(admin.ID, g.name, decimal.RequireFromString(g.target), decimal.RequireFromString(g.saved), nil); err != nil {
			return false, fmt.Errorf("create goal %q: %w", g.name, err)
		}
	}

	for _, t := range demoTransactions {
		_, err := transactions.CreateTransaction(admin.ID, nil, t.txType, decimal.RequireFromString(t.amount), t.category, t.description, t.date)
		if err != nil {
			return false, fmt.Errorf("create transaction %q: %w", t.description, err)
		}
	}

	log.Infow("Seeded demo data",
		"username", admin.Username,
		"goals", len(demoGoals),
		"transactions", len(demoTransactions),
	)
	return true, nil
}
