package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moneyhub/internal/errors"
	"moneyhub/internal/models"
	"moneyhub/internal/summary"
)

// dashboardService loads a user's ledger and hands it to the summary package.
type dashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDashboardService creates a new DashboardServicer. now may be nil, in
// which case the wall clock is used.
func NewDashboardService(db *gorm.DB, now func() time.Time) DashboardServicer {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{db: db, now: now}
}

func (s *dashboardService) loadLedger(userID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txs, nil
}

// GetDashboard recomputes every dashboard view from the current ledger.
func (s *dashboardService) GetDashboard(userID string) (*summary.Dashboard, error) {
	txs, err := s.loadLedger(userID)
	if err != nil {
		return nil, err
	}
	d := summary.Build(txs, s.now().UTC())
	return &d, nil
}

// GetTotals returns deposit and withdrawal sums and their difference.
func (s *dashboardService) GetTotals(userID string) (*Totals, error) {
	txs, err := s.loadLedger(userID)
	if err != nil {
		return nil, err
	}
	t := summary.ComputeTotals(txs)
	return &Totals{
		TotalDeposits:    t.Income,
		TotalWithdrawals: t.Expenses,
		Balance:          t.CashFlow,
	}, nil
}

// GetCategoryBreakdown returns withdrawal sums per category.
func (s *dashboardService) GetCategoryBreakdown(userID string) (map[string]decimal.Decimal, error) {
	txs, err := s.loadLedger(userID)
	if err != nil {
		return nil, err
	}
	return summary.ByCategory(txs), nil
}
