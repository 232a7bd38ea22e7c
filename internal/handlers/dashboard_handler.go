package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"moneyhub/internal/services"
)

// DashboardHandler serves the aggregated views of a user's ledger.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard returns every chart series in one payload
// @Summary     Get dashboard
// @Description Totals, budget indicator, monthly and 8-week series, expense categories and the 5 most recent transactions
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} summary.Dashboard "Dashboard data"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetSummary returns deposit and withdrawal totals
// @Summary     Get summary
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Totals "Totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.dashboardService.GetTotals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

// GetCategorySummary returns withdrawal totals per category
// @Summary     Get category summary
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]number "Withdrawals per category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary/categories [get]
func (h *DashboardHandler) GetCategorySummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.dashboardService.GetCategoryBreakdown(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthCheck reports that the API is up
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse "API is running"
// @Router      /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}
