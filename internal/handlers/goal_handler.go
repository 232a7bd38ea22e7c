package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "moneyhub/internal/errors"
	"moneyhub/internal/pagination"
	"moneyhub/internal/services"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService        services.GoalServicer
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, transactionService services.TransactionServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{
		goalService:        goalService,
		transactionService: transactionService,
		auditService:       auditService,
	}
}

// CreateGoalRequest represents the request payload for creating a goal
type CreateGoalRequest struct {
	Name         string           `json:"name" binding:"required,notblank,max=120"`
	TargetAmount *decimal.Decimal `json:"target_amount" binding:"required" swaggertype:"number"`
	SavedAmount  *decimal.Decimal `json:"saved_amount" swaggertype:"number"`
	Deadline     *string          `json:"deadline"`
}

// UpdateGoalRequest represents the request payload for updating a goal.
// An empty deadline string clears the deadline.
type UpdateGoalRequest struct {
	Name         *string          `json:"name" binding:"omitempty,notblank,max=120"`
	TargetAmount *decimal.Decimal `json:"target_amount" swaggertype:"number"`
	SavedAmount  *decimal.Decimal `json:"saved_amount" swaggertype:"number"`
	Deadline     *string          `json:"deadline"`
}

func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(*raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid deadline format, use RFC3339 or YYYY-MM-DD")
	}
	return &t, nil
}

// CreateGoal handles the creation of a savings goal
// @Summary     Create a goal
// @Description Create a savings goal with a target amount and optional starting balance and deadline
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} map[string]models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	saved := decimal.Zero
	if req.SavedAmount != nil {
		saved = *req.SavedAmount
	}

	goal, err := h.goalService.CreateGoal(userID, req.Name, *req.TargetAmount, saved, deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionCreateGoal, "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"name": goal.Name, "target_amount": goal.TargetAmount.String()})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetUserGoals lists the user's goals
// @Summary     List goals
// @Description Get all savings goals of the authenticated user with their progress
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.Goal "Goals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetUserGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.GetUserGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// GetGoalByID returns a single goal
// @Summary     Get goal by ID
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} map[string]models.Goal "Goal details"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoalByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal applies a partial update to a goal
// @Summary     Update goal
// @Description Update any of name, target amount, saved amount and deadline. An empty deadline clears it.
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Goal ID"
// @Param       request body UpdateGoalRequest true "Fields to update"
// @Success     200 {object} map[string]models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.GoalUpdateFields{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		SavedAmount:  req.SavedAmount,
	}
	if req.Deadline != nil {
		deadline, err := parseDeadline(req.Deadline)
		if err != nil {
			respondWithError(c, err)
			return
		}
		fields.Deadline = deadline
		fields.ClearDeadline = deadline == nil
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.TargetAmount != nil {
		changes["target_amount"] = req.TargetAmount.String()
	}
	if req.SavedAmount != nil {
		changes["saved_amount"] = req.SavedAmount.String()
	}
	if req.Deadline != nil {
		changes["deadline"] = *req.Deadline
	}
	h.auditService.Log(userID, services.AuditActionUpdateGoal, "goal", goalID, c.ClientIP(), changes)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal deletes a goal
// @Summary     Delete goal
// @Description Delete a goal. Transactions linked to it are kept.
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionDeleteGoal, "goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Goal deleted successfully"})
}

// GetGoalTransactions lists the transactions linked to a goal
// @Summary     Get goal transactions
// @Description Get a paginated list of transactions linked to a goal, newest first
// @Tags        goals,transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Goal ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/transactions [get]
func (h *GoalHandler) GetGoalTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	// Verify the goal belongs to the user
	if _, err := h.goalService.GetGoalByID(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetUserTransactions(userID, page, services.TransactionFilter{GoalID: &goalID})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
