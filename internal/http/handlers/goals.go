package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GORLEABHILASH/booklovers/internal/domain/reading"
	"github.com/GORLEABHILASH/booklovers/internal/http/response"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
	"github.com/GORLEABHILASH/booklovers/internal/services"
)

type GoalHandler struct {
	log   *logger.Logger
	goals services.ReadingGoalService
}

func NewGoalHandler(log *logger.Logger, goals services.ReadingGoalService) *GoalHandler {
	return &GoalHandler{log: log.With("handler", "GoalHandler"), goals: goals}
}

// GET /api/goals
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	goals, _ := h.goals.ListGoals(c.Request.Context(), userID)
	response.RespondOK(c, gin.H{"goals": goals})
}

// POST /api/goals
// body: { "period": "monthly", "target": 4, "startDate"?: RFC3339, "endDate"?: RFC3339 }
func (h *GoalHandler) SetGoal(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	var req struct {
		Period    string     `json:"period"`
		Target    any        `json:"target"`
		StartDate *time.Time `json:"startDate"`
		EndDate   *time.Time `json:"endDate"`
	}
	if !bindJSON(c, &req) {
		return
	}
	target, ok := requiredInt(c, req.Target, "target")
	if !ok {
		return
	}
	res, err := h.goals.SetGoal(c.Request.Context(), userID, reading.GoalInput{
		Period:    req.Period,
		Target:    target,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	status := http.StatusCreated
	if res.Updated {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"goal": res})
}

// GET /api/goals/active?period=
func (h *GoalHandler) ActiveGoal(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	goal, err := h.goals.ActiveGoal(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"goal": goal})
}

// GET /api/goals/completed
func (h *GoalHandler) CompletedGoals(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	goals, _ := h.goals.CompletedGoals(c.Request.Context(), userID)
	response.RespondOK(c, gin.H{"goals": goals})
}

// PUT /api/goals/:goalId/progress
// body: { "progress": 3 }
func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	goalID := pathID(c, "goalId", "invalid_goal_id")
	if goalID == "" {
		return
	}
	var req struct {
		Progress any `json:"progress"`
	}
	if !bindJSON(c, &req) {
		return
	}
	progress, ok := requiredInt(c, req.Progress, "progress")
	if !ok {
		return
	}
	goal, err := h.goals.UpdateGoalProgress(c.Request.Context(), userID, goalID, progress)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"goal": goal})
}

// POST /api/goals/:goalId/cancel
func (h *GoalHandler) CancelGoal(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	goalID := pathID(c, "goalId", "invalid_goal_id")
	if goalID == "" {
		return
	}
	goal, err := h.goals.CancelGoal(c.Request.Context(), userID, goalID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"goal": goal})
}

// POST /api/goals/sync?period=
func (h *GoalHandler) SyncProgress(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	goal, err := h.goals.SyncGoalProgress(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"goal": goal})
}

// GET /api/goals/books-read?start=RFC3339&end=RFC3339
func (h *GoalHandler) BooksRead(c *gin.Context) {
	userID := requestUser(c)
	if userID == "" {
		return
	}
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(c.Query("start")))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_start", err)
		return
	}
	end, err := time.Parse(time.RFC3339, strings.TrimSpace(c.Query("end")))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_end", err)
		return
	}
	n, err := h.goals.BooksReadInPeriod(c.Request.Context(), userID, start, end)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"booksRead": n})
}
