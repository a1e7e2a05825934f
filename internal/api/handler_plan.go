package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mandalart/internal/grid"
	"mandalart/internal/service"
	"mandalart/internal/util"
)

type PlanHandler struct {
	planner *service.Planner
	locale  string
	logger  *zap.Logger
}

func NewPlanHandler(planner *service.Planner, locale string, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{planner: planner, locale: locale, logger: logger}
}

// Start handles POST /plan/start: submits the goal, returns the
// interview questions.
func (h *PlanHandler) Start(c *gin.Context) {
	var req struct {
		Goal string `json:"goal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	questions, err := h.planner.StartInterview(c.Request.Context(), sessionKey(c), req.Goal)
	if err != nil {
		writeError(c, h.locale, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// Generate handles POST /plan/generate: answers keyed by question id.
func (h *PlanHandler) Generate(c *gin.Context) {
	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.planner.Generate(c.Request.Context(), sessionKey(c), currentUserID(c), req.Answers)
	if err != nil {
		writeError(c, h.locale, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Reset handles POST /plan/reset.
func (h *PlanHandler) Reset(c *gin.Context) {
	h.planner.Reset(sessionKey(c))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Snapshot handles GET /plan.
func (h *PlanHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.planner.Snapshot(sessionKey(c)))
}

// Toggle handles POST /plan/toggle: flips one checklist item.
func (h *PlanHandler) Toggle(c *gin.Context) {
	var req struct {
		SubGoal int    `json:"subGoal"`
		Task    int    `json:"task"`
		ItemID  string `json:"itemId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.planner.Toggle(c.Request.Context(), sessionKey(c), currentUserID(c), req.SubGoal, req.Task, req.ItemID)
	if err != nil {
		writeError(c, h.locale, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Layout handles GET /plan/layout: the 9-zone grid of the current
// document, for rendering.
func (h *PlanHandler) Layout(c *gin.Context) {
	doc, err := h.planner.Document(sessionKey(c))
	if err != nil {
		writeError(c, h.locale, err)
		return
	}
	c.JSON(http.StatusOK, grid.Layout(doc))
}

// Export handles GET /plan/export: the current grid as a PNG download.
// A failed rasterization is reported but leaves state untouched.
func (h *PlanHandler) Export(c *gin.Context) {
	doc, err := h.planner.Document(sessionKey(c))
	if err != nil {
		writeError(c, h.locale, err)
		return
	}

	img, err := grid.RenderPNG(doc)
	if err != nil {
		h.logger.Warn("grid export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed, please try again"})
		return
	}

	filename := util.Slugify(doc.MainGoal) + ".png"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "image/png", img)
}
