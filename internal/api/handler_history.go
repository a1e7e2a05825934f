package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mandalart/internal/history"
	"mandalart/internal/service"
)

type HistoryHandler struct {
	store   history.Store
	planner *service.Planner
	locale  string
}

func NewHistoryHandler(store history.Store, planner *service.Planner, locale string) *HistoryHandler {
	return &HistoryHandler{store: store, planner: planner, locale: locale}
}

// List handles GET /history: the user's saved grids, newest first.
func (h *HistoryHandler) List(c *gin.Context) {
	items, err := h.store.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, h.locale, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": items})
}

// Delete handles DELETE /history/:id. Idempotent.
func (h *HistoryHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		writeError(c, h.locale, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Activate handles POST /history/:id/activate: loads a saved grid into
// the session as the current document.
func (h *HistoryHandler) Activate(c *gin.Context) {
	data, err := h.planner.Activate(c.Request.Context(), sessionKey(c), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.locale, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}
