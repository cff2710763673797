// File: handlers/dashboard.go
package handlers

import (
	"net/http"

	"streamafrica/services/dashboard"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Svc dashboard.DashboardService
}

func NewDashboardHandler(svc dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{Svc: svc}
}

// StateHandler returns the prompt state the demo dashboard renders from.
// Clients poll it so the forced prompt appears without a reload.
func (h *DashboardHandler) StateHandler(c *gin.Context) {
	state, err := h.Svc.State(sessionID(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// ActionHandler handles a tap on one of the gated dashboard surfaces.
func (h *DashboardHandler) ActionHandler(c *gin.Context) {
	var input struct {
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	state, err := h.Svc.Action(sessionID(c), input.Action)
	if err != nil {
		if err == dashboard.ErrUnknownAction {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// ActivateHandler moves the funnel to the payment step.
func (h *DashboardHandler) ActivateHandler(c *gin.Context) {
	if err := h.Svc.Activate(sessionID(c)); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "redirecting to payment"})
}
