// File: handlers/funnel.go
package handlers

import (
	"net/http"
	"time"

	"streamafrica/models"
	"streamafrica/services/funnel"
	"streamafrica/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sessionTokenTTL matches the Redis TTL on funnel sessions.
const sessionTokenTTL = 24 * time.Hour

type FunnelHandler struct {
	Svc funnel.FunnelService
}

func NewFunnelHandler(svc funnel.FunnelService) *FunnelHandler {
	return &FunnelHandler{Svc: svc}
}

// StartSessionHandler opens a fresh funnel session at the landing view and
// returns it alongside the bearer token the client presents afterwards.
func (h *FunnelHandler) StartSessionHandler(c *gin.Context) {
	logger := getLogger(c)

	session, err := h.Svc.StartSession()
	if err != nil {
		logger.Error("Failed to start funnel session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	token, err := utils.GenerateSessionToken(session.SessionID, sessionTokenTTL)
	if err != nil {
		logger.Error("Failed to issue session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "session": session})
}

// GetSessionHandler returns the current session state.
func (h *FunnelHandler) GetSessionHandler(c *gin.Context) {
	session, err := h.Svc.GetSession(sessionID(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// NavigateHandler begins a transition to the requested view. The commit
// lands after the loader delay, so the response carries the transitioning
// state, not the destination.
func (h *FunnelHandler) NavigateHandler(c *gin.Context) {
	var input struct {
		View models.View `json:"view"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.NavigateTo(sessionID(c), input.View); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	session, err := h.Svc.GetSession(sessionID(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, session)
}

// BackHandler re-enters the previous view immediately.
func (h *FunnelHandler) BackHandler(c *gin.Context) {
	if err := h.Svc.Back(sessionID(c)); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	session, err := h.Svc.GetSession(sessionID(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// RedirectHandler returns the messaging deep link for the success screen.
func (h *FunnelHandler) RedirectHandler(c *gin.Context) {
	url, err := h.Svc.RedirectURL(sessionID(c))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
