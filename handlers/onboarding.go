// File: handlers/onboarding.go
package handlers

import (
	"net/http"

	"streamafrica/models"
	"streamafrica/services/funnel"
	"streamafrica/services/onboarding"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OnboardingHandler struct {
	Svc    onboarding.OnboardingService
	Funnel funnel.FunnelService
}

func NewOnboardingHandler(svc onboarding.OnboardingService, funnelSvc funnel.FunnelService) *OnboardingHandler {
	return &OnboardingHandler{Svc: svc, Funnel: funnelSvc}
}

// RegisterHandler stores the signup form and routes the funnel forward.
func (h *OnboardingHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	registered, err := h.Svc.Register(profile)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	if err := h.Funnel.AttachUser(sessionID(c), registered); err != nil {
		logger.Error("Failed to attach profile to funnel", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, registered)
}

// LoginHandler checks credentials against the stored profile and routes
// the funnel forward on a match.
func (h *OnboardingHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	profile, err := h.Svc.Login(input.Identifier, input.Password)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	if err := h.Funnel.AttachUser(sessionID(c), profile); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
