// File: services/onboarding/service.go
package onboarding

import (
	"time"

	profileRepo "streamafrica/database/repository/profile"
	"streamafrica/models"
	"streamafrica/utils"

	"go.uber.org/zap"
)

// DefaultOnboardingService implements the registration/login contract over
// the single-slot profile store. Credential comparison is exact string
// equality on both fields; that is the product's contract.
type DefaultOnboardingService struct {
	Repo profileRepo.ProfileRepository
}

// Register validates presence of all five fields, then writes the profile
// into the slot, overwriting any prior account. The new profile always
// starts unactivated.
func (s *DefaultOnboardingService) Register(profile models.UserProfile) (*models.UserProfile, error) {
	if !profile.Complete() {
		return nil, ErrFormIncomplete
	}

	profile.IsActivated = false
	profile.CreatedAt = time.Now()
	if err := s.Repo.Save(&profile); err != nil {
		utils.GetLogger().Error("Register: failed to save profile", zap.Error(err))
		return nil, err
	}
	return &profile, nil
}

// Login matches username-or-email plus password against the stored record
// and hands it back whole, including its current activation flag.
func (s *DefaultOnboardingService) Login(identifier, password string) (*models.UserProfile, error) {
	stored, err := s.Repo.Get()
	if err != nil {
		utils.GetLogger().Error("Login: failed to read profile", zap.Error(err))
		return nil, err
	}
	if stored == nil {
		return nil, ErrAccountNotFound
	}

	if (identifier != stored.Username && identifier != stored.Email) || password != stored.Password {
		return nil, ErrLoginFailed
	}
	return stored, nil
}
