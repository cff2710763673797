package onboarding

import "streamafrica/models"

// OnboardingService handles the two modes of the signup form. Register
// overwrites the single profile slot; Login compares credentials against
// whatever the slot holds.
type OnboardingService interface {
	Register(profile models.UserProfile) (*models.UserProfile, error)
	Login(identifier, password string) (*models.UserProfile, error)
}
