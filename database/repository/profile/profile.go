package profileRepo

import "streamafrica/models"

// ProfileRepository is the single-slot store for the one local user record.
// Get returns (nil, nil) when no profile has been saved yet. Save always
// overwrites the whole record; there is no partial update and no second
// slot.
type ProfileRepository interface {
	Get() (*models.UserProfile, error)
	Save(profile *models.UserProfile) error
	Delete() error
}
