package onboarding

import (
	"testing"

	"streamafrica/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memProfiles is an in-memory single-slot profile repository.
type memProfiles struct {
	profile *models.UserProfile
	saves   int
}

func (r *memProfiles) Get() (*models.UserProfile, error) {
	if r.profile == nil {
		return nil, nil
	}
	copied := *r.profile
	return &copied, nil
}

func (r *memProfiles) Save(p *models.UserProfile) error {
	copied := *p
	r.profile = &copied
	r.saves++
	return nil
}

func (r *memProfiles) Delete() error {
	r.profile = nil
	return nil
}

func fullProfile() models.UserProfile {
	return models.UserProfile{
		Name:     "Ada Obi",
		Username: "ada",
		Email:    "ada@example.com",
		Phone:    "08012345678",
		Password: "secret123",
	}
}

func TestRegisterRejectsIncompleteForm(t *testing.T) {
	repo := &memProfiles{}
	svc := &DefaultOnboardingService{Repo: repo}

	p := fullProfile()
	p.Phone = ""

	_, err := svc.Register(p)
	assert.ErrorIs(t, err, ErrFormIncomplete)
	assert.Zero(t, repo.saves, "an invalid form must not touch the store")
}

func TestRegisterStartsUnactivated(t *testing.T) {
	repo := &memProfiles{}
	svc := &DefaultOnboardingService{Repo: repo}

	p := fullProfile()
	p.IsActivated = true // the client cannot smuggle activation in

	registered, err := svc.Register(p)
	require.NoError(t, err)
	assert.False(t, registered.IsActivated)
	assert.False(t, repo.profile.IsActivated)
}

func TestRegisterOverwritesPreviousAccount(t *testing.T) {
	repo := &memProfiles{}
	svc := &DefaultOnboardingService{Repo: repo}

	_, err := svc.Register(fullProfile())
	require.NoError(t, err)

	second := fullProfile()
	second.Username = "obi"
	second.Email = "obi@example.com"
	_, err = svc.Register(second)
	require.NoError(t, err)

	stored, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, "obi", stored.Username)

	// The old credentials are gone with the old record.
	_, err = svc.Login("ada", "secret123")
	assert.ErrorIs(t, err, ErrLoginFailed)
}

func TestLoginWithoutAccount(t *testing.T) {
	svc := &DefaultOnboardingService{Repo: &memProfiles{}}

	_, err := svc.Login("ada", "secret123")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLoginMatchesUsernameOrEmail(t *testing.T) {
	repo := &memProfiles{}
	svc := &DefaultOnboardingService{Repo: repo}
	_, err := svc.Register(fullProfile())
	require.NoError(t, err)

	byUsername, err := svc.Login("ada", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byUsername.Email)

	byEmail, err := svc.Login("ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ada", byEmail.Username)
}

func TestLoginRequiresExactPassword(t *testing.T) {
	repo := &memProfiles{}
	svc := &DefaultOnboardingService{Repo: repo}
	_, err := svc.Register(fullProfile())
	require.NoError(t, err)

	_, err = svc.Login("ada", "Secret123")
	assert.ErrorIs(t, err, ErrLoginFailed)

	_, err = svc.Login("adaa", "secret123")
	assert.ErrorIs(t, err, ErrLoginFailed)
}

func TestLoginReturnsActivationFlag(t *testing.T) {
	repo := &memProfiles{}
	svc := &DefaultOnboardingService{Repo: repo}
	_, err := svc.Register(fullProfile())
	require.NoError(t, err)

	repo.profile.IsActivated = true

	logged, err := svc.Login("ada", "secret123")
	require.NoError(t, err)
	assert.True(t, logged.IsActivated)
}
