package service

import (
	"context"
	"errors"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// ProfileService reads and upserts the welcome profile.
type ProfileService interface {
	// Current returns the profile, or nil when none has been saved.
	Current(ctx context.Context) (*model.Profile, error)
	// Save creates the profile or overwrites every field of the existing one.
	Save(ctx context.Context, profile *model.Profile) (*model.Profile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Current(ctx context.Context) (*model.Profile, error) {
	profile, err := s.repo.Get(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	return profile, err
}

func (s *profileService) Save(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	return s.repo.Upsert(ctx, profile)
}
