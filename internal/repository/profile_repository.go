package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portfolio/internal/model"
)

// ProfileRepository persists the singleton welcome profile.
type ProfileRepository interface {
	// Get returns the profile or ErrNotFound when none was saved yet.
	Get(ctx context.Context) (*model.Profile, error)
	// Upsert creates the profile when absent and overwrites every field otherwise.
	Upsert(ctx context.Context, profile *model.Profile) (*model.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Order("id").First(&profile).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	var saved model.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Order("id").First(&saved).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			saved = model.Profile{
				ProfileImageURL: profile.ProfileImageURL,
				Title:           profile.Title,
				IntroText:       profile.IntroText,
			}
			return tx.Create(&saved).Error
		}
		if err != nil {
			return err
		}

		saved.ProfileImageURL = profile.ProfileImageURL
		saved.Title = profile.Title
		saved.IntroText = profile.IntroText
		return tx.Save(&saved).Error
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
