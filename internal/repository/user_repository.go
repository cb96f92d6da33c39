package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

// UserRepository defines admin account persistence.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	State(ctx context.Context) (model.ProvisioningState, error)
	// Provision inserts the admin account. It fails with ErrAdminExists once one exists.
	Provision(ctx context.Context, user *model.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) State(ctx context.Context) (model.ProvisioningState, error) {
	return provisioningState(r.db.WithContext(ctx))
}

func (r *userRepository) Provision(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := provisioningState(tx)
		if err != nil {
			return err
		}
		if state == model.Provisioned {
			return apperrors.ErrAdminExists
		}

		user.Slot = model.AdminSlot
		if err := tx.Create(user).Error; err != nil {
			// a concurrent registration won the race on the slot index
			if isDuplicateKey(err) {
				return apperrors.ErrAdminExists
			}
			return err
		}
		return nil
	})
}

func provisioningState(db *gorm.DB) (model.ProvisioningState, error) {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return model.Unprovisioned, err
	}
	if count > 0 {
		return model.Provisioned, nil
	}
	return model.Unprovisioned, nil
}
