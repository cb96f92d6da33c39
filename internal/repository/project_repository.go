package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

// ProjectRepository defines project post persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.ProjectPost) error
	Update(ctx context.Context, project *model.ProjectPost) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.ProjectPost, error)
	List(ctx context.Context) ([]model.ProjectPost, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create inserts a project. A duplicate name yields ErrConflict.
func (r *projectRepository) Create(ctx context.Context, project *model.ProjectPost) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		if isDuplicateKey(err) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

// Update overwrites every mutable column of an existing project, including empty optional ones.
func (r *projectRepository) Update(ctx context.Context, project *model.ProjectPost) error {
	err := r.db.WithContext(ctx).Model(&model.ProjectPost{ID: project.ID}).
		Select("ProjectName", "Summary", "GithubURL", "WebsiteURL", "ImageURL", "UpdatedAt").
		Updates(project).Error
	if err != nil {
		if isDuplicateKey(err) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

// Delete permanently removes a project.
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.ProjectPost{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindByID finds a project by ID.
func (r *projectRepository) FindByID(ctx context.Context, id uint) (*model.ProjectPost, error) {
	var project model.ProjectPost
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

// List returns every project in insertion order.
func (r *projectRepository) List(ctx context.Context) ([]model.ProjectPost, error) {
	var projects []model.ProjectPost
	if err := r.db.WithContext(ctx).Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
