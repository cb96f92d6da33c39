package service

import (
	"context"
	"fmt"

	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// ProjectService implements the project post workflow.
type ProjectService interface {
	List(ctx context.Context) ([]model.ProjectPost, error)
	Get(ctx context.Context, id uint) (*model.ProjectPost, error)
	Create(ctx context.Context, project *model.ProjectPost) (*model.ProjectPost, error)
	// Update copies the mutable fields of changes onto the stored project.
	Update(ctx context.Context, id uint, changes *model.ProjectPost) (*model.ProjectPost, error)
	Delete(ctx context.Context, id uint) error
}

type projectService struct {
	repo repository.ProjectRepository
}

// NewProjectService creates a new project service.
func NewProjectService(repo repository.ProjectRepository) ProjectService {
	return &projectService{repo: repo}
}

func (s *projectService) List(ctx context.Context) ([]model.ProjectPost, error) {
	return s.repo.List(ctx)
}

func (s *projectService) Get(ctx context.Context, id uint) (*model.ProjectPost, error) {
	return s.repo.FindByID(ctx, id)
}

// Create persists a new project. Duplicate names fail with ErrConflict.
func (s *projectService) Create(ctx context.Context, project *model.ProjectPost) (*model.ProjectPost, error) {
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// Update overwrites every mutable field of an existing project.
func (s *projectService) Update(ctx context.Context, id uint, changes *model.ProjectPost) (*model.ProjectPost, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project.ProjectName = changes.ProjectName
	project.Summary = changes.Summary
	project.GithubURL = changes.GithubURL
	project.WebsiteURL = changes.WebsiteURL
	project.ImageURL = changes.ImageURL

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project %d: %w", id, err)
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
