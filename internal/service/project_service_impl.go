package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nudgekit/nudge/internal/domain"
	"github.com/nudgekit/nudge/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
}

func NewProjectService(projects repository.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) Create(ctx context.Context, p *domain.ClientProject) error {
	if err := p.ValidateShortID(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Priority == "" {
		p.Priority = domain.PriorityMedium
	}
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.ClientProject, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) Resolve(ctx context.Context, ref string) (*domain.ClientProject, error) {
	p, err := s.projects.GetByShortID(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.projects.GetByID(ctx, ref)
}

func (s *projectService) List(ctx context.Context, includeArchived bool) ([]*domain.ClientProject, error) {
	return s.projects.List(ctx, includeArchived)
}

func (s *projectService) Update(ctx context.Context, p *domain.ClientProject) error {
	if err := p.ValidateShortID(); err != nil {
		return err
	}
	return s.projects.Update(ctx, p)
}

func (s *projectService) Pause(ctx context.Context, id string) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status == domain.ProjectArchived {
		return fmt.Errorf("project %s is archived", p.DisplayID())
	}
	return s.projects.SetStatus(ctx, id, domain.ProjectPaused)
}

func (s *projectService) Resume(ctx context.Context, id string) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status != domain.ProjectPaused {
		return fmt.Errorf("project %s is not paused", p.DisplayID())
	}
	return s.projects.SetStatus(ctx, id, domain.ProjectActive)
}

func (s *projectService) Archive(ctx context.Context, id string) error {
	return s.projects.Archive(ctx, id)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}
