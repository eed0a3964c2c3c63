package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nudgekit/nudge/internal/cadence"
	"github.com/nudgekit/nudge/internal/domain"
	"github.com/nudgekit/nudge/internal/repository"
)

type sessionService struct {
	sessions repository.SessionRepo
	projects ProjectService
}

func NewSessionService(sessions repository.SessionRepo, projects ProjectService) SessionService {
	return &sessionService{sessions: sessions, projects: projects}
}

func (s *sessionService) Create(ctx context.Context, in CreateSessionInput) (*domain.OnboardingSession, error) {
	project, err := s.projects.Resolve(ctx, in.ProjectRef)
	if err != nil {
		return nil, fmt.Errorf("resolving project %q: %w", in.ProjectRef, err)
	}
	if project.Status == domain.ProjectArchived {
		return nil, fmt.Errorf("project %s is archived", project.DisplayID())
	}

	profile := in.Profile
	if profile == "" {
		profile = cadence.RecommendProfile(&project.Priority, project.Budget)
	}
	// Sessions carry no override steps, so a custom profile could never
	// produce a schedule. Refuse it rather than persist a session every
	// scheduler pass errors on.
	if profile == domain.CadenceCustom {
		return nil, fmt.Errorf("cadence profile %q requires override steps and cannot be assigned to a session; choose standard, aggressive, or gentle", profile)
	}

	now := time.Now().UTC()
	session := &domain.OnboardingSession{
		ID:             uuid.New().String(),
		ProjectID:      project.ID,
		ClientName:     in.ClientName,
		ClientEmail:    in.ClientEmail,
		AccessToken:    uuid.New().String(),
		Status:         domain.SessionPending,
		CadenceProfile: profile,
		TotalSteps:     in.TotalSteps,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.ExpiresInDays != nil {
		expires := now.Add(time.Duration(*in.ExpiresInDays) * 24 * time.Hour)
		session.ExpiresAt = &expires
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}

	// The initial invitation goes out through the transactional email
	// path at signup, not through the reminder cadence, so nothing is
	// recorded in the ledger here.
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.OnboardingSession, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) ListByProject(ctx context.Context, projectRef string) ([]*domain.OnboardingSession, error) {
	project, err := s.projects.Resolve(ctx, projectRef)
	if err != nil {
		return nil, fmt.Errorf("resolving project %q: %w", projectRef, err)
	}
	return s.sessions.ListByProject(ctx, project.ID)
}

func (s *sessionService) ListRemindable(ctx context.Context) ([]*domain.OnboardingSession, error) {
	return s.sessions.ListRemindable(ctx)
}

func (s *sessionService) TouchActivity(ctx context.Context, id string) error {
	return s.sessions.TouchActivity(ctx, id)
}

func (s *sessionService) UpdateProgress(ctx context.Context, id string, completionPct, currentStep, totalSteps int) error {
	if completionPct < 0 || currentStep < 0 || totalSteps < 0 {
		return fmt.Errorf("progress fields must be non-negative")
	}
	if err := s.sessions.UpdateProgress(ctx, id, completionPct, currentStep, totalSteps); err != nil {
		return err
	}
	// A client at 100% has answered everything; flip the status so the
	// cadence shuts off permanently.
	if completionPct >= 100 {
		return s.sessions.SetStatus(ctx, id, domain.SessionCompleted)
	}
	return s.sessions.SetStatus(ctx, id, domain.SessionInProgress)
}

func (s *sessionService) Complete(ctx context.Context, id string) error {
	return s.sessions.SetStatus(ctx, id, domain.SessionCompleted)
}

func (s *sessionService) Abandon(ctx context.Context, id string) error {
	return s.sessions.SetStatus(ctx, id, domain.SessionAbandoned)
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}
