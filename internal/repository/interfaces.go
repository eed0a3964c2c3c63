package repository

import (
	"context"

	"github.com/nudgekit/nudge/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.ClientProject) error
	GetByID(ctx context.Context, id string) (*domain.ClientProject, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.ClientProject, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.ClientProject, error)
	Update(ctx context.Context, p *domain.ClientProject) error
	SetStatus(ctx context.Context, id string, status domain.ProjectStatus) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.OnboardingSession) error
	GetByID(ctx context.Context, id string) (*domain.OnboardingSession, error)
	GetByAccessToken(ctx context.Context, token string) (*domain.OnboardingSession, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.OnboardingSession, error)
	// ListRemindable returns sessions a scheduler tick should consider:
	// pending or in-progress, any expiration (the suppression policy owns
	// the expiry decision so expired sessions still show up in previews).
	ListRemindable(ctx context.Context) ([]*domain.OnboardingSession, error)
	Update(ctx context.Context, s *domain.OnboardingSession) error
	SetStatus(ctx context.Context, id string, status domain.SessionStatus) error
	TouchActivity(ctx context.Context, id string) error
	UpdateProgress(ctx context.Context, id string, completionPct, currentStep, totalSteps int) error
	Delete(ctx context.Context, id string) error
}

type ReminderLogRepo interface {
	// Record appends one ledger row. A (session, kind) pair that already
	// exists returns ErrAlreadySent.
	Record(ctx context.Context, l *domain.ReminderLog) error
	ListBySession(ctx context.Context, sessionID string) ([]*domain.ReminderLog, error)
	KindsSent(ctx context.Context, sessionID string) (map[domain.ReminderKind]bool, error)
}
