package service

import (
	"context"
	"time"

	"github.com/nudgekit/nudge/internal/cadence"
	"github.com/nudgekit/nudge/internal/domain"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.ClientProject) error
	GetByID(ctx context.Context, id string) (*domain.ClientProject, error)
	// Resolve looks a project up by short ID first, then by full ID.
	Resolve(ctx context.Context, ref string) (*domain.ClientProject, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.ClientProject, error)
	Update(ctx context.Context, p *domain.ClientProject) error
	// Pause suspends reminder passes for every session in the project;
	// Resume lifts the suspension.
	Pause(ctx context.Context, id string) error
	Resume(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// CreateSessionInput carries everything needed to start an onboarding
// session. Profile is optional; when empty the recommendation policy
// picks one from the project's priority and budget.
type CreateSessionInput struct {
	ProjectRef    string
	ClientName    string
	ClientEmail   string
	TotalSteps    int
	ExpiresInDays *int
	Profile       domain.CadenceProfile
}

type SessionService interface {
	Create(ctx context.Context, in CreateSessionInput) (*domain.OnboardingSession, error)
	GetByID(ctx context.Context, id string) (*domain.OnboardingSession, error)
	ListByProject(ctx context.Context, projectRef string) ([]*domain.OnboardingSession, error)
	ListRemindable(ctx context.Context) ([]*domain.OnboardingSession, error)
	TouchActivity(ctx context.Context, id string) error
	UpdateProgress(ctx context.Context, id string, completionPct, currentStep, totalSteps int) error
	Complete(ctx context.Context, id string) error
	Abandon(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// TickOutcome labels what one scheduler pass did for one session.
type TickOutcome string

const (
	OutcomeSent       TickOutcome = "sent"
	OutcomeDryRun     TickOutcome = "dry_run"
	OutcomeNoneDue    TickOutcome = "none_due"
	OutcomeSuppressed TickOutcome = "suppressed"
	OutcomeLostRace   TickOutcome = "lost_race"
	OutcomeError      TickOutcome = "error"
)

// TickResult is the per-session outcome of a scheduler pass.
type TickResult struct {
	SessionID   string
	ClientEmail string
	Kind        domain.ReminderKind
	Outcome     TickOutcome
	Suppressed  cadence.SuppressionReason
	Err         error
}

// TimelineEntry is one scheduled reminder annotated with its ledger and
// due state at preview time.
type TimelineEntry struct {
	Kind        domain.ReminderKind
	ScheduledAt time.Time
	Sent        bool
	Due         bool
}

// TimelinePreview is the full reminder picture for one session.
type TimelinePreview struct {
	Session    *domain.OnboardingSession
	Project    *domain.ClientProject
	Entries    []TimelineEntry
	Suppressed cadence.SuppressionReason
	Next       *domain.ComputedReminder
}

type ReminderService interface {
	// Preview computes the session's timeline without sending anything.
	Preview(ctx context.Context, sessionID string, now time.Time) (*TimelinePreview, error)
	// Tick runs one scheduler pass over all remindable sessions. With
	// dryRun set it reports what would be sent without delivering or
	// recording anything.
	Tick(ctx context.Context, now time.Time, dryRun bool) ([]TickResult, error)
	// RenderPreview builds the email for a session and kind without
	// touching the ledger.
	RenderPreview(ctx context.Context, sessionID string, kind domain.ReminderKind, customSubject, customMessage string, now time.Time) (*domain.EmailMessage, error)
	// History returns the session's sent-reminder ledger, oldest first.
	History(ctx context.Context, sessionID string) ([]*domain.ReminderLog, error)
}
