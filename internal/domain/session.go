package domain

import (
	"fmt"
	"time"
)

// OnboardingSession tracks one client's pass through the onboarding
// questionnaire for a project. Reminder state lives in reminder_logs,
// not here; the session only carries the fields the cadence engine reads.
type OnboardingSession struct {
	ID             string
	ProjectID      string
	ClientName     string
	ClientEmail    string
	AccessToken    string
	Status         SessionStatus
	CadenceProfile CadenceProfile

	// Questionnaire progress, display-only.
	CompletionPercentage int
	CurrentStep          int
	TotalSteps           int

	LastActivityAt *time.Time
	ExpiresAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SessionSnapshot is the read-only view of a session the cadence engine
// consumes. All state is supplied by the caller on each invocation; the
// engine itself holds nothing.
type SessionSnapshot struct {
	CreatedAt            time.Time
	Status               SessionStatus
	LastActivityAt       *time.Time
	ExpiresAt            *time.Time
	CompletionPercentage int
	CurrentStep          int
	TotalSteps           int
}

// Snapshot returns the engine-facing view of the session.
func (s *OnboardingSession) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		CreatedAt:            s.CreatedAt,
		Status:               s.Status,
		LastActivityAt:       s.LastActivityAt,
		ExpiresAt:            s.ExpiresAt,
		CompletionPercentage: s.CompletionPercentage,
		CurrentStep:          s.CurrentStep,
		TotalSteps:           s.TotalSteps,
	}
}

// Validate checks the fields a caller must supply before persisting.
func (s *OnboardingSession) Validate() error {
	if s.ProjectID == "" {
		return fmt.Errorf("session requires a project")
	}
	if s.ClientEmail == "" {
		return fmt.Errorf("session requires a client email")
	}
	if !ValidSessionStatuses[string(s.Status)] {
		return fmt.Errorf("invalid session status %q", s.Status)
	}
	if !ValidCadenceProfiles[string(s.CadenceProfile)] {
		return fmt.Errorf("invalid cadence profile %q", s.CadenceProfile)
	}
	if s.CompletionPercentage < 0 || s.CurrentStep < 0 || s.TotalSteps < 0 {
		return fmt.Errorf("progress fields must be non-negative")
	}
	return nil
}

// DisplayName returns the best client-facing name for templates.
func (s *OnboardingSession) DisplayName() string {
	return CoalesceStr(s.ClientName, "there")
}
