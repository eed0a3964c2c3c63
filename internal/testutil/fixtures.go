package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nudgekit/nudge/internal/domain"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.ClientProject)

func WithPriority(p domain.ProjectPriority) ProjectOption {
	return func(proj *domain.ClientProject) {
		proj.Priority = p
	}
}

func WithBudget(b float64) ProjectOption {
	return func(proj *domain.ClientProject) {
		proj.Budget = &b
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(proj *domain.ClientProject) {
		proj.Status = s
	}
}

func WithShortID(id string) ProjectOption {
	return func(proj *domain.ClientProject) {
		proj.ShortID = id
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

// NewTestProject builds a persistable client project with sane defaults.
func NewTestProject(name string, opts ...ProjectOption) *domain.ClientProject {
	now := time.Now().UTC()
	p := &domain.ClientProject{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Priority:  domain.PriorityMedium,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Session options
type SessionOption func(*domain.OnboardingSession)

func WithSessionStatus(s domain.SessionStatus) SessionOption {
	return func(sess *domain.OnboardingSession) {
		sess.Status = s
	}
}

func WithCadence(p domain.CadenceProfile) SessionOption {
	return func(sess *domain.OnboardingSession) {
		sess.CadenceProfile = p
	}
}

func WithCreatedAt(t time.Time) SessionOption {
	return func(sess *domain.OnboardingSession) {
		sess.CreatedAt = t
		sess.UpdatedAt = t
	}
}

func WithLastActivityAt(t time.Time) SessionOption {
	return func(sess *domain.OnboardingSession) {
		sess.LastActivityAt = &t
	}
}

func WithExpiresAt(t time.Time) SessionOption {
	return func(sess *domain.OnboardingSession) {
		sess.ExpiresAt = &t
	}
}

func WithProgress(pct, step, total int) SessionOption {
	return func(sess *domain.OnboardingSession) {
		sess.CompletionPercentage = pct
		sess.CurrentStep = step
		sess.TotalSteps = total
	}
}

// NewTestSession builds a persistable onboarding session tied to projectID.
func NewTestSession(projectID string, opts ...SessionOption) *domain.OnboardingSession {
	now := time.Now().UTC()
	id := uuid.New().String()
	s := &domain.OnboardingSession{
		ID:             id,
		ProjectID:      projectID,
		ClientName:     "Test Client",
		ClientEmail:    fmt.Sprintf("client-%s@example.com", id[:8]),
		AccessToken:    uuid.New().String(),
		Status:         domain.SessionPending,
		CadenceProfile: domain.CadenceStandard,
		TotalSteps:     8,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
