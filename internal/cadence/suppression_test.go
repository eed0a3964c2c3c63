package cadence

import (
	"testing"
	"time"

	"github.com/nudgekit/nudge/internal/domain"
	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestSuppression_CompletedWinsRegardless(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// Neither activity nor expiration would suppress on their own.
	idle := timePtr(now.Add(-6 * time.Hour))
	future := timePtr(now.Add(48 * time.Hour))

	reason := EvaluateSuppression(domain.SessionCompleted, idle, future, now)
	assert.Equal(t, SuppressCompleted, reason)
	assert.False(t, ShouldSend(domain.SessionCompleted, idle, future, now))

	// Still completed even when the other fields would also suppress.
	active := timePtr(now.Add(-5 * time.Minute))
	past := timePtr(now.Add(-time.Hour))
	assert.Equal(t, SuppressCompleted, EvaluateSuppression(domain.SessionCompleted, active, past, now))
}

func TestSuppression_ExpiredBeforeActivity(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	active := timePtr(now.Add(-5 * time.Minute))
	past := timePtr(now.Add(-time.Minute))

	reason := EvaluateSuppression(domain.SessionInProgress, active, past, now)
	assert.Equal(t, SuppressExpired, reason, "expiration outranks recent activity")
}

func TestSuppression_IdleThreshold(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	over := timePtr(now.Add(-61 * time.Minute))
	assert.True(t, ShouldSend(domain.SessionInProgress, over, nil, now),
		"61 minutes idle is past the activity window")

	under := timePtr(now.Add(-30 * time.Minute))
	assert.False(t, ShouldSend(domain.SessionInProgress, under, nil, now),
		"30 minutes idle is still actively working")
	assert.Equal(t, SuppressRecentActivity,
		EvaluateSuppression(domain.SessionInProgress, under, nil, now))
}

func TestSuppression_DefaultAllow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, ShouldSend(domain.SessionPending, nil, nil, now))
	assert.True(t, ShouldSend(domain.SessionInProgress, nil, nil, now))
	assert.True(t, ShouldSend(domain.SessionAbandoned, nil, nil, now),
		"abandoned is not a suppression state; expiration governs it")

	future := timePtr(now.Add(72 * time.Hour))
	assert.True(t, ShouldSend(domain.SessionPending, nil, future, now))
}
