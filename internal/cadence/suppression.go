package cadence

import (
	"time"

	"github.com/nudgekit/nudge/internal/domain"
)

// ActivityWindow is how recently a client must have interacted for the
// session to count as actively worked on.
const ActivityWindow = time.Hour

// SuppressionReason explains why a reminder must not be sent right now.
type SuppressionReason string

const (
	// SuppressNone means sending is allowed.
	SuppressNone SuppressionReason = ""
	// SuppressCompleted: the session finished; suppression is permanent.
	SuppressCompleted SuppressionReason = "completed"
	// SuppressExpired: the session window passed; suppression is permanent.
	SuppressExpired SuppressionReason = "expired"
	// SuppressRecentActivity: the client is actively working; temporary.
	SuppressRecentActivity SuppressionReason = "recent_activity"
)

// EvaluateSuppression decides whether a reminder may be sent for a session
// in the given state. Precedence, first match wins: completed, expired,
// recent activity. Purely a predicate; recording what was sent is the
// caller's concern.
func EvaluateSuppression(status domain.SessionStatus, lastActivityAt, expiresAt *time.Time, now time.Time) SuppressionReason {
	if status == domain.SessionCompleted {
		return SuppressCompleted
	}
	if expiresAt != nil && now.After(*expiresAt) {
		return SuppressExpired
	}
	if lastActivityAt != nil && lastActivityAt.After(now.Add(-ActivityWindow)) {
		return SuppressRecentActivity
	}
	return SuppressNone
}

// ShouldSend is the boolean view of EvaluateSuppression.
func ShouldSend(status domain.SessionStatus, lastActivityAt, expiresAt *time.Time, now time.Time) bool {
	return EvaluateSuppression(status, lastActivityAt, expiresAt, now) == SuppressNone
}
