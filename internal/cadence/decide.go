package cadence

import (
	"time"

	"github.com/nudgekit/nudge/internal/domain"
)

// Decision is the outcome of one scheduling check for a session.
// Reminder is non-nil only when a reminder is due, unsent, and not
// suppressed; otherwise Suppressed carries the reason (SuppressNone when
// there was simply nothing due).
type Decision struct {
	Reminder   *domain.ComputedReminder
	Suppressed SuppressionReason
}

// Decide applies the next-reminder selector and the suppression policy in
// one call. Both predicates read the same now, so a single decision is
// internally consistent; across calls due-ness remains advisory and
// callers dispatching mail should re-check suppression immediately before
// the send.
func Decide(snap domain.SessionSnapshot, profile domain.CadenceProfile, custom []domain.ReminderStep, sent map[domain.ReminderKind]bool, now time.Time) (Decision, error) {
	if reason := EvaluateSuppression(snap.Status, snap.LastActivityAt, snap.ExpiresAt, now); reason != SuppressNone {
		return Decision{Suppressed: reason}, nil
	}
	next, err := NextReminder(snap.CreatedAt, profile, custom, sent, now)
	if err != nil {
		return Decision{}, err
	}
	return Decision{Reminder: next}, nil
}
