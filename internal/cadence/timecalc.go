package cadence

import (
	"time"

	"github.com/nudgekit/nudge/internal/domain"
)

// ScheduledTime resolves a catalog step against a concrete base instant:
// base + days, then + hours when the step carries an hour offset.
func ScheduledTime(base time.Time, step domain.ReminderStep) time.Time {
	t := base.Add(time.Duration(step.DaysAfterCreation) * 24 * time.Hour)
	if step.HoursAfterCreation != nil {
		t = t.Add(time.Duration(*step.HoursAfterCreation) * time.Hour)
	}
	return t
}

// IsDue reports whether scheduledAt is strictly before now. Due-ness is
// advisory at the instant of the call; two evaluations around a boundary
// may disagree, and callers must not treat it as a stable fact.
func IsDue(scheduledAt, now time.Time) bool {
	return scheduledAt.Before(now)
}

// DaysUntilExpiration returns the whole days remaining until expiresAt,
// rounded up and floored at zero. Nil in, nil out.
func DaysUntilExpiration(expiresAt *time.Time, now time.Time) *int {
	if expiresAt == nil {
		return nil
	}
	remaining := expiresAt.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	if days < 0 {
		days = 0
	}
	return &days
}
