package cadence

import (
	"errors"
	"time"

	"github.com/nudgekit/nudge/internal/domain"
)

// ErrNoCustomSchedule is returned when the custom profile is requested
// without override steps. A custom profile with no steps would yield a
// schedule that can never fire, so it is rejected up front.
var ErrNoCustomSchedule = errors.New("custom cadence profile requires override steps")

// Schedule resolves a profile's catalog against a session creation time,
// preserving catalog order. For the custom profile the override steps are
// used and must be non-empty.
func Schedule(createdAt time.Time, profile domain.CadenceProfile, custom []domain.ReminderStep) ([]domain.ComputedReminder, error) {
	steps := Catalog(profile)
	if profile == domain.CadenceCustom {
		if len(custom) == 0 {
			return nil, ErrNoCustomSchedule
		}
		steps = custom
	}

	out := make([]domain.ComputedReminder, 0, len(steps))
	for _, step := range steps {
		out = append(out, domain.ComputedReminder{
			Kind:        step.Kind,
			ScheduledAt: ScheduledTime(createdAt, step),
		})
	}
	return out, nil
}

// NextReminder scans the schedule in catalog order and returns the first
// entry that is due and not already sent, or nil when every entry is sent
// or still in the future. Earliest-offset steps win when several became
// due at once, so a session that sat through a long gap still receives
// "gentle" before "final". At most one reminder surfaces per call.
//
// Suppression is evaluated separately; see Decide for the composed form.
func NextReminder(createdAt time.Time, profile domain.CadenceProfile, custom []domain.ReminderStep, sent map[domain.ReminderKind]bool, now time.Time) (*domain.ComputedReminder, error) {
	schedule, err := Schedule(createdAt, profile, custom)
	if err != nil {
		return nil, err
	}
	for _, r := range schedule {
		if sent[r.Kind] {
			continue
		}
		if !IsDue(r.ScheduledAt, now) {
			continue
		}
		return &r, nil
	}
	return nil, nil
}
