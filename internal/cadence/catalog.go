// Package cadence is the reminder scheduling policy engine: a pure,
// stateless rules layer over timestamps. Every function takes the
// evaluation instant explicitly; nothing here reads the wall clock,
// performs I/O, or holds state between calls.
package cadence

import "github.com/nudgekit/nudge/internal/domain"

func hoursPtr(h int) *int { return &h }

// Hand-authored cadence catalogs, offsets in days after session creation.
// The initial invitation is sent at session creation by the session
// service, so no catalog carries an "initial" step.
var (
	standardCatalog = []domain.ReminderStep{
		{Kind: domain.ReminderGentle, DaysAfterCreation: 2},
		{Kind: domain.ReminderEncouragement, DaysAfterCreation: 5},
		{Kind: domain.ReminderFinal, DaysAfterCreation: 7},
	}

	aggressiveCatalog = []domain.ReminderStep{
		{Kind: domain.ReminderGentle, DaysAfterCreation: 1},
		{Kind: domain.ReminderEncouragement, DaysAfterCreation: 3},
		{Kind: domain.ReminderFinal, DaysAfterCreation: 5},
	}

	gentleCatalog = []domain.ReminderStep{
		{Kind: domain.ReminderGentle, DaysAfterCreation: 3},
		{Kind: domain.ReminderEncouragement, DaysAfterCreation: 7},
		{Kind: domain.ReminderFinal, DaysAfterCreation: 10},
	}
)

// Catalog returns the ordered reminder steps for a cadence profile.
// The custom profile has no built-in steps; callers supply their own
// through Schedule's override parameter. The returned slice is a copy
// and safe to mutate.
func Catalog(profile domain.CadenceProfile) []domain.ReminderStep {
	var src []domain.ReminderStep
	switch profile {
	case domain.CadenceStandard:
		src = standardCatalog
	case domain.CadenceAggressive:
		src = aggressiveCatalog
	case domain.CadenceGentle:
		src = gentleCatalog
	default:
		return nil
	}
	out := make([]domain.ReminderStep, len(src))
	copy(out, src)
	return out
}
