package cadence

import "github.com/nudgekit/nudge/internal/domain"

// HighBudgetThreshold is the engagement budget above which the aggressive
// cadence is recommended regardless of priority.
const HighBudgetThreshold = 50000

// RecommendProfile maps project priority and budget to a default cadence
// profile. Used once at session creation; never re-evaluated.
func RecommendProfile(priority *domain.ProjectPriority, budget *float64) domain.CadenceProfile {
	if priority != nil && (*priority == domain.PriorityCritical || *priority == domain.PriorityHigh) {
		return domain.CadenceAggressive
	}
	if domain.Float64FromPtrWithDefault(0, budget) > HighBudgetThreshold {
		return domain.CadenceAggressive
	}
	if priority != nil && *priority == domain.PriorityLow {
		return domain.CadenceGentle
	}
	return domain.CadenceStandard
}
