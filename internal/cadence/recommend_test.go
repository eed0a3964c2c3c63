package cadence

import (
	"testing"

	"github.com/nudgekit/nudge/internal/domain"
	"github.com/stretchr/testify/assert"
)

func priorityPtr(p domain.ProjectPriority) *domain.ProjectPriority { return &p }
func budgetPtr(b float64) *float64                                 { return &b }

func TestRecommendProfile_PriorityWins(t *testing.T) {
	assert.Equal(t, domain.CadenceAggressive, RecommendProfile(priorityPtr(domain.PriorityCritical), nil))
	assert.Equal(t, domain.CadenceAggressive, RecommendProfile(priorityPtr(domain.PriorityHigh), nil))

	// High priority outranks a small budget.
	assert.Equal(t, domain.CadenceAggressive, RecommendProfile(priorityPtr(domain.PriorityHigh), budgetPtr(1000)))
}

func TestRecommendProfile_BigBudget(t *testing.T) {
	assert.Equal(t, domain.CadenceAggressive, RecommendProfile(nil, budgetPtr(60000)))
	assert.Equal(t, domain.CadenceAggressive, RecommendProfile(priorityPtr(domain.PriorityMedium), budgetPtr(50001)))
	assert.Equal(t, domain.CadenceStandard, RecommendProfile(nil, budgetPtr(50000)), "threshold is exclusive")

	// Budget check runs before the low-priority check.
	assert.Equal(t, domain.CadenceAggressive, RecommendProfile(priorityPtr(domain.PriorityLow), budgetPtr(75000)))
}

func TestRecommendProfile_LowAndDefault(t *testing.T) {
	assert.Equal(t, domain.CadenceGentle, RecommendProfile(priorityPtr(domain.PriorityLow), nil))
	assert.Equal(t, domain.CadenceGentle, RecommendProfile(priorityPtr(domain.PriorityLow), budgetPtr(2000)))

	assert.Equal(t, domain.CadenceStandard, RecommendProfile(nil, nil))
	assert.Equal(t, domain.CadenceStandard, RecommendProfile(priorityPtr(domain.PriorityMedium), nil))
}
