package cadence

import (
	"testing"
	"time"

	"github.com/nudgekit/nudge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noneSent() map[domain.ReminderKind]bool {
	return map[domain.ReminderKind]bool{}
}

func TestSchedule_StandardTimeline(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	schedule, err := Schedule(created, domain.CadenceStandard, nil)
	require.NoError(t, err)
	require.Len(t, schedule, 3)

	assert.Equal(t, domain.ReminderGentle, schedule[0].Kind)
	assert.Equal(t, created.Add(2*24*time.Hour), schedule[0].ScheduledAt)
	assert.Equal(t, domain.ReminderEncouragement, schedule[1].Kind)
	assert.Equal(t, created.Add(5*24*time.Hour), schedule[1].ScheduledAt)
	assert.Equal(t, domain.ReminderFinal, schedule[2].Kind)
	assert.Equal(t, created.Add(7*24*time.Hour), schedule[2].ScheduledAt)
}

func TestSchedule_CustomRequiresSteps(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := Schedule(created, domain.CadenceCustom, nil)
	assert.ErrorIs(t, err, ErrNoCustomSchedule)

	custom := []domain.ReminderStep{
		{Kind: domain.ReminderCustom, DaysAfterCreation: 1, HoursAfterCreation: hoursPtr(12)},
	}
	schedule, err := Schedule(created, domain.CadenceCustom, custom)
	require.NoError(t, err)
	require.Len(t, schedule, 1)
	assert.Equal(t, created.Add(36*time.Hour), schedule[0].ScheduledAt)
}

func TestNextReminder_EarliestFirst(t *testing.T) {
	now := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	created := now.Add(-10 * 24 * time.Hour) // all three offsets elapsed

	next, err := NextReminder(created, domain.CadenceStandard, nil, noneSent(), now)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, domain.ReminderGentle, next.Kind,
		"gentle must not be skipped even when final is also overdue")
}

func TestNextReminder_SkipsSent(t *testing.T) {
	now := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	created := now.Add(-10 * 24 * time.Hour)

	sent := map[domain.ReminderKind]bool{domain.ReminderGentle: true}
	next, err := NextReminder(created, domain.CadenceStandard, nil, sent, now)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, domain.ReminderEncouragement, next.Kind)
}

func TestNextReminder_NoneWhenExhausted(t *testing.T) {
	now := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	created := now.Add(-100 * 24 * time.Hour)

	sent := map[domain.ReminderKind]bool{
		domain.ReminderGentle:        true,
		domain.ReminderEncouragement: true,
		domain.ReminderFinal:         true,
	}
	next, err := NextReminder(created, domain.CadenceStandard, nil, sent, now)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestNextReminder_NoneBeforeFirstOffset(t *testing.T) {
	now := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	created := now.Add(-24 * time.Hour) // standard's first step fires at 2d

	next, err := NextReminder(created, domain.CadenceStandard, nil, noneSent(), now)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestNextReminder_CustomProfileError(t *testing.T) {
	now := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)
	_, err := NextReminder(now.Add(-48*time.Hour), domain.CadenceCustom, nil, noneSent(), now)
	assert.ErrorIs(t, err, ErrNoCustomSchedule)
}

// Walks a session through its lifecycle: gentle fires after two days,
// encouragement after five, and a client who just became active defers
// the send even though a reminder is due.
func TestDecide_Lifecycle(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	snap := domain.SessionSnapshot{
		CreatedAt: created,
		Status:    domain.SessionInProgress,
	}
	sent := noneSent()

	// T0+2d1h: gentle is due and nothing suppresses it.
	now := created.Add(2*24*time.Hour + time.Hour)
	d, err := Decide(snap, domain.CadenceStandard, nil, sent, now)
	require.NoError(t, err)
	require.NotNil(t, d.Reminder)
	assert.Equal(t, domain.ReminderGentle, d.Reminder.Kind)
	assert.Equal(t, created.Add(2*24*time.Hour), d.Reminder.ScheduledAt)

	// Caller records the send.
	sent[domain.ReminderGentle] = true

	// T0+5d30m with activity ten minutes ago: due but suppressed.
	now = created.Add(5*24*time.Hour + 30*time.Minute)
	snap.LastActivityAt = timePtr(now.Add(-10 * time.Minute))
	d, err = Decide(snap, domain.CadenceStandard, nil, sent, now)
	require.NoError(t, err)
	assert.Nil(t, d.Reminder)
	assert.Equal(t, SuppressRecentActivity, d.Suppressed)

	// T0+5d1h, activity now stale enough: encouragement goes out.
	now = created.Add(5*24*time.Hour + time.Hour)
	snap.LastActivityAt = timePtr(created.Add(4 * 24 * time.Hour))
	d, err = Decide(snap, domain.CadenceStandard, nil, sent, now)
	require.NoError(t, err)
	require.NotNil(t, d.Reminder)
	assert.Equal(t, domain.ReminderEncouragement, d.Reminder.Kind)

	// Completion permanently ends the cadence.
	snap.Status = domain.SessionCompleted
	d, err = Decide(snap, domain.CadenceStandard, nil, sent, now)
	require.NoError(t, err)
	assert.Nil(t, d.Reminder)
	assert.Equal(t, SuppressCompleted, d.Suppressed)
}
