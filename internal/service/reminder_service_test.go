package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/nudgekit/nudge/internal/cadence"
	"github.com/nudgekit/nudge/internal/delivery"
	"github.com/nudgekit/nudge/internal/domain"
	"github.com/nudgekit/nudge/internal/repository"
	"github.com/nudgekit/nudge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://clients.agency.example"

type reminderFixture struct {
	db        *sql.DB
	projects  *repository.SQLiteProjectRepo
	sessions  *repository.SQLiteSessionRepo
	logs      *repository.SQLiteReminderLogRepo
	deliverer *delivery.CaptureDeliverer
	svc       ReminderService
}

func newReminderFixture(t *testing.T) *reminderFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &reminderFixture{
		db:        database,
		projects:  repository.NewSQLiteProjectRepo(database),
		sessions:  repository.NewSQLiteSessionRepo(database),
		logs:      repository.NewSQLiteReminderLogRepo(database),
		deliverer: &delivery.CaptureDeliverer{},
	}
	f.svc = NewReminderService(f.sessions, f.projects, f.logs, testutil.NewTestUoW(database), f.deliverer, testBaseURL, "The Onboarding Team")
	return f
}

func (f *reminderFixture) seed(t *testing.T, opts ...testutil.SessionOption) *domain.OnboardingSession {
	t.Helper()
	ctx := context.Background()
	p := testutil.NewTestProject("Atlas Rebrand")
	require.NoError(t, f.projects.Create(ctx, p))
	s := testutil.NewTestSession(p.ID, opts...)
	require.NoError(t, f.sessions.Create(ctx, s))
	return s
}

func TestTick_SendsGentleWhenDue(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	s := f.seed(t, testutil.WithCreatedAt(now.Add(-3*24*time.Hour)))

	results, err := f.svc.Tick(ctx, now, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeSent, results[0].Outcome)
	assert.Equal(t, domain.ReminderGentle, results[0].Kind)

	msgs := f.deliverer.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, s.ClientEmail, msgs[0].To)
	assert.Contains(t, msgs[0].Email.HTMLBody, s.AccessToken)

	sent, err := f.logs.KindsSent(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, sent[domain.ReminderGentle])

	// Same instant again: gentle is recorded, encouragement not yet due.
	results, err = f.svc.Tick(ctx, now, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeNoneDue, results[0].Outcome)
	assert.Len(t, f.deliverer.Messages(), 1)
}

func TestTick_WalksTheCadence(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	created := time.Now().UTC().Add(-30 * 24 * time.Hour)
	f.seed(t, testutil.WithCreatedAt(created))

	expect := []domain.ReminderKind{
		domain.ReminderGentle,
		domain.ReminderEncouragement,
		domain.ReminderFinal,
	}
	offsets := []time.Duration{
		2*24*time.Hour + time.Hour,
		5*24*time.Hour + time.Hour,
		7*24*time.Hour + time.Hour,
	}
	for i, kind := range expect {
		results, err := f.svc.Tick(ctx, created.Add(offsets[i]), false)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeSent, results[0].Outcome)
		assert.Equal(t, kind, results[0].Kind, "pass %d", i)
	}

	// Cadence exhausted.
	results, err := f.svc.Tick(ctx, created.Add(20*24*time.Hour), false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeNoneDue, results[0].Outcome)
	assert.Len(t, f.deliverer.Messages(), 3)
}

func TestTick_SuppressedByRecentActivity(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	f.seed(t,
		testutil.WithCreatedAt(now.Add(-3*24*time.Hour)),
		testutil.WithSessionStatus(domain.SessionInProgress),
		testutil.WithLastActivityAt(now.Add(-10*time.Minute)),
	)

	results, err := f.svc.Tick(ctx, now, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeSuppressed, results[0].Outcome)
	assert.Equal(t, cadence.SuppressRecentActivity, results[0].Suppressed)
	assert.Empty(t, f.deliverer.Messages())
}

func TestTick_SuppressedByExpiration(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	f.seed(t,
		testutil.WithCreatedAt(now.Add(-10*24*time.Hour)),
		testutil.WithExpiresAt(now.Add(-24*time.Hour)),
	)

	results, err := f.svc.Tick(ctx, now, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeSuppressed, results[0].Outcome)
	assert.Equal(t, cadence.SuppressExpired, results[0].Suppressed)
}

func TestTick_CompletedSessionsNotConsidered(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	f.seed(t,
		testutil.WithCreatedAt(now.Add(-10*24*time.Hour)),
		testutil.WithSessionStatus(domain.SessionCompleted),
	)

	results, err := f.svc.Tick(ctx, now, false)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTick_DryRunRecordsNothing(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	s := f.seed(t, testutil.WithCreatedAt(now.Add(-3*24*time.Hour)))

	results, err := f.svc.Tick(ctx, now, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeDryRun, results[0].Outcome)
	assert.Equal(t, domain.ReminderGentle, results[0].Kind)

	assert.Empty(t, f.deliverer.Messages())
	sent, err := f.logs.KindsSent(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, sent)
}

func TestTick_DeliveryFailureRollsBackLedger(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	s := f.seed(t, testutil.WithCreatedAt(now.Add(-3*24*time.Hour)))

	f.deliverer.Err = assert.AnError
	results, err := f.svc.Tick(ctx, now, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeError, results[0].Outcome)

	sent, err := f.logs.KindsSent(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, sent, "a failed delivery must not burn the ledger slot")

	// Transport recovers; the same reminder goes out on the next pass.
	f.deliverer.Err = nil
	results, err = f.svc.Tick(ctx, now, false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSent, results[0].Outcome)
}

func TestPreview_AnnotatesTimeline(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	s := f.seed(t, testutil.WithCreatedAt(now.Add(-3*24*time.Hour)))

	preview, err := f.svc.Preview(ctx, s.ID, now)
	require.NoError(t, err)
	require.Len(t, preview.Entries, 3)

	assert.True(t, preview.Entries[0].Due, "gentle at 2d is past")
	assert.False(t, preview.Entries[0].Sent)
	assert.False(t, preview.Entries[1].Due, "encouragement at 5d is future")
	require.NotNil(t, preview.Next)
	assert.Equal(t, domain.ReminderGentle, preview.Next.Kind)
	assert.Equal(t, cadence.SuppressNone, preview.Suppressed)
	assert.Equal(t, "Atlas Rebrand", preview.Project.Name)
}

func TestRenderPreview_CustomValidation(t *testing.T) {
	f := newReminderFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()
	s := f.seed(t)

	_, err := f.svc.RenderPreview(ctx, s.ID, domain.ReminderCustom, "", "", now)
	assert.Error(t, err)

	msg, err := f.svc.RenderPreview(ctx, s.ID, domain.ReminderCustom, "Checking in", "Need the signed SOW.", now)
	require.NoError(t, err)
	assert.Equal(t, "Checking in", msg.Subject)
	assert.Contains(t, msg.TextBody, "Need the signed SOW.")
}
