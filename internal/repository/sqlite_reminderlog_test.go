package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nudgekit/nudge/internal/domain"
	"github.com/nudgekit/nudge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLog(sessionID string, kind domain.ReminderKind) *domain.ReminderLog {
	return &domain.ReminderLog{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Kind:      kind,
		Subject:   "Test subject",
		SentAt:    time.Now().UTC(),
	}
}

func seedSession(t *testing.T, sessions *SQLiteSessionRepo, projectID string) *domain.OnboardingSession {
	t.Helper()
	s := testutil.NewTestSession(projectID)
	require.NoError(t, sessions.Create(context.Background(), s))
	return s
}

func TestReminderLogRepo_RecordAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(database)
	sessions := NewSQLiteSessionRepo(database)
	logs := NewSQLiteReminderLogRepo(database)

	p := seedProject(t, projects)
	s := seedSession(t, sessions, p.ID)

	require.NoError(t, logs.Record(ctx, newLog(s.ID, domain.ReminderGentle)))
	require.NoError(t, logs.Record(ctx, newLog(s.ID, domain.ReminderEncouragement)))

	got, err := logs.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.ReminderGentle, got[0].Kind)
}

func TestReminderLogRepo_DuplicateKindRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(database)
	sessions := NewSQLiteSessionRepo(database)
	logs := NewSQLiteReminderLogRepo(database)

	p := seedProject(t, projects)
	s := seedSession(t, sessions, p.ID)

	require.NoError(t, logs.Record(ctx, newLog(s.ID, domain.ReminderGentle)))
	err := logs.Record(ctx, newLog(s.ID, domain.ReminderGentle))
	assert.ErrorIs(t, err, ErrAlreadySent)

	// A different session can still receive the same kind.
	other := seedSession(t, sessions, p.ID)
	assert.NoError(t, logs.Record(ctx, newLog(other.ID, domain.ReminderGentle)))
}

func TestReminderLogRepo_KindsSent(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(database)
	sessions := NewSQLiteSessionRepo(database)
	logs := NewSQLiteReminderLogRepo(database)

	p := seedProject(t, projects)
	s := seedSession(t, sessions, p.ID)

	sent, err := logs.KindsSent(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, sent)

	require.NoError(t, logs.Record(ctx, newLog(s.ID, domain.ReminderGentle)))
	require.NoError(t, logs.Record(ctx, newLog(s.ID, domain.ReminderFinal)))

	sent, err = logs.KindsSent(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, sent[domain.ReminderGentle])
	assert.True(t, sent[domain.ReminderFinal])
	assert.False(t, sent[domain.ReminderEncouragement])
}
