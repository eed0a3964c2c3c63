package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/nudgekit/nudge/internal/db"
	"github.com/nudgekit/nudge/internal/domain"
)

// SQLiteReminderLogRepo implements ReminderLogRepo using a SQLite database.
type SQLiteReminderLogRepo struct {
	db db.DBTX
}

// NewSQLiteReminderLogRepo creates a new SQLiteReminderLogRepo.
func NewSQLiteReminderLogRepo(conn db.DBTX) *SQLiteReminderLogRepo {
	return &SQLiteReminderLogRepo{db: conn}
}

func (r *SQLiteReminderLogRepo) Record(ctx context.Context, l *domain.ReminderLog) error {
	query := `INSERT INTO reminder_logs (id, session_id, kind, subject, sent_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.SessionID,
		string(l.Kind),
		l.Subject,
		l.SentAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s reminder for session %s: %w", l.Kind, l.SessionID, ErrAlreadySent)
		}
		return fmt.Errorf("recording reminder log: %w", err)
	}
	return nil
}

func (r *SQLiteReminderLogRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.ReminderLog, error) {
	query := `SELECT id, session_id, kind, subject, sent_at
		FROM reminder_logs WHERE session_id = ? ORDER BY sent_at`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing reminder logs: %w", err)
	}
	defer rows.Close()

	var logs []*domain.ReminderLog
	for rows.Next() {
		var l domain.ReminderLog
		var kind, sentAtStr string
		if err := rows.Scan(&l.ID, &l.SessionID, &kind, &l.Subject, &sentAtStr); err != nil {
			return nil, fmt.Errorf("scanning reminder log row: %w", err)
		}
		l.Kind = domain.ReminderKind(kind)
		l.SentAt, err = time.Parse(time.RFC3339, sentAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing sent_at: %w", err)
		}
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reminder logs: %w", err)
	}
	return logs, nil
}

func (r *SQLiteReminderLogRepo) KindsSent(ctx context.Context, sessionID string) (map[domain.ReminderKind]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT kind FROM reminder_logs WHERE session_id = ?`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying sent kinds: %w", err)
	}
	defer rows.Close()

	sent := make(map[domain.ReminderKind]bool)
	for rows.Next() {
		var kind string
		if err := rows.Scan(&kind); err != nil {
			return nil, fmt.Errorf("scanning sent kind: %w", err)
		}
		sent[domain.ReminderKind(kind)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sent kinds: %w", err)
	}
	return sent, nil
}
