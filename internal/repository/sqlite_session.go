package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nudgekit/nudge/internal/db"
	"github.com/nudgekit/nudge/internal/domain"
)

// sessionColumns is the canonical SELECT column list for onboarding_sessions.
const sessionColumns = `id, project_id, client_name, client_email, access_token, status,
		cadence_profile, completion_percentage, current_step, total_steps,
		last_activity_at, expires_at, created_at, updated_at`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.OnboardingSession) error {
	query := `INSERT INTO onboarding_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ProjectID,
		s.ClientName,
		s.ClientEmail,
		s.AccessToken,
		string(s.Status),
		string(s.CadenceProfile),
		s.CompletionPercentage,
		s.CurrentStep,
		s.TotalSteps,
		nullableTimeToString(s.LastActivityAt),
		nullableTimeToString(s.ExpiresAt),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting onboarding session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.OnboardingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM onboarding_sessions WHERE id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSessionRepo) GetByAccessToken(ctx context.Context, token string) (*domain.OnboardingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM onboarding_sessions WHERE access_token = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, token))
}

func (r *SQLiteSessionRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.OnboardingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM onboarding_sessions WHERE project_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions by project: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListRemindable(ctx context.Context) ([]*domain.OnboardingSession, error) {
	// Sessions under a paused project stay out of reminder passes until
	// the project resumes.
	query := `SELECT ` + sessionColumns + ` FROM onboarding_sessions
		WHERE status IN ('pending', 'in_progress')
		  AND project_id NOT IN (SELECT id FROM client_projects WHERE status = 'paused')
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing remindable sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.OnboardingSession) error {
	query := `UPDATE onboarding_sessions
		SET client_name = ?, client_email = ?, status = ?, cadence_profile = ?,
			completion_percentage = ?, current_step = ?, total_steps = ?,
			last_activity_at = ?, expires_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.ClientName,
		s.ClientEmail,
		string(s.Status),
		string(s.CadenceProfile),
		s.CompletionPercentage,
		s.CurrentStep,
		s.TotalSteps,
		nullableTimeToString(s.LastActivityAt),
		nullableTimeToString(s.ExpiresAt),
		nowUTC(),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating onboarding session: %w", err)
	}
	return requireRowAffected(res, "onboarding session")
}

func (r *SQLiteSessionRepo) SetStatus(ctx context.Context, id string, status domain.SessionStatus) error {
	query := `UPDATE onboarding_sessions SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(status), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("setting session status: %w", err)
	}
	return requireRowAffected(res, "onboarding session")
}

func (r *SQLiteSessionRepo) TouchActivity(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE onboarding_sessions SET last_activity_at = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("touching session activity: %w", err)
	}
	return requireRowAffected(res, "onboarding session")
}

func (r *SQLiteSessionRepo) UpdateProgress(ctx context.Context, id string, completionPct, currentStep, totalSteps int) error {
	now := nowUTC()
	query := `UPDATE onboarding_sessions
		SET completion_percentage = ?, current_step = ?, total_steps = ?,
			last_activity_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, completionPct, currentStep, totalSteps, now, now, id)
	if err != nil {
		return fmt.Errorf("updating session progress: %w", err)
	}
	return requireRowAffected(res, "onboarding session")
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM onboarding_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting onboarding session: %w", err)
	}
	return requireRowAffected(res, "onboarding session")
}

func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.OnboardingSession, error) {
	var s domain.OnboardingSession
	var status, profile, createdAtStr, updatedAtStr string
	var lastActivity, expires sql.NullString

	err := row.Scan(
		&s.ID, &s.ProjectID, &s.ClientName, &s.ClientEmail, &s.AccessToken, &status,
		&profile, &s.CompletionPercentage, &s.CurrentStep, &s.TotalSteps,
		&lastActivity, &expires, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("onboarding session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning onboarding session: %w", err)
	}
	return r.populateSession(&s, status, profile, lastActivity, expires, createdAtStr, updatedAtStr)
}

func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.OnboardingSession, error) {
	var sessions []*domain.OnboardingSession
	for rows.Next() {
		var s domain.OnboardingSession
		var status, profile, createdAtStr, updatedAtStr string
		var lastActivity, expires sql.NullString

		err := rows.Scan(
			&s.ID, &s.ProjectID, &s.ClientName, &s.ClientEmail, &s.AccessToken, &status,
			&profile, &s.CompletionPercentage, &s.CurrentStep, &s.TotalSteps,
			&lastActivity, &expires, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		session, parseErr := r.populateSession(&s, status, profile, lastActivity, expires, createdAtStr, updatedAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) populateSession(s *domain.OnboardingSession, status, profile string, lastActivity, expires sql.NullString, createdAtStr, updatedAtStr string) (*domain.OnboardingSession, error) {
	s.Status = domain.SessionStatus(status)
	s.CadenceProfile = domain.CadenceProfile(profile)
	s.LastActivityAt = parseNullableTime(lastActivity)
	s.ExpiresAt = parseNullableTime(expires)

	var err error
	s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return s, nil
}
