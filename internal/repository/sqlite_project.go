package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nudgekit/nudge/internal/db"
	"github.com/nudgekit/nudge/internal/domain"
)

// projectColumns is the canonical SELECT column list for client_projects.
const projectColumns = `id, short_id, name, priority, budget, status, archived_at, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.ClientProject) error {
	query := `INSERT INTO client_projects (id, short_id, name, priority, budget, status, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ShortID,
		p.Name,
		string(p.Priority),
		nullableFloatToValue(p.Budget),
		string(p.Status),
		nullableTimeToString(p.ArchivedAt),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting client project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.ClientProject, error) {
	query := `SELECT ` + projectColumns + ` FROM client_projects WHERE id = ?`
	return r.scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProjectRepo) GetByShortID(ctx context.Context, shortID string) (*domain.ClientProject, error) {
	query := `SELECT ` + projectColumns + ` FROM client_projects WHERE short_id = ?`
	return r.scanProject(r.db.QueryRowContext(ctx, query, shortID))
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.ClientProject, error) {
	query := `SELECT ` + projectColumns + ` FROM client_projects`
	if !includeArchived {
		query += ` WHERE status != 'archived'`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing client projects: %w", err)
	}
	defer rows.Close()
	return r.scanProjects(rows)
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.ClientProject) error {
	query := `UPDATE client_projects
		SET short_id = ?, name = ?, priority = ?, budget = ?, status = ?, archived_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.ShortID,
		p.Name,
		string(p.Priority),
		nullableFloatToValue(p.Budget),
		string(p.Status),
		nullableTimeToString(p.ArchivedAt),
		nowUTC(),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client project: %w", err)
	}
	return requireRowAffected(res, "client project")
}

func (r *SQLiteProjectRepo) SetStatus(ctx context.Context, id string, status domain.ProjectStatus) error {
	query := `UPDATE client_projects SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(status), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("setting client project status: %w", err)
	}
	return requireRowAffected(res, "client project")
}

func (r *SQLiteProjectRepo) Archive(ctx context.Context, id string) error {
	query := `UPDATE client_projects SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`
	now := nowUTC()
	res, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving client project: %w", err)
	}
	return requireRowAffected(res, "client project")
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM client_projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting client project: %w", err)
	}
	return requireRowAffected(res, "client project")
}

// requireRowAffected maps a zero-row write to ErrNotFound.
func requireRowAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}

func (r *SQLiteProjectRepo) scanProject(row *sql.Row) (*domain.ClientProject, error) {
	var p domain.ClientProject
	var priority, status, createdAtStr, updatedAtStr string
	var budget sql.NullFloat64
	var archivedAt sql.NullString

	err := row.Scan(&p.ID, &p.ShortID, &p.Name, &priority, &budget, &status, &archivedAt, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("client project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning client project: %w", err)
	}
	return r.populateProject(&p, priority, status, budget, archivedAt, createdAtStr, updatedAtStr)
}

func (r *SQLiteProjectRepo) scanProjects(rows *sql.Rows) ([]*domain.ClientProject, error) {
	var projects []*domain.ClientProject
	for rows.Next() {
		var p domain.ClientProject
		var priority, status, createdAtStr, updatedAtStr string
		var budget sql.NullFloat64
		var archivedAt sql.NullString

		if err := rows.Scan(&p.ID, &p.ShortID, &p.Name, &priority, &budget, &status, &archivedAt, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning client project row: %w", err)
		}
		project, err := r.populateProject(&p, priority, status, budget, archivedAt, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) populateProject(p *domain.ClientProject, priority, status string, budget sql.NullFloat64, archivedAt sql.NullString, createdAtStr, updatedAtStr string) (*domain.ClientProject, error) {
	p.Priority = domain.ProjectPriority(priority)
	p.Status = domain.ProjectStatus(status)
	if budget.Valid {
		b := budget.Float64
		p.Budget = &b
	}
	p.ArchivedAt = parseNullableTime(archivedAt)

	var err error
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return p, nil
}
