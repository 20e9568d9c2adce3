package repository

import (
	"context"

	"hotel-onboarding/internal/database"

	"github.com/google/uuid"
)

type DashboardCounts struct {
	ApplicationsByStatus map[string]int `json:"applications_by_status"`
	Employees            int            `json:"employees"`
	SessionsInProgress   int            `json:"sessions_in_progress"`
	SessionsCompleted    int            `json:"sessions_completed"`
}

type PropertyPending struct {
	PropertyID   uuid.UUID `json:"property_id"`
	PropertyName string    `json:"property_name"`
	Pending      int       `json:"pending"`
}

type DashboardRepository interface {
	Counts(ctx context.Context, scope Scope) (DashboardCounts, error)

	// PendingByProperty feeds the daily summary email.
	PendingByProperty(ctx context.Context) ([]PropertyPending, error)
}

type PostgresDashboardRepository struct {
	db database.DB
}

func NewPostgresDashboardRepository(db database.DB) *PostgresDashboardRepository {
	return &PostgresDashboardRepository{db: db}
}

func (r *PostgresDashboardRepository) Counts(ctx context.Context, scope Scope) (DashboardCounts, error) {
	counts := DashboardCounts{ApplicationsByStatus: map[string]int{}}
	ids := scope.idsOrNil()

	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(*)
		 FROM job_applications
		 WHERE ($1::uuid[] IS NULL OR property_id = ANY($1))
		 GROUP BY status`,
		ids,
	)
	if err != nil {
		return DashboardCounts{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return DashboardCounts{}, err
		}
		counts.ApplicationsByStatus[status] = n
	}
	if err := rows.Err(); err != nil {
		return DashboardCounts{}, err
	}

	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM employees WHERE ($1::uuid[] IS NULL OR property_id = ANY($1))`, ids)
	if err := row.Scan(&counts.Employees); err != nil {
		return DashboardCounts{}, err
	}

	row = r.db.QueryRow(ctx,
		`SELECT
		   COUNT(*) FILTER (WHERE s.status = 'in_progress'),
		   COUNT(*) FILTER (WHERE s.status = 'completed')
		 FROM onboarding_sessions s
		 JOIN employees e ON e.id = s.employee_id
		 WHERE ($1::uuid[] IS NULL OR e.property_id = ANY($1))`,
		ids,
	)
	if err := row.Scan(&counts.SessionsInProgress, &counts.SessionsCompleted); err != nil {
		return DashboardCounts{}, err
	}

	return counts, nil
}

func (r *PostgresDashboardRepository) PendingByProperty(ctx context.Context) ([]PropertyPending, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.name, COUNT(a.id)
		 FROM properties p
		 LEFT JOIN job_applications a ON a.property_id = p.id AND a.status = 'pending'
		 WHERE p.is_active
		 GROUP BY p.id, p.name
		 ORDER BY p.name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PropertyPending, 0)
	for rows.Next() {
		var pp PropertyPending
		if err := rows.Scan(&pp.PropertyID, &pp.PropertyName, &pp.Pending); err != nil {
			return nil, err
		}
		out = append(out, pp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
