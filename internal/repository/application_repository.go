package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hotel-onboarding/internal/database"
	"hotel-onboarding/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationFilter struct {
	Status     application.Status
	Department string
	Search     string
	Limit      int
	Offset     int
}

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) error
	GetByID(ctx context.Context, id uuid.UUID, scope Scope) (application.Application, error)
	List(ctx context.Context, scope Scope, f ApplicationFilter) ([]application.Application, error)

	// UpdateStatusFrom performs the guarded transition: the row is updated
	// only if it still carries the expected current status and sits inside
	// the scope. Zero rows affected means the caller lost a race or the
	// status moved; the usecase maps that to a conflict.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to application.Status, scope Scope, reviewedBy *uuid.UUID, rejectionReason *string) (bool, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, property_id, department, position, first_name, last_name, email, phone,
	address, city, state, zip_code, work_authorized, employment_type, desired_start_date,
	status, rejection_reason, reviewed_by, reviewed_at, submitted_at`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_applications (`+applicationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		a.ID, a.PropertyID, a.Department, a.Position, a.FirstName, a.LastName, a.Email, a.Phone,
		a.Address, a.City, a.State, a.ZipCode, a.WorkAuthorized, a.EmploymentType, a.DesiredStartDate,
		a.Status, a.RejectionReason, a.ReviewedBy, a.ReviewedAt, a.SubmittedAt,
	)
	return err
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID, scope Scope) (application.Application, error) {
	ids := scope.idsOrNil()
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+`
		 FROM job_applications
		 WHERE id = $1 AND ($2::uuid[] IS NULL OR property_id = ANY($2))`,
		id, ids,
	)

	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) List(ctx context.Context, scope Scope, f ApplicationFilter) ([]application.Application, error) {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var status *string
	if f.Status != "" {
		s := string(f.Status)
		status = &s
	}
	var department *string
	if f.Department != "" {
		department = &f.Department
	}
	var search *string
	if f.Search != "" {
		s := "%" + f.Search + "%"
		search = &s
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM job_applications
		 WHERE ($1::uuid[] IS NULL OR property_id = ANY($1))
		   AND ($2::text IS NULL OR status = $2)
		   AND ($3::text IS NULL OR department = $3)
		   AND ($4::text IS NULL OR first_name ILIKE $4 OR last_name ILIKE $4 OR email ILIKE $4)
		 ORDER BY submitted_at DESC
		 LIMIT $5 OFFSET $6`,
		scope.idsOrNil(), status, department, search, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to application.Status, scope Scope, reviewedBy *uuid.UUID, rejectionReason *string) (bool, error) {
	now := time.Now().UTC()
	affected, err := r.db.Exec(ctx,
		`UPDATE job_applications
		 SET status = $1, rejection_reason = $2, reviewed_by = $3, reviewed_at = $4
		 WHERE id = $5 AND status = $6 AND ($7::uuid[] IS NULL OR property_id = ANY($7))`,
		to, rejectionReason, reviewedBy, now, id, from, scope.idsOrNil(),
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (application.Application, error) {
	var a application.Application
	err := row.Scan(
		&a.ID, &a.PropertyID, &a.Department, &a.Position, &a.FirstName, &a.LastName, &a.Email, &a.Phone,
		&a.Address, &a.City, &a.State, &a.ZipCode, &a.WorkAuthorized, &a.EmploymentType, &a.DesiredStartDate,
		&a.Status, &a.RejectionReason, &a.ReviewedBy, &a.ReviewedAt, &a.SubmittedAt,
	)
	if err != nil {
		return application.Application{}, err
	}
	return a, nil
}
