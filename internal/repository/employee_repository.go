package repository

import (
	"context"
	"database/sql"
	"errors"

	"hotel-onboarding/internal/database"
	"hotel-onboarding/internal/domain/employee"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrEmployeeExists surfaces the unique constraint on application_id:
	// at most one employee record per approved application.
	ErrEmployeeExists = errors.New("employee already exists for application")
)

type EmployeeRepository interface {
	Create(ctx context.Context, e employee.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (employee.Employee, error)
	GetByApplicationID(ctx context.Context, applicationID uuid.UUID) (employee.Employee, error)
}

type PostgresEmployeeRepository struct {
	db database.DB
}

func NewPostgresEmployeeRepository(db database.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

const employeeColumns = `id, application_id, property_id, first_name, last_name, email,
	job_title, start_date, start_time, pay_rate, pay_frequency, benefits_eligible, supervisor, created_at`

func (r *PostgresEmployeeRepository) Create(ctx context.Context, e employee.Employee) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO employees (`+employeeColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		e.ID, e.ApplicationID, e.PropertyID, e.FirstName, e.LastName, e.Email,
		e.Offer.JobTitle, e.Offer.StartDate, e.Offer.StartTime, e.Offer.PayRate,
		e.Offer.PayFrequency, e.Offer.BenefitsEligible, e.Offer.Supervisor, e.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmployeeExists
		}
		return err
	}
	return nil
}

func (r *PostgresEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (employee.Employee, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	return scanEmployee(row)
}

func (r *PostgresEmployeeRepository) GetByApplicationID(ctx context.Context, applicationID uuid.UUID) (employee.Employee, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE application_id = $1`, applicationID)
	return scanEmployee(row)
}

func scanEmployee(row scanner) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.ApplicationID, &e.PropertyID, &e.FirstName, &e.LastName, &e.Email,
		&e.Offer.JobTitle, &e.Offer.StartDate, &e.Offer.StartTime, &e.Offer.PayRate,
		&e.Offer.PayFrequency, &e.Offer.BenefitsEligible, &e.Offer.Supervisor, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}
