package repository

import (
	"context"
	"database/sql"
	"errors"

	"hotel-onboarding/internal/database"
	"hotel-onboarding/internal/domain/property"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrPropertyNotFound = errors.New("property not found")

type PropertyRepository interface {
	Create(ctx context.Context, p property.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (property.Property, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (property.Property, error)
	List(ctx context.Context) ([]property.Property, error)
	Update(ctx context.Context, p property.Property) error
	AssignManager(ctx context.Context, propertyID, userID uuid.UUID) error
	UnassignManager(ctx context.Context, propertyID, userID uuid.UUID) error
	ManagerPropertyIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type PostgresPropertyRepository struct {
	db database.DB
}

func NewPostgresPropertyRepository(db database.DB) *PostgresPropertyRepository {
	return &PostgresPropertyRepository{db: db}
}

const propertyColumns = `id, name, address, city, state, zip_code, phone, is_active, created_at`

func (r *PostgresPropertyRepository) Create(ctx context.Context, p property.Property) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO properties (`+propertyColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Address, p.City, p.State, p.ZipCode, p.Phone, p.IsActive, p.CreatedAt,
	)
	return err
}

func (r *PostgresPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (property.Property, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)
	p, err := scanProperty(row)
	if err != nil {
		return property.Property{}, err
	}
	p.ManagerIDs, err = r.managerIDs(ctx, p.ID)
	if err != nil {
		return property.Property{}, err
	}
	return p, nil
}

func (r *PostgresPropertyRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (property.Property, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1 AND is_active`, id)
	return scanProperty(row)
}

func (r *PostgresPropertyRepository) List(ctx context.Context) ([]property.Property, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]property.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPropertyRepository) Update(ctx context.Context, p property.Property) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE properties
		 SET name = $1, address = $2, city = $3, state = $4, zip_code = $5, phone = $6, is_active = $7
		 WHERE id = $8`,
		p.Name, p.Address, p.City, p.State, p.ZipCode, p.Phone, p.IsActive, p.ID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PostgresPropertyRepository) AssignManager(ctx context.Context, propertyID, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO property_managers (property_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT (property_id, user_id) DO NOTHING`,
		propertyID, userID,
	)
	return err
}

func (r *PostgresPropertyRepository) UnassignManager(ctx context.Context, propertyID, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM property_managers WHERE property_id = $1 AND user_id = $2`,
		propertyID, userID,
	)
	return err
}

func (r *PostgresPropertyRepository) ManagerPropertyIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT property_id FROM property_managers WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPropertyRepository) managerIDs(ctx context.Context, propertyID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM property_managers WHERE property_id = $1`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProperty(row scanner) (property.Property, error) {
	var p property.Property
	err := row.Scan(&p.ID, &p.Name, &p.Address, &p.City, &p.State, &p.ZipCode, &p.Phone, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return property.Property{}, ErrPropertyNotFound
		}
		return property.Property{}, err
	}
	return p, nil
}
