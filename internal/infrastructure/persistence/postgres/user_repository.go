package postgres

import (
	"context"
	"database/sql"
	"errors"

	"hotel-onboarding/internal/database"
	"hotel-onboarding/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository struct {
	db database.DB

	stmtCreate     *sql.Stmt
	stmtGetByID    *sql.Stmt
	stmtGetByEmail *sql.Stmt
	stmtExists     *sql.Stmt
	stmtUpdate     *sql.Stmt
	stmtListByRole *sql.Stmt
	stmtProperties *sql.Stmt
}

func NewUserRepository(db database.DB) (*UserRepository, error) {
	r := &UserRepository{db: db}
	sqldb := db.SQLDB()
	if sqldb == nil {
		return nil, errors.New("nil sql db")
	}

	var err error
	r.stmtCreate, err = sqldb.PrepareContext(
		context.Background(),
		`INSERT INTO users (id, email, password_hash, role, first_name, last_name, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByID, err = sqldb.PrepareContext(
		context.Background(),
		`SELECT id, email, password_hash, role, first_name, last_name, is_active, created_at, updated_at
		 FROM users WHERE id = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByEmail, err = sqldb.PrepareContext(
		context.Background(),
		`SELECT id, email, password_hash, role, first_name, last_name, is_active, created_at, updated_at
		 FROM users WHERE email = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtExists, err = sqldb.PrepareContext(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtUpdate, err = sqldb.PrepareContext(
		context.Background(),
		`UPDATE users
		 SET email = $1, password_hash = $2, first_name = $3, last_name = $4, is_active = $5, updated_at = NOW()
		 WHERE id = $6`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtListByRole, err = sqldb.PrepareContext(
		context.Background(),
		`SELECT id, email, password_hash, role, first_name, last_name, is_active, created_at, updated_at
		 FROM users WHERE role = $1 ORDER BY email ASC`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtProperties, err = sqldb.PrepareContext(
		context.Background(),
		`SELECT property_id FROM property_managers WHERE user_id = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)
	closeStmt(r.stmtExists)
	closeStmt(r.stmtUpdate)
	closeStmt(r.stmtListByRole)
	closeStmt(r.stmtProperties)

	return firstErr
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.stmtCreate.ExecContext(ctx, u.ID, u.Email, u.PasswordHash, u.Role, u.FirstName, u.LastName, u.IsActive)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.stmtGetByID.QueryRowContext(ctx, id)
	u, err := scanUser(row)
	if err != nil {
		return user.User{}, err
	}
	u.PropertyIDs, err = r.propertyIDs(ctx, u.ID)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.stmtGetByEmail.QueryRowContext(ctx, email)
	u, err := scanUser(row)
	if err != nil {
		return user.User{}, err
	}
	u.PropertyIDs, err = r.propertyIDs(ctx, u.ID)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.stmtExists.QueryRowContext(ctx, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) Update(ctx context.Context, u user.User) error {
	res, err := r.stmtUpdate.ExecContext(ctx, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.IsActive, u.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	rows, err := r.stmtListByRole.QueryContext(ctx, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].PropertyIDs, err = r.propertyIDs(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *UserRepository) propertyIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.stmtProperties.QueryContext(ctx, userID)
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

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
