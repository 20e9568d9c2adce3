package seeder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"hotel-onboarding/internal/database"

	"golang.org/x/crypto/bcrypt"
)

// HRAccountSeeder creates the bootstrap HR login when the users table has
// no HR account yet. Credentials come from SEED_HR_EMAIL / SEED_HR_PASSWORD;
// without them the seeder is a no-op so production never gets a default
// password.
type HRAccountSeeder struct{}

func (HRAccountSeeder) Name() string { return "hr_account" }

func (HRAccountSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_HR_EMAIL")))
	password := os.Getenv("SEED_HR_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE role = 'hr')`).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, first_name, last_name, is_active)
		 VALUES (gen_random_uuid(), $1, $2, 'hr', 'HR', 'Admin', TRUE)
		 ON CONFLICT (email) DO NOTHING`,
		email, string(hash),
	)
	return err
}
