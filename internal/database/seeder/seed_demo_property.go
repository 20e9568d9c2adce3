package seeder

import (
	"context"

	"hotel-onboarding/internal/database"
)

// DemoPropertySeeder gives a fresh install one active property so the
// public application form has somewhere to point.
type DemoPropertySeeder struct{}

func (DemoPropertySeeder) Name() string { return "demo_property" }

func (DemoPropertySeeder) Run(ctx context.Context, db database.DB) error {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM properties`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := db.Exec(ctx,
		`INSERT INTO properties (id, name, address, city, state, zip_code, phone, is_active)
		 VALUES (gen_random_uuid(), 'Grand Vista Hotel', '100 Harbor Way', 'San Diego', 'CA', '92101', '619-555-0100', TRUE)`,
	)
	return err
}
