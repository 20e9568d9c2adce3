package seeder

import (
	"context"

	"hotel-onboarding/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
