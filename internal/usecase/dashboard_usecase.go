package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"hotel-onboarding/internal/repository"
)

// DashboardCache is the narrow slice of the redis client the dashboard
// needs; a nil cache means every read hits the database.
type DashboardCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

const dashboardTTL = 60 * time.Second

type DashboardUsecase interface {
	Counts(ctx context.Context, actor Actor) (repository.DashboardCounts, error)
}

type DashboardService struct {
	repo  repository.DashboardRepository
	cache DashboardCache
}

func NewDashboardUsecase(repo repository.DashboardRepository, cache DashboardCache) *DashboardService {
	return &DashboardService{repo: repo, cache: cache}
}

func (s *DashboardService) Counts(ctx context.Context, actor Actor) (repository.DashboardCounts, error) {
	key := cacheKey(actor)

	if s.cache != nil {
		var cached repository.DashboardCounts
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	counts, err := s.repo.Counts(ctx, actor.Scope())
	if err != nil {
		return repository.DashboardCounts{}, ErrInternal
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, counts, dashboardTTL)
	}
	return counts, nil
}

// cacheKey is stable for a given scope: HR shares one snapshot, each
// distinct manager assignment set gets its own.
func cacheKey(actor Actor) string {
	scope := actor.Scope()
	if scope.All {
		return "dashboard:all"
	}
	ids := make([]string, 0, len(scope.PropertyIDs))
	for _, id := range scope.PropertyIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return "dashboard:" + strings.Join(ids, ",")
}
