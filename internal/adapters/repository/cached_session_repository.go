package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
)

var _ domain.SessionRepository = (*CachedSessionRepository)(nil)

// CachedSessionRepository caches the per-day session rows, not any
// computed aggregate: the dashboard is always recomputed from source
// rows on every request.
type CachedSessionRepository struct {
	next  domain.SessionRepository
	cache *redis.Client
}

func NewCachedSessionRepository(next domain.SessionRepository, cache *redis.Client) *CachedSessionRepository {
	return &CachedSessionRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedSessionRepository) cacheKey(practitionerID string, day time.Time) string {
	return fmt.Sprintf("sessions:%s:%s", practitionerID, day.Format("2006-01-02"))
}

func (r *CachedSessionRepository) invalidate(ctx context.Context, practitionerID string, day time.Time) {
	if err := r.cache.Del(ctx, r.cacheKey(practitionerID, day)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for practitioner %s: %v", practitionerID, err)
	}
}

func (r *CachedSessionRepository) ListByPractitionerAndDay(ctx context.Context, practitionerID string, day time.Time) ([]domain.SessionRow, error) {
	key := r.cacheKey(practitionerID, day)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var rows []domain.SessionRow
		if err := json.Unmarshal([]byte(val), &rows); err == nil {
			return rows, nil
		}

		log.Printf("[CACHE] Corrupted data for practitioner %s, cleaning up key", practitionerID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	rows, err := r.next.ListByPractitionerAndDay(ctx, practitionerID, day)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rows); err == nil {
		if setErr := r.cache.Set(ctx, key, data, 5*time.Minute).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return rows, nil
}

func (r *CachedSessionRepository) GetByID(ctx context.Context, id string) (*domain.SessionRow, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedSessionRepository) Create(ctx context.Context, row *domain.SessionRow) error {
	if err := r.next.Create(ctx, row); err != nil {
		return err
	}
	r.invalidate(ctx, row.PractitionerID, row.StartsAt)
	return nil
}

func (r *CachedSessionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	row, err := r.next.GetByID(ctx, id)
	if err == nil && row != nil {
		defer r.invalidate(ctx, row.PractitionerID, row.StartsAt)
	}

	return r.next.UpdateStatus(ctx, id, status)
}
