// File: database/repository/service/service_cache.go
package serviceRepo

import (
	"context"
	"time"

	"github.com/FlareMindsTech/righttouch-backend/models"

	"github.com/go-redis/redis/v8"
)

const (
	serviceNameKeyPrefix = "service:name:"
	serviceNameTTL       = 10 * time.Minute
)

// CachedServiceRepo layers a Redis cache over a ServiceRepository. The
// catalog changes rarely, so service names are cached with a short TTL to
// keep the job feed from hitting MongoDB on every read. Cache errors fall
// through to the underlying repository.
type CachedServiceRepo struct {
	inner ServiceRepository
	cache *redis.Client
}

func NewCachedServiceRepo(inner ServiceRepository, cache *redis.Client) ServiceRepository {
	return &CachedServiceRepo{inner: inner, cache: cache}
}

func (r *CachedServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	return r.inner.GetByID(ctx, id)
}

func (r *CachedServiceRepo) GetNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	missing := []string{}
	for _, id := range ids {
		if id == "" {
			continue
		}
		val, err := r.cache.Get(ctx, serviceNameKeyPrefix+id).Result()
		if err == nil {
			names[id] = val
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return names, nil
	}

	fetched, err := r.inner.GetNames(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, name := range fetched {
		names[id] = name
		r.cache.Set(ctx, serviceNameKeyPrefix+id, name, serviceNameTTL)
	}
	return names, nil
}
