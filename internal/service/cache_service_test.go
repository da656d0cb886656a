package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/schedlume-api/internal/models"
)

// setHookRepo runs hook after every successful Set.
type setHookRepo struct {
	*cacheRepoStub
	hook func()
}

func (r *setHookRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	err := r.cacheRepoStub.Set(ctx, key, value, ttl)
	if r.hook != nil {
		r.hook()
	}
	return err
}

func TestCacheServiceSetCurrent(t *testing.T) {
	repo := newCacheRepoStub()
	cache := NewCacheService(repo, nil, 0, nil, true)
	ctx := context.Background()
	key := DayKey("2024-01-01")

	gen := cache.Generation()
	assert.True(t, cache.SetCurrent(ctx, key, &models.DaySchedule{}, 0, gen))
	assert.Contains(t, repo.values, key)

	cache.InvalidateDays(ctx, "2024-01-01")
	assert.NotEqual(t, gen, cache.Generation())
	assert.False(t, cache.SetCurrent(ctx, key, &models.DaySchedule{}, 0, gen))
	assert.NotContains(t, repo.values, key)
}

func TestCacheServiceSetCurrentDropsValueInvalidatedDuringWrite(t *testing.T) {
	repo := &setHookRepo{cacheRepoStub: newCacheRepoStub()}
	cache := NewCacheService(repo, nil, 0, nil, true)
	ctx := context.Background()
	key := DayKey("2024-01-01")
	repo.hook = func() {
		repo.hook = nil
		cache.InvalidateDays(ctx, "2024-01-02")
	}

	assert.False(t, cache.SetCurrent(ctx, key, &models.DaySchedule{}, 0, cache.Generation()))
	assert.NotContains(t, repo.values, key)
}

func TestCacheServiceDisabledNeverStores(t *testing.T) {
	repo := newCacheRepoStub()
	cache := NewCacheService(repo, nil, 0, nil, false)

	assert.False(t, cache.SetCurrent(context.Background(), DayKey("2024-01-01"), &models.DaySchedule{}, 0, cache.Generation()))
	assert.Empty(t, repo.values)
}
