package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/providers"
)

func TestCacheInvalidationService_DropsMemberResponses(t *testing.T) {
	cache := NewMockCacheProvider()
	bus := NewMockEventBus()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "http:cache:member:m-1:abc", []byte("{}"), 60))
	require.NoError(t, cache.Set(ctx, "http:cache:member:m-2:def", []byte("{}"), 60))

	service := NewCacheInvalidationService(cache, bus)
	require.NoError(t, service.Start())
	defer service.Stop()

	record := &entities.HealthRecord{ID: "hr-1", MemberID: "m-1", SubmissionID: "sub-1"}
	require.NoError(t, bus.Publish(ctx, providers.EventChannelHealthRecords, entities.NewHealthRecordCreatedEvent(record)))

	assert.Eventually(t, func() bool {
		ok, _ := cache.Exists(ctx, "http:cache:member:m-1:abc")
		return !ok
	}, time.Second, 10*time.Millisecond)

	ok, _ := cache.Exists(ctx, "http:cache:member:m-2:def")
	assert.True(t, ok)
	assert.Contains(t, cache.Patterns(), "http:cache:member:m-1:*")
}

func TestCacheInvalidationService_GlobCharactersInMemberID(t *testing.T) {
	cache := NewMockCacheProvider()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "http:cache:member:m*:abc", []byte("{}"), 60))
	require.NoError(t, cache.Set(ctx, "http:cache:member:m-2:def", []byte("{}"), 60))
	require.NoError(t, cache.Set(ctx, "http:cache:member:m1:ghi", []byte("{}"), 60))

	service := NewCacheInvalidationService(cache, NewMockEventBus())
	require.NoError(t, service.InvalidateMemberCache(ctx, "m*"))

	ok, _ := cache.Exists(ctx, "http:cache:member:m*:abc")
	assert.False(t, ok)
	ok, _ = cache.Exists(ctx, "http:cache:member:m-2:def")
	assert.True(t, ok)
	ok, _ = cache.Exists(ctx, "http:cache:member:m1:ghi")
	assert.True(t, ok)

	require.NoError(t, service.InvalidateMemberCache(ctx, "m?"))
	ok, _ = cache.Exists(ctx, "http:cache:member:m1:ghi")
	assert.True(t, ok)
}

func TestCacheInvalidationService_StopWithoutStart(t *testing.T) {
	service := NewCacheInvalidationService(NewMockCacheProvider(), NewMockEventBus())
	service.Stop()
}

type fakeRefresher struct {
	calls    int
	products []*entities.Product
	err      error
}

func (f *fakeRefresher) Refresh(ctx context.Context) ([]*entities.Product, error) {
	f.calls++
	return f.products, f.err
}

func TestCacheWarmingService_WarmCache(t *testing.T) {
	refresher := &fakeRefresher{products: testCatalog()}
	service := NewCacheWarmingService(refresher, NewMockCacheProvider())

	require.NoError(t, service.WarmCache(context.Background()))
	assert.Equal(t, 1, refresher.calls)

	refresher.err = errors.New("postgres down")
	assert.Error(t, service.WarmCache(context.Background()))
}

func TestCacheWarmingService_InvalidateCache(t *testing.T) {
	cache := NewMockCacheProvider()
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "catalog:products", []byte("[]"), 60))
	require.NoError(t, cache.Set(ctx, "http:cache:products:abc", []byte("[]"), 60))
	require.NoError(t, cache.Set(ctx, "http:cache:member:m-1:abc", []byte("{}"), 60))

	service := NewCacheWarmingService(&fakeRefresher{}, cache)
	require.NoError(t, service.InvalidateCache(ctx))

	ok, _ := cache.Exists(ctx, "catalog:products")
	assert.False(t, ok)
	ok, _ = cache.Exists(ctx, "http:cache:products:abc")
	assert.False(t, ok)
	ok, _ = cache.Exists(ctx, "http:cache:member:m-1:abc")
	assert.True(t, ok)
}
