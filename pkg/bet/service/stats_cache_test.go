package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/petegordon/mferoll-sub000/pkg/bet"
	"github.com/petegordon/mferoll-sub000/pkg/bet/service/mocks"
	"github.com/petegordon/mferoll-sub000/pkg/config"
	"github.com/petegordon/mferoll-sub000/pkg/statscache"
)

func setupRedisStatsCache(t *testing.T) (*statscache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return statscache.New(client, &config.CacheConfig{TTL: time.Minute}, zap.NewNop()), mr
}

// An event applied while stats are being computed must not leave the
// pre-event numbers in the cache.
func TestBetService_GetPlayerStats_EventDuringComputeIsNotCachedStale(t *testing.T) {
	ctx := context.Background()
	cache, mr := setupRedisStatsCache(t)

	pending := []*bet.Bet{{RequestID: "1", Player: testPlayer, Amount: "1000"}}
	settled := []*bet.Bet{{RequestID: "1", Player: testPlayer, Amount: "1000", Settled: true, Won: true, Payout: "2500"}}

	storeMock := mocks.NewStore(t)
	storeMock.EXPECT().ListBetsByPlayer(ctx, testPlayer, 0, 0).
		RunAndReturn(func(ctx context.Context, player string, limit, offset int) ([]*bet.Bet, error) {
			// the settlement lands after the read snapshot was taken
			cache.OnEvent(ctx, bet.NewSettledEvent(&bet.Settlement{RequestID: "1", Player: testPlayer}))
			return pending, nil
		}).Once()
	storeMock.EXPECT().ListBetsByPlayer(ctx, testPlayer, 0, 0).Return(settled, nil).Once()

	svc := NewService(storeMock, cache, zap.NewNop())

	first, err := svc.GetPlayerStats(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, 1, first.PendingBets)
	assert.False(t, mr.Exists(cache.Key(testPlayer)), "stale stats were written back")

	second, err := svc.GetPlayerStats(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Wins)
	assert.True(t, mr.Exists(cache.Key(testPlayer)))

	// served from cache; the store mock has no further expectations
	third, err := svc.GetPlayerStats(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, second, third)
}
