package indexer

import (
	"context"
	"errors"
	"testing"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/petegordon/mferoll-sub000/pkg/bet"
	"github.com/petegordon/mferoll-sub000/pkg/config"
	"github.com/petegordon/mferoll-sub000/pkg/ethereum/contracts"
)

type harness struct {
	engine *Engine
	chain  *fakeChain
	store  *fakeStore
	events *recorder
	game   *contracts.DiceGame
}

func newHarness(t *testing.T, cfg config.IndexerConfig) *harness {
	t.Helper()

	game, err := contracts.NewDiceGame()
	require.NoError(t, err)

	chain := &fakeChain{}
	store := newFakeStore()
	events := &recorder{}
	applier := NewApplier(store, events, zap.NewNop())

	engine, err := NewEngine(cfg, contractAddr.Hex(), chain, store, applier, zap.NewNop())
	require.NoError(t, err)

	return &harness{engine: engine, chain: chain, store: store, events: events, game: game}
}

func defaultIndexerConfig() config.IndexerConfig {
	return config.IndexerConfig{
		PollInterval:   10 * time.Millisecond,
		LookbackBlocks: 1000,
		MaxBlockRange:  2000,
		TickTimeout:    time.Second,
	}
}

func TestEngine_Tick_PlacementThenSettlement(t *testing.T) {
	h := newHarness(t, defaultIndexerConfig())
	ctx := context.Background()

	h.store.setCheckpoint(99)
	h.chain.setHead(105)
	h.chain.addLogs(placedLog(t, h.game, 7, playerAA, "1000000000000000000", 102, 0))

	require.NoError(t, h.engine.Tick(ctx))

	got, ok := h.store.bet("7")
	require.True(t, ok, "bet 7 should be persisted")
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", got.Player)
	assert.Equal(t, "1000000000000000000", got.Amount)
	assert.False(t, got.Settled)
	assert.Equal(t, uint64(105), h.store.lastBlock(t))

	events := h.events.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, bet.EventBetPlaced, events[0].Type)
	assert.Equal(t, "7", events[0].Placement.RequestID)
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", events[0].Player())

	// next tick covers [106, 110]
	h.chain.setHead(110)
	h.chain.addLogs(settledLog(t, h.game, 7, playerAA, false, 0, 108, 0))

	require.NoError(t, h.engine.Tick(ctx))

	got, _ = h.store.bet("7")
	assert.True(t, got.Settled)
	assert.False(t, got.Won)
	assert.Equal(t, uint8(3), got.Die1)
	assert.Equal(t, uint8(4), got.Die2)
	assert.Equal(t, "0", got.Payout)
	assert.Equal(t, "1000000000000000000", got.Amount, "settlement must not touch placement fields")
	assert.Equal(t, uint64(110), h.store.lastBlock(t))

	q := h.chain.lastQuery()
	assert.Equal(t, uint64(106), q.FromBlock.Uint64())
	assert.Equal(t, uint64(110), q.ToBlock.Uint64())
	assert.Equal(t, []common.Address{contractAddr}, q.Addresses)

	events = h.events.snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, bet.EventBetSettled, events[1].Type)
	assert.Equal(t, "7", events[1].Settlement.RequestID)
}

func TestEngine_Tick_AppliesPlacementsBeforeSettlements(t *testing.T) {
	h := newHarness(t, defaultIndexerConfig())

	h.store.setCheckpoint(0)
	h.chain.setHead(20)
	// settlement of bet 2 is emitted in an earlier block than placement of bet 3
	h.chain.addLogs(
		settledLog(t, h.game, 2, playerAA, true, 150, 11, 1),
		placedLog(t, h.game, 2, playerAA, "100", 10, 0),
		placedLog(t, h.game, 3, playerBB, "200", 12, 0),
	)

	require.NoError(t, h.engine.Tick(context.Background()))

	events := h.events.snapshot()
	require.Len(t, events, 3)
	assert.Equal(t, bet.EventBetPlaced, events[0].Type)
	assert.Equal(t, "2", events[0].RequestID())
	assert.Equal(t, bet.EventBetPlaced, events[1].Type)
	assert.Equal(t, "3", events[1].RequestID())
	assert.Equal(t, bet.EventBetSettled, events[2].Type)
	assert.Equal(t, "2", events[2].RequestID())

	got, _ := h.store.bet("2")
	assert.True(t, got.Settled)
	assert.True(t, got.Won)
	assert.Equal(t, "150", got.Payout)
	assert.Equal(t, "100", got.Amount)
}

func TestEngine_Tick_FailureLeavesCheckpoint(t *testing.T) {
	h := newHarness(t, defaultIndexerConfig())
	ctx := context.Background()
	settledTopic := h.game.BetSettledTopic()

	h.store.setCheckpoint(99)
	h.chain.setHead(105)
	h.chain.addLogs(placedLog(t, h.game, 7, playerAA, "1000", 102, 0))
	h.chain.setFilterErr(func(q geth.FilterQuery) error {
		if q.Topics[0][0] == settledTopic {
			return errRPC
		}
		return nil
	})

	err := h.engine.Tick(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errRPC))
	assert.Equal(t, uint64(99), h.store.lastBlock(t))
	assert.Contains(t, h.engine.Status().LastError, "rpc unavailable")

	// the range is retried and re-applied idempotently
	h.chain.setFilterErr(nil)
	require.NoError(t, h.engine.Tick(ctx))

	assert.Equal(t, uint64(105), h.store.lastBlock(t))
	assert.Equal(t, 1, h.store.betCount())
	assert.Empty(t, h.engine.Status().LastError)
}

func TestEngine_Tick_StoreFailureLeavesCheckpoint(t *testing.T) {
	h := newHarness(t, defaultIndexerConfig())

	h.store.setCheckpoint(10)
	h.store.placeErr = errors.New("db down")
	h.chain.setHead(15)
	h.chain.addLogs(placedLog(t, h.game, 1, playerAA, "5", 12, 0))

	require.Error(t, h.engine.Tick(context.Background()))
	assert.Equal(t, uint64(10), h.store.lastBlock(t))
	assert.Empty(t, h.events.snapshot(), "nothing is announced for an unapplied event")
}

func TestEngine_Tick_HeadFailure(t *testing.T) {
	h := newHarness(t, defaultIndexerConfig())

	h.store.setCheckpoint(10)
	h.chain.headErr = errRPC

	require.ErrorIs(t, h.engine.Tick(context.Background()), errRPC)
	assert.Equal(t, uint64(10), h.store.lastBlock(t))
	assert.Equal(t, 0, h.chain.queryCount())
	assert.False(t, h.engine.IsReady())
}

func TestEngine_Tick_SkipsMalformedLogs(t *testing.T) {
	h := newHarness(t, defaultIndexerConfig())

	bad := placedLog(t, h.game, 8, playerAA, "1", 3, 1)
	bad.Topics = bad.Topics[:2] // player topic missing

	h.store.setCheckpoint(0)
	h.chain.setHead(5)
	h.chain.addLogs(placedLog(t, h.game, 7, playerAA, "1", 3, 0), bad)

	require.NoError(t, h.engine.Tick(context.Background()))

	_, ok := h.store.bet("8")
	assert.False(t, ok, "malformed log must be skipped")
	_, ok = h.store.bet("7")
	assert.True(t, ok, "well-formed log in the same batch is applied")
	assert.Equal(t, uint64(5), h.store.lastBlock(t))
}

func TestEngine_Tick_ReplayIsIdempotent(t *testing.T) {
	h := newHarness(t, defaultIndexerConfig())
	ctx := context.Background()

	h.store.setCheckpoint(0)
	h.chain.setHead(5)
	h.chain.addLogs(placedLog(t, h.game, 7, playerAA, "42", 3, 0))

	require.NoError(t, h.engine.Tick(ctx))
	// rewinding the checkpoint replays the same range
	h.store.mu.Lock()
	zero := uint64(0)
	h.store.checkpoint = &zero
	h.store.mu.Unlock()
	require.NoError(t, h.engine.Tick(ctx))

	assert.Equal(t, 1, h.store.betCount())
	got, _ := h.store.bet("7")
	assert.Equal(t, "42", got.Amount)
}

func TestEngine_Tick_NothingNew(t *testing.T) {
	h := newHarness(t, defaultIndexerConfig())

	h.store.setCheckpoint(50)
	h.chain.setHead(50)

	require.NoError(t, h.engine.Tick(context.Background()))
	assert.Equal(t, 0, h.chain.queryCount())
	assert.True(t, h.engine.IsReady())
}

func TestEngine_Tick_SeedsCheckpoint(t *testing.T) {
	tests := []struct {
		name       string
		cfg        func(*config.IndexerConfig)
		head       uint64
		wantFrom   uint64
		wantCursor uint64
	}{
		{name: "lookback from head", head: 5000, wantFrom: 4001, wantCursor: 5000},
		{name: "head shorter than lookback", head: 10, wantFrom: 1, wantCursor: 10},
		{
			name:       "explicit start block",
			cfg:        func(c *config.IndexerConfig) { c.StartBlock = 42 },
			head:       100,
			wantFrom:   42,
			wantCursor: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultIndexerConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			h := newHarness(t, cfg)
			h.chain.setHead(tt.head)

			require.NoError(t, h.engine.Tick(context.Background()))

			assert.Equal(t, tt.wantFrom, h.chain.lastQuery().FromBlock.Uint64())
			assert.Equal(t, tt.wantCursor, h.store.lastBlock(t))
		})
	}
}

func TestEngine_Tick_BoundsRange(t *testing.T) {
	cfg := defaultIndexerConfig()
	cfg.MaxBlockRange = 10
	h := newHarness(t, cfg)
	ctx := context.Background()

	h.store.setCheckpoint(0)
	h.chain.setHead(25)

	require.NoError(t, h.engine.Tick(ctx))
	assert.Equal(t, uint64(10), h.store.lastBlock(t))

	require.NoError(t, h.engine.Tick(ctx))
	assert.Equal(t, uint64(20), h.store.lastBlock(t))

	require.NoError(t, h.engine.Tick(ctx))
	assert.Equal(t, uint64(25), h.store.lastBlock(t))

	q := h.chain.lastQuery()
	assert.Equal(t, uint64(21), q.FromBlock.Uint64())
	assert.Equal(t, uint64(25), q.ToBlock.Uint64())
}

func TestEngine_Tick_CheckpointNeverDecreases(t *testing.T) {
	h := newHarness(t, defaultIndexerConfig())
	ctx := context.Background()

	h.store.setCheckpoint(0)
	previous := uint64(0)
	for _, head := range []uint64{5, 5, 3, 9, 12} {
		h.chain.setHead(head)
		require.NoError(t, h.engine.Tick(ctx))
		current := h.store.lastBlock(t)
		assert.GreaterOrEqual(t, current, previous)
		previous = current
	}
	assert.Equal(t, uint64(12), previous)
}

func TestEngine_Tick_RejectsOverlap(t *testing.T) {
	h := newHarness(t, defaultIndexerConfig())

	h.store.setCheckpoint(0)
	h.chain.setHead(1)
	release := make(chan struct{})
	h.chain.block = release

	done := make(chan error, 1)
	go func() { done <- h.engine.Tick(context.Background()) }()

	require.Eventually(t, func() bool { return h.engine.ticking.Load() }, time.Second, time.Millisecond)
	assert.ErrorIs(t, h.engine.Tick(context.Background()), ErrTickInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, uint64(1), h.store.lastBlock(t))
}

func TestEngine_Disabled(t *testing.T) {
	store := newFakeStore()
	engine, err := NewEngine(defaultIndexerConfig(), "", nil, store, NewApplier(store, nil, zap.NewNop()), zap.NewNop())
	require.NoError(t, err)

	assert.False(t, engine.IsEnabled())
	assert.True(t, engine.IsReady())

	ctx := context.Background()
	require.NoError(t, engine.Start(ctx))
	require.NoError(t, engine.Tick(ctx))
	require.NoError(t, engine.Stop())

	_, err = store.GetCheckpoint(ctx)
	assert.Error(t, err, "disabled engine must not create a checkpoint")
}

func TestNewEngine_Validation(t *testing.T) {
	store := newFakeStore()
	applier := NewApplier(store, nil, zap.NewNop())

	_, err := NewEngine(defaultIndexerConfig(), "not-an-address", &fakeChain{}, store, applier, zap.NewNop())
	assert.Error(t, err)

	_, err = NewEngine(defaultIndexerConfig(), contractAddr.Hex(), nil, store, applier, zap.NewNop())
	assert.Error(t, err)
}

func TestEngine_StartStop(t *testing.T) {
	h := newHarness(t, defaultIndexerConfig())
	ctx := context.Background()

	h.store.setCheckpoint(0)
	h.chain.setHead(3)
	h.chain.addLogs(placedLog(t, h.game, 1, playerAA, "10", 2, 0))

	require.NoError(t, h.engine.Start(ctx))
	assert.ErrorIs(t, h.engine.Start(ctx), ErrEngineAlreadyRunning)

	require.Eventually(t, func() bool {
		_, ok := h.store.bet("1")
		return ok
	}, time.Second, 5*time.Millisecond)
	assert.True(t, h.engine.Status().Running)

	// a later head is picked up by the interval loop
	h.chain.setHead(8)
	require.Eventually(t, func() bool { return h.store.lastBlock(t) == 8 }, time.Second, 5*time.Millisecond)

	require.NoError(t, h.engine.Stop())
	assert.ErrorIs(t, h.engine.Stop(), ErrEngineNotRunning)
	assert.False(t, h.engine.Status().Running)

	// stopped engines can be started again
	require.NoError(t, h.engine.Start(ctx))
	require.NoError(t, h.engine.Stop())
}

func TestEngine_StopWaitsForInFlightTick(t *testing.T) {
	h := newHarness(t, defaultIndexerConfig())

	h.store.setCheckpoint(0)
	h.chain.setHead(4)
	release := make(chan struct{})
	h.chain.block = release

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, h.engine.Start(ctx))
	require.Eventually(t, func() bool { return h.engine.ticking.Load() }, time.Second, time.Millisecond)

	// cancelling the caller context does not abort the tick
	cancel()
	stopped := make(chan error, 1)
	go func() { stopped <- h.engine.Stop() }()

	select {
	case <-stopped:
		t.Fatal("Stop returned before the in-flight tick finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-stopped)
	assert.Equal(t, uint64(4), h.store.lastBlock(t))
}
