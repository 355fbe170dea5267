package indexer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/petegordon/mferoll-sub000/pkg/bet"
)

func TestApplier_SettlementUsesClock(t *testing.T) {
	store := newFakeStore()
	events := &recorder{}
	applier := NewApplier(store, events, zap.NewNop())

	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	applier.now = func() time.Time { return fixed }

	ctx := context.Background()
	require.NoError(t, applier.ApplyPlacement(ctx, &bet.Placement{RequestID: "1", Player: "0xaa", Amount: "10"}))
	require.NoError(t, applier.ApplySettlement(ctx, &bet.Settlement{RequestID: "1", Player: "0xaa", Die1: 6, Die2: 6, Won: true, Payout: "20"}))

	got, ok := store.bet("1")
	require.True(t, ok)
	require.NotNil(t, got.SettledAt)
	assert.True(t, got.SettledAt.Equal(fixed))
	assert.Equal(t, time.UTC, got.SettledAt.Location())

	evs := events.snapshot()
	require.Len(t, evs, 2)
	assert.Equal(t, bet.EventBetPlaced, evs[0].Type)
	assert.Equal(t, bet.EventBetSettled, evs[1].Type)
}

func TestApplier_UnknownSettlementCreatesRow(t *testing.T) {
	store := newFakeStore()
	applier := NewApplier(store, nil, zap.NewNop())

	require.NoError(t, applier.ApplySettlement(context.Background(), &bet.Settlement{RequestID: "5", Player: "0xbb", Die1: 1, Die2: 2, Payout: "0"}))

	got, ok := store.bet("5")
	require.True(t, ok)
	assert.True(t, got.Settled)
	assert.Equal(t, "0", got.Amount)
	assert.Equal(t, "0xbb", got.Player)
}

func TestApplier_StoreErrorSkipsNotification(t *testing.T) {
	store := newFakeStore()
	store.settleErr = errors.New("db down")
	events := &recorder{}
	applier := NewApplier(store, events, zap.NewNop())

	err := applier.ApplySettlement(context.Background(), &bet.Settlement{RequestID: "1"})
	require.Error(t, err)
	assert.Empty(t, events.snapshot())
}
