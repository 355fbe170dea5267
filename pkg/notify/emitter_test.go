package notify

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/petegordon/mferoll-sub000/pkg/bet"
)

func TestEmitter_DeliversToAllListeners(t *testing.T) {
	e := NewEmitter(zap.NewNop())
	defer e.Close()

	var a, b []bet.Event
	e.Subscribe(ListenerFunc(func(_ context.Context, ev bet.Event) { a = append(a, ev) }))
	e.Subscribe(ListenerFunc(func(_ context.Context, ev bet.Event) { b = append(b, ev) }))

	ev := bet.NewPlacedEvent(&bet.Placement{RequestID: "1", Player: "0xaa"})
	e.Notify(context.Background(), ev)

	assert.Equal(t, []bet.Event{ev}, a)
	assert.Equal(t, []bet.Event{ev}, b)
}

func TestEmitter_Unsubscribe(t *testing.T) {
	e := NewEmitter(zap.NewNop())
	defer e.Close()

	var calls atomic.Int32
	unsubscribe := e.Subscribe(ListenerFunc(func(context.Context, bet.Event) { calls.Add(1) }))
	assert.Equal(t, 1, e.Len())

	unsubscribe()
	assert.Equal(t, 0, e.Len())

	e.Notify(context.Background(), bet.NewSettledEvent(&bet.Settlement{RequestID: "1"}))
	assert.Equal(t, int32(0), calls.Load())
}

func TestEmitter_PanickingListenerIsIsolated(t *testing.T) {
	e := NewEmitter(zap.NewNop())
	defer e.Close()

	var calls atomic.Int32
	e.Subscribe(ListenerFunc(func(context.Context, bet.Event) { panic("boom") }))
	e.Subscribe(ListenerFunc(func(context.Context, bet.Event) { calls.Add(1) }))

	assert.NotPanics(t, func() {
		e.Notify(context.Background(), bet.NewPlacedEvent(&bet.Placement{RequestID: "1"}))
	})
	assert.Equal(t, int32(1), calls.Load())
}

func TestEmitter_CloseStopsDelivery(t *testing.T) {
	e := NewEmitter(zap.NewNop())

	var calls atomic.Int32
	e.Subscribe(ListenerFunc(func(context.Context, bet.Event) { calls.Add(1) }))
	e.Close()

	e.Notify(context.Background(), bet.NewPlacedEvent(&bet.Placement{RequestID: "1"}))
	e.Subscribe(ListenerFunc(func(context.Context, bet.Event) { calls.Add(1) }))
	e.Notify(context.Background(), bet.NewPlacedEvent(&bet.Placement{RequestID: "2"}))

	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, 0, e.Len())
}

func TestEmitter_InstancesAreIsolated(t *testing.T) {
	first := NewEmitter(zap.NewNop())
	second := NewEmitter(zap.NewNop())
	defer first.Close()
	defer second.Close()

	var calls atomic.Int32
	first.Subscribe(ListenerFunc(func(context.Context, bet.Event) { calls.Add(1) }))

	second.Notify(context.Background(), bet.NewPlacedEvent(&bet.Placement{RequestID: "1"}))
	assert.Equal(t, int32(0), calls.Load())
}
