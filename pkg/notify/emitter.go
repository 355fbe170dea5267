// Package notify fans applied game events out to in-process listeners.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/petegordon/mferoll-sub000/pkg/bet"
)

// Listener receives applied game events. OnEvent must not block.
type Listener interface {
	OnEvent(ctx context.Context, ev bet.Event)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(ctx context.Context, ev bet.Event)

// OnEvent calls f(ctx, ev)
func (f ListenerFunc) OnEvent(ctx context.Context, ev bet.Event) { f(ctx, ev) }

// Emitter delivers events synchronously to every subscribed listener.
// The zero value is not usable; create one with NewEmitter and release it with Close.
type Emitter struct {
	logger *zap.Logger

	mu        sync.RWMutex
	listeners map[uint64]Listener
	nextID    uint64
	closed    bool
}

// NewEmitter creates an emitter with no listeners
func NewEmitter(logger *zap.Logger) *Emitter {
	return &Emitter{
		logger:    logger,
		listeners: make(map[uint64]Listener),
	}
}

// Subscribe registers l and returns a function that removes it.
// Subscribing to a closed emitter is a no-op.
func (e *Emitter) Subscribe(l Listener) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return func() {}
	}

	id := e.nextID
	e.nextID++
	e.listeners[id] = l

	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

// Notify delivers ev to a snapshot of the current listeners. A panicking
// listener is logged and does not affect the others.
func (e *Emitter) Notify(ctx context.Context, ev bet.Event) {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return
	}
	listeners := make([]Listener, 0, len(e.listeners))
	for _, l := range e.listeners {
		listeners = append(listeners, l)
	}
	e.mu.RUnlock()

	for _, l := range listeners {
		e.deliver(ctx, l, ev)
	}
}

func (e *Emitter) deliver(ctx context.Context, l Listener, ev bet.Event) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Event listener panicked",
				zap.Any("panic", r),
				zap.String("event_type", string(ev.Type)),
				zap.String("request_id", ev.RequestID()))
		}
	}()
	l.OnEvent(ctx, ev)
}

// Len returns the number of subscribed listeners
func (e *Emitter) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}

// Close drops all listeners. Later Notify and Subscribe calls are no-ops.
func (e *Emitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	clear(e.listeners)
}
