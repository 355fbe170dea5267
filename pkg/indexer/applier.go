package indexer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/petegordon/mferoll-sub000/internal/metrics"
	"github.com/petegordon/mferoll-sub000/pkg/bet"
	"github.com/petegordon/mferoll-sub000/pkg/betstore"
)

// Notifier receives events after they are persisted
type Notifier interface {
	Notify(ctx context.Context, ev bet.Event)
}

// Applier persists decoded game events and announces them
type Applier struct {
	store    betstore.BetWriter
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewApplier creates an applier. notifier may be nil.
func NewApplier(store betstore.BetWriter, notifier Notifier, logger *zap.Logger) *Applier {
	return &Applier{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// ApplyPlacement upserts the bet keyed by request id, then announces it.
func (a *Applier) ApplyPlacement(ctx context.Context, p *bet.Placement) error {
	if err := a.store.UpsertPlacement(ctx, p); err != nil {
		return err
	}
	metrics.EventsApplied.WithLabelValues(string(bet.EventBetPlaced)).Inc()

	a.logger.Debug("Applied bet placement",
		zap.String("request_id", p.RequestID),
		zap.String("player", p.Player),
		zap.String("amount", p.Amount),
		zap.Uint64("block", p.BlockNumber))

	a.notify(ctx, bet.NewPlacedEvent(p))
	return nil
}

// ApplySettlement marks the bet settled, then announces it.
func (a *Applier) ApplySettlement(ctx context.Context, s *bet.Settlement) error {
	if err := a.store.ApplySettlement(ctx, s, a.now().UTC()); err != nil {
		return err
	}
	metrics.EventsApplied.WithLabelValues(string(bet.EventBetSettled)).Inc()

	a.logger.Debug("Applied bet settlement",
		zap.String("request_id", s.RequestID),
		zap.String("player", s.Player),
		zap.Bool("won", s.Won),
		zap.String("payout", s.Payout),
		zap.Uint64("block", s.BlockNumber))

	a.notify(ctx, bet.NewSettledEvent(s))
	return nil
}

func (a *Applier) notify(ctx context.Context, ev bet.Event) {
	if a.notifier != nil {
		a.notifier.Notify(ctx, ev)
	}
}
