// Package betstore persists the indexer checkpoint and bet rows in PostgreSQL.
package betstore

import (
	"context"
	"errors"
	"time"

	"github.com/petegordon/mferoll-sub000/pkg/bet"
)

var (
	// ErrCheckpointNotFound is returned when no checkpoint has been created yet.
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	// ErrBetNotFound is returned when a bet lookup finds no matching row.
	ErrBetNotFound = errors.New("bet not found")
)

// CheckpointStore persists the indexer resumption point
type CheckpointStore interface {
	GetCheckpoint(ctx context.Context) (*bet.Checkpoint, error)
	// CreateCheckpoint inserts the checkpoint row; it is a no-op when one exists.
	CreateCheckpoint(ctx context.Context, block uint64) error
	// UpdateCheckpoint advances the checkpoint; it never lowers it.
	UpdateCheckpoint(ctx context.Context, block uint64) error
}

// BetWriter applies decoded game events to bet rows
type BetWriter interface {
	UpsertPlacement(ctx context.Context, p *bet.Placement) error
	ApplySettlement(ctx context.Context, s *bet.Settlement, settledAt time.Time) error
}

// BetReader serves the read API
type BetReader interface {
	GetBet(ctx context.Context, requestID string) (*bet.Bet, error)
	// ListBetsByPlayer returns the player's bets newest block first; limit 0 returns all.
	ListBetsByPlayer(ctx context.Context, player string, limit, offset int) ([]*bet.Bet, error)
	// ListRecentSettledBets returns settled bets most recently settled first.
	ListRecentSettledBets(ctx context.Context, limit int) ([]*bet.Bet, error)
}

// Store is the full persistence contract of the indexer
type Store interface {
	CheckpointStore
	BetWriter
	BetReader
}
