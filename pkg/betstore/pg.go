package betstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/petegordon/mferoll-sub000/pkg/bet"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the bet store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) GetCheckpoint(ctx context.Context) (*bet.Checkpoint, error) {
	dao := new(CheckpointDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("id = ?", bet.CheckpointID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCheckpointNotFound
		}
		return nil, fmt.Errorf("failed to get checkpoint: %w", err)
	}
	return toCheckpoint(dao), nil
}

func (s *pgStore) CreateCheckpoint(ctx context.Context, block uint64) error {
	_, err := s.db.NewInsert().
		Model(&CheckpointDao{ID: bet.CheckpointID, LastBlock: int64(block)}).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint: %w", err)
	}
	return nil
}

func (s *pgStore) UpdateCheckpoint(ctx context.Context, block uint64) error {
	res, err := s.db.NewUpdate().
		Model((*CheckpointDao)(nil)).
		Set("last_block = GREATEST(last_block, ?)", int64(block)).
		Set("updated_at = current_timestamp").
		Where("id = ?", bet.CheckpointID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update checkpoint: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update checkpoint: %w", err)
	}
	if n == 0 {
		return ErrCheckpointNotFound
	}
	return nil
}

// UpsertPlacement inserts the bet or, on replay, overwrites placement columns only.
func (s *pgStore) UpsertPlacement(ctx context.Context, p *bet.Placement) error {
	_, err := s.db.NewInsert().
		Model(placementDao(p)).
		On("CONFLICT (request_id) DO UPDATE").
		Set("player = EXCLUDED.player").
		Set("bet_type = EXCLUDED.bet_type").
		Set("prediction = EXCLUDED.prediction").
		Set("amount = EXCLUDED.amount").
		Set("placed_tx_hash = EXCLUDED.placed_tx_hash").
		Set("block_number = EXCLUDED.block_number").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert placement %s: %w", p.RequestID, err)
	}
	return nil
}

// ApplySettlement marks the bet settled. A settlement for a request id with no
// placement yet creates the row with defaulted placement columns. Replays keep
// the first settlement timestamp.
func (s *pgStore) ApplySettlement(ctx context.Context, st *bet.Settlement, settledAt time.Time) error {
	_, err := s.db.NewInsert().
		Model(settlementDao(st, settledAt.UTC())).
		On("CONFLICT (request_id) DO UPDATE").
		Set("die1 = EXCLUDED.die1").
		Set("die2 = EXCLUDED.die2").
		Set("won = EXCLUDED.won").
		Set("payout = EXCLUDED.payout").
		Set("settled = TRUE").
		Set("settled_at = COALESCE(b.settled_at, EXCLUDED.settled_at)").
		Set("settled_tx_hash = EXCLUDED.settled_tx_hash").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply settlement %s: %w", st.RequestID, err)
	}
	return nil
}

func (s *pgStore) GetBet(ctx context.Context, requestID string) (*bet.Bet, error) {
	dao := new(BetDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("request_id = ?", requestID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBetNotFound
		}
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	return toBet(dao), nil
}

func (s *pgStore) ListBetsByPlayer(ctx context.Context, player string, limit, offset int) ([]*bet.Bet, error) {
	var daos []BetDao
	q := s.db.NewSelect().
		Model(&daos).
		Where("player = ?", bet.NormalizeAddress(player)).
		OrderExpr("block_number DESC, request_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list bets for player: %w", err)
	}
	return toBets(daos), nil
}

func (s *pgStore) ListRecentSettledBets(ctx context.Context, limit int) ([]*bet.Bet, error) {
	var daos []BetDao
	err := s.db.NewSelect().
		Model(&daos).
		Where("settled = TRUE").
		OrderExpr("settled_at DESC, request_id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent settled bets: %w", err)
	}
	return toBets(daos), nil
}
