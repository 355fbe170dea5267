package betstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/petegordon/mferoll-sub000/pkg/bet"
)

// CheckpointDao maps to the 'indexer_checkpoints' table.
type CheckpointDao struct {
	bun.BaseModel `bun:"table:indexer_checkpoints,alias:c"`
	ID            string    `bun:"id,pk,type:varchar(32)"`
	LastBlock     int64     `bun:"last_block,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// BetDao maps to the 'bets' table. Settlement columns stay NULL until the
// bet settles.
type BetDao struct {
	bun.BaseModel `bun:"table:bets,alias:b"`
	RequestID     string     `bun:"request_id,pk,type:varchar(78)"`
	Player        string     `bun:"player,notnull,type:varchar(42)"`
	BetType       int16      `bun:"bet_type,notnull"`
	Prediction    int16      `bun:"prediction,notnull"`
	Amount        string     `bun:"amount,notnull,type:numeric(78,0)"`
	PlacedTxHash  string     `bun:"placed_tx_hash,notnull,type:varchar(66)"`
	BlockNumber   int64      `bun:"block_number,notnull"`
	Die1          *int16     `bun:"die1"`
	Die2          *int16     `bun:"die2"`
	Won           bool       `bun:"won,notnull"`
	Payout        *string    `bun:"payout,type:numeric(78,0)"`
	Settled       bool       `bun:"settled,notnull"`
	SettledAt     *time.Time `bun:"settled_at"`
	SettledTxHash *string    `bun:"settled_tx_hash,type:varchar(66)"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func toCheckpoint(dao *CheckpointDao) *bet.Checkpoint {
	return &bet.Checkpoint{
		ID:        dao.ID,
		LastBlock: uint64(dao.LastBlock),
		UpdatedAt: dao.UpdatedAt,
	}
}

// placementDao builds the row for a placement. Settlement columns are left
// at their zero values and are never written by the placement upsert.
func placementDao(p *bet.Placement) *BetDao {
	return &BetDao{
		RequestID:    p.RequestID,
		Player:       bet.NormalizeAddress(p.Player),
		BetType:      int16(p.BetType),
		Prediction:   int16(p.Prediction),
		Amount:       p.Amount,
		PlacedTxHash: p.TxHash,
		BlockNumber:  int64(p.BlockNumber),
	}
}

// settlementDao builds the row for a settlement. Placement columns carry
// defaults that a later placement upsert overwrites.
func settlementDao(s *bet.Settlement, settledAt time.Time) *BetDao {
	die1, die2 := int16(s.Die1), int16(s.Die2)
	payout, txHash := s.Payout, s.TxHash
	return &BetDao{
		RequestID:     s.RequestID,
		Player:        bet.NormalizeAddress(s.Player),
		Amount:        "0",
		BlockNumber:   int64(s.BlockNumber),
		Die1:          &die1,
		Die2:          &die2,
		Won:           s.Won,
		Payout:        &payout,
		Settled:       true,
		SettledAt:     &settledAt,
		SettledTxHash: &txHash,
	}
}

func toBet(dao *BetDao) *bet.Bet {
	b := &bet.Bet{
		RequestID:    dao.RequestID,
		Player:       dao.Player,
		BetType:      uint8(dao.BetType),
		Prediction:   uint8(dao.Prediction),
		Amount:       dao.Amount,
		PlacedTxHash: dao.PlacedTxHash,
		BlockNumber:  uint64(dao.BlockNumber),
		Won:          dao.Won,
		Settled:      dao.Settled,
		SettledAt:    dao.SettledAt,
		CreatedAt:    dao.CreatedAt,
		UpdatedAt:    dao.UpdatedAt,
	}

	if dao.Die1 != nil {
		b.Die1 = uint8(*dao.Die1)
	}
	if dao.Die2 != nil {
		b.Die2 = uint8(*dao.Die2)
	}
	if dao.Payout != nil {
		b.Payout = *dao.Payout
	}
	if dao.SettledTxHash != nil {
		b.SettledTxHash = *dao.SettledTxHash
	}

	return b
}

func toBets(daos []BetDao) []*bet.Bet {
	bets := make([]*bet.Bet, len(daos))
	for i := range daos {
		bets[i] = toBet(&daos[i])
	}
	return bets
}
