package bet

import (
	"strings"
	"time"
)

// CheckpointID is the fixed key of the indexer progress record.
const CheckpointID = "default"

// Checkpoint is the indexer's resumption point.
type Checkpoint struct {
	ID        string
	LastBlock uint64
	UpdatedAt time.Time
}

// Bet is the lifecycle of one wager from placement to settlement.
// Amount and Payout are decimal strings of token base units.
type Bet struct {
	RequestID     string     `json:"requestId"`
	Player        string     `json:"player"`
	BetType       uint8      `json:"betType"`
	Prediction    uint8      `json:"prediction"`
	Amount        string     `json:"amount"`
	PlacedTxHash  string     `json:"txHash,omitzero"`
	BlockNumber   uint64     `json:"blockNumber"`
	Die1          uint8      `json:"die1,omitzero"`
	Die2          uint8      `json:"die2,omitzero"`
	Won           bool       `json:"won"`
	Payout        string     `json:"payout,omitzero"`
	Settled       bool       `json:"settled"`
	SettledAt     *time.Time `json:"settledAt,omitzero"`
	SettledTxHash string     `json:"settleTxHash,omitzero"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Placement is a decoded BetPlaced log, normalized for persistence.
type Placement struct {
	RequestID   string
	Player      string
	BetType     uint8
	Prediction  uint8
	Amount      string
	TxHash      string
	BlockNumber uint64
	LogIndex    uint
}

// Settlement is a decoded BetSettled log, normalized for persistence.
type Settlement struct {
	RequestID   string
	Player      string
	Die1        uint8
	Die2        uint8
	Won         bool
	Payout      string
	TxHash      string
	BlockNumber uint64
	LogIndex    uint
}

// NormalizeAddress lowercases a hex address for storage and comparison.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
