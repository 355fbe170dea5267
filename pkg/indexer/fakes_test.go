package indexer

import (
	"context"
	"errors"
	"math/big"
	"slices"
	"sync"
	"testing"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/petegordon/mferoll-sub000/pkg/bet"
	"github.com/petegordon/mferoll-sub000/pkg/betstore"
	"github.com/petegordon/mferoll-sub000/pkg/ethereum/contracts"
)

var (
	contractAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	playerAA     = common.HexToAddress("0x00000000000000000000000000000000000000AA")
	playerBB     = common.HexToAddress("0x00000000000000000000000000000000000000BB")
)

// fakeChain serves logs like a node: filtered by address, topic and block range.
type fakeChain struct {
	mu      sync.Mutex
	head    uint64
	logs    []types.Log
	headErr error
	// filterErr is consulted per query; a non-nil return fails that query
	filterErr func(q geth.FilterQuery) error
	queries   []geth.FilterQuery
	// block, when set, is received from before answering the head query
	block chan struct{}
}

func (c *fakeChain) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	c.mu.Lock()
	block := c.block
	c.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.headErr != nil {
		return 0, c.headErr
	}
	return c.head, nil
}

func (c *fakeChain) FilterLogs(_ context.Context, q geth.FilterQuery) ([]types.Log, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queries = append(c.queries, q)
	if c.filterErr != nil {
		if err := c.filterErr(q); err != nil {
			return nil, err
		}
	}

	from, to := q.FromBlock.Uint64(), q.ToBlock.Uint64()
	var out []types.Log
	for _, lg := range c.logs {
		if lg.BlockNumber < from || lg.BlockNumber > to {
			continue
		}
		if len(q.Addresses) > 0 && !slices.Contains(q.Addresses, lg.Address) {
			continue
		}
		if len(q.Topics) > 0 && len(q.Topics[0]) > 0 {
			if len(lg.Topics) == 0 || !slices.Contains(q.Topics[0], lg.Topics[0]) {
				continue
			}
		}
		out = append(out, lg)
	}
	return out, nil
}

func (c *fakeChain) setHead(head uint64) {
	c.mu.Lock()
	c.head = head
	c.mu.Unlock()
}

func (c *fakeChain) addLogs(logs ...types.Log) {
	c.mu.Lock()
	c.logs = append(c.logs, logs...)
	c.mu.Unlock()
}

func (c *fakeChain) setFilterErr(fn func(q geth.FilterQuery) error) {
	c.mu.Lock()
	c.filterErr = fn
	c.mu.Unlock()
}

func (c *fakeChain) queryCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queries)
}

func (c *fakeChain) lastQuery() geth.FilterQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queries[len(c.queries)-1]
}

// fakeStore mirrors the upsert semantics of the postgres store in memory.
type fakeStore struct {
	mu         sync.Mutex
	checkpoint *uint64
	bets       map[string]*bet.Bet
	placeErr   error
	settleErr  error
	updates    []uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{bets: make(map[string]*bet.Bet)}
}

func (s *fakeStore) GetCheckpoint(context.Context) (*bet.Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkpoint == nil {
		return nil, betstore.ErrCheckpointNotFound
	}
	return &bet.Checkpoint{ID: bet.CheckpointID, LastBlock: *s.checkpoint}, nil
}

func (s *fakeStore) CreateCheckpoint(_ context.Context, block uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkpoint == nil {
		s.checkpoint = &block
	}
	return nil
}

func (s *fakeStore) UpdateCheckpoint(_ context.Context, block uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkpoint == nil {
		return betstore.ErrCheckpointNotFound
	}
	s.updates = append(s.updates, block)
	if block > *s.checkpoint {
		*s.checkpoint = block
	}
	return nil
}

func (s *fakeStore) UpsertPlacement(_ context.Context, p *bet.Placement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.placeErr != nil {
		return s.placeErr
	}
	b, ok := s.bets[p.RequestID]
	if !ok {
		b = &bet.Bet{RequestID: p.RequestID}
		s.bets[p.RequestID] = b
	}
	b.Player = p.Player
	b.BetType = p.BetType
	b.Prediction = p.Prediction
	b.Amount = p.Amount
	b.PlacedTxHash = p.TxHash
	b.BlockNumber = p.BlockNumber
	return nil
}

func (s *fakeStore) ApplySettlement(_ context.Context, st *bet.Settlement, settledAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settleErr != nil {
		return s.settleErr
	}
	b, ok := s.bets[st.RequestID]
	if !ok {
		b = &bet.Bet{RequestID: st.RequestID, Player: st.Player, Amount: "0", BlockNumber: st.BlockNumber}
		s.bets[st.RequestID] = b
	}
	b.Die1, b.Die2 = st.Die1, st.Die2
	b.Won = st.Won
	b.Payout = st.Payout
	b.Settled = true
	if b.SettledAt == nil {
		b.SettledAt = &settledAt
	}
	b.SettledTxHash = st.TxHash
	return nil
}

func (s *fakeStore) setCheckpoint(block uint64) {
	s.mu.Lock()
	s.checkpoint = &block
	s.mu.Unlock()
}

func (s *fakeStore) lastBlock(t *testing.T) uint64 {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkpoint == nil {
		t.Fatalf("checkpoint not created")
	}
	return *s.checkpoint
}

func (s *fakeStore) bet(requestID string) (bet.Bet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bets[requestID]
	if !ok {
		return bet.Bet{}, false
	}
	return *b, true
}

func (s *fakeStore) betCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bets)
}

// recorder captures notifications in delivery order.
type recorder struct {
	mu     sync.Mutex
	events []bet.Event
}

func (r *recorder) Notify(_ context.Context, ev bet.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []bet.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

var errRPC = errors.New("rpc unavailable")

func placedLog(t *testing.T, game *contracts.DiceGame, requestID int64, player common.Address, amount string, block uint64, index uint) types.Log {
	t.Helper()
	amt, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		t.Fatalf("bad amount %q", amount)
	}
	lg, err := game.PackBetPlaced(&contracts.DiceGameBetPlaced{
		RequestId:  big.NewInt(requestID),
		Player:     player,
		BetType:    1,
		Prediction: 0,
		Amount:     amt,
		Raw: types.Log{
			Address:     contractAddr,
			BlockNumber: block,
			Index:       index,
			TxHash:      common.BigToHash(big.NewInt(int64(block)*100 + int64(index))),
		},
	})
	if err != nil {
		t.Fatalf("pack placement: %v", err)
	}
	return lg
}

func settledLog(t *testing.T, game *contracts.DiceGame, requestID int64, player common.Address, won bool, payout int64, block uint64, index uint) types.Log {
	t.Helper()
	lg, err := game.PackBetSettled(&contracts.DiceGameBetSettled{
		RequestId: big.NewInt(requestID),
		Player:    player,
		Die1:      3,
		Die2:      4,
		Won:       won,
		Payout:    big.NewInt(payout),
		Raw: types.Log{
			Address:     contractAddr,
			BlockNumber: block,
			Index:       index,
			TxHash:      common.BigToHash(big.NewInt(int64(block)*100 + int64(index))),
		},
	})
	if err != nil {
		t.Fatalf("pack settlement: %v", err)
	}
	return lg
}
