// Package indexer tails the dice game contract and applies its events to the bet store.
package indexer

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/petegordon/mferoll-sub000/internal/metrics"
	"github.com/petegordon/mferoll-sub000/pkg/bet"
	"github.com/petegordon/mferoll-sub000/pkg/betstore"
	"github.com/petegordon/mferoll-sub000/pkg/config"
	"github.com/petegordon/mferoll-sub000/pkg/ethereum/contracts"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultTickTimeout  = 30 * time.Second
)

var (
	// ErrEngineAlreadyRunning is returned by Start on a running engine.
	ErrEngineAlreadyRunning = errors.New("indexer engine already running")
	// ErrEngineNotRunning is returned by Stop on a stopped engine.
	ErrEngineNotRunning = errors.New("indexer engine not running")
	// ErrTickInProgress is returned by Tick while another tick is in flight.
	ErrTickInProgress = errors.New("indexer tick already in progress")
)

// ChainClient defines the chain reads the engine needs
type ChainClient interface {
	GetLatestBlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q geth.FilterQuery) ([]types.Log, error)
}

// Status is a snapshot of indexing progress
type Status struct {
	Enabled    bool       `json:"enabled"`
	Running    bool       `json:"running"`
	Checkpoint uint64     `json:"checkpoint"`
	ChainHead  uint64     `json:"chainHead"`
	LastTickAt *time.Time `json:"lastTickAt,omitzero"`
	LastError  string     `json:"lastError,omitzero"`
}

// Engine polls the chain for dice game logs over [checkpoint+1, head] and
// advances the checkpoint after each fully applied range.
type Engine struct {
	cfg      config.IndexerConfig
	enabled  bool
	contract common.Address
	chain    ChainClient
	store    betstore.CheckpointStore
	applier  *Applier
	game     *contracts.DiceGame
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	ticking atomic.Bool

	statusMu sync.RWMutex
	status   Status
}

// NewEngine creates an indexer engine. An empty contractAddress yields a
// disabled engine whose ticks do nothing; chain may be nil in that case.
func NewEngine(
	cfg config.IndexerConfig,
	contractAddress string,
	chain ChainClient,
	store betstore.CheckpointStore,
	applier *Applier,
	logger *zap.Logger,
) (*Engine, error) {
	game, err := contracts.NewDiceGame()
	if err != nil {
		return nil, err
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.TickTimeout <= 0 {
		cfg.TickTimeout = defaultTickTimeout
	}

	e := &Engine{
		cfg:     cfg,
		enabled: contractAddress != "",
		chain:   chain,
		store:   store,
		applier: applier,
		game:    game,
		logger:  logger,
	}
	if e.enabled {
		if !common.IsHexAddress(contractAddress) {
			return nil, fmt.Errorf("invalid contract address %q", contractAddress)
		}
		if chain == nil {
			return nil, fmt.Errorf("chain client is required when a contract address is configured")
		}
		e.contract = common.HexToAddress(contractAddress)
	}
	e.status.Enabled = e.enabled

	return e, nil
}

// Start begins polling: one tick immediately, then one per poll interval.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return ErrEngineAlreadyRunning
	}
	e.running = true
	e.setRunning(true)

	if !e.enabled {
		e.logger.Info("No contract address configured, indexer disabled")
		return nil
	}

	e.logger.Info("Starting indexer engine",
		zap.String("contract", e.contract.Hex()),
		zap.Duration("poll_interval", e.cfg.PollInterval),
		zap.Uint64("lookback_blocks", e.cfg.LookbackBlocks),
		zap.Uint64("max_block_range", e.cfg.MaxBlockRange))

	e.stopCh = make(chan struct{})
	e.wg.Add(1)
	go e.run(ctx, e.stopCh)

	return nil
}

// Stop halts polling and waits for an in-flight tick to complete.
func (e *Engine) Stop() error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return ErrEngineNotRunning
	}
	e.running = false
	e.setRunning(false)
	if e.stopCh != nil {
		close(e.stopCh)
		e.stopCh = nil
	}
	e.mu.Unlock()

	e.logger.Info("Stopping indexer engine")
	e.wg.Wait()
	e.logger.Info("Indexer engine stopped")
	return nil
}

// IsEnabled reports whether a contract address is configured
func (e *Engine) IsEnabled() bool {
	return e.enabled
}

// IsReady reports whether the engine has completed a tick. A disabled engine is
// always ready.
func (e *Engine) IsReady() bool {
	if !e.enabled {
		return true
	}
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.status.LastTickAt != nil
}

// Status returns a snapshot of indexing progress
func (e *Engine) Status() Status {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.status
}

func (e *Engine) run(ctx context.Context, stopCh <-chan struct{}) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	e.runTick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			e.runTick(ctx)
		}
	}
}

// runTick detaches the tick from cancellation of ctx so shutdown lets it
// finish; tick_timeout still bounds it.
func (e *Engine) runTick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.TickTimeout)
	defer cancel()

	err := e.Tick(tickCtx)
	switch {
	case err == nil:
	case errors.Is(err, ErrTickInProgress):
		e.logger.Warn("Skipping tick, previous tick still running")
	default:
		e.logger.Error("Indexer tick failed", zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("indexer", "tick").Inc()
	}
}

// Tick runs one reconciliation pass. At most one pass runs at a time; an
// overlapping call returns ErrTickInProgress. On error the checkpoint is left
// where it was so the range is retried on the next pass.
func (e *Engine) Tick(ctx context.Context) error {
	if !e.enabled {
		return nil
	}
	if !e.ticking.CompareAndSwap(false, true) {
		return ErrTickInProgress
	}
	defer e.ticking.Store(false)

	start := time.Now()
	err := e.tick(ctx)
	metrics.TickDuration.Observe(time.Since(start).Seconds())

	e.recordTick(err)
	return err
}

func (e *Engine) tick(ctx context.Context) error {
	head, err := e.chain.GetLatestBlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain head: %w", err)
	}
	metrics.ChainHeadBlock.Set(float64(head))
	e.setChainHead(head)

	checkpoint, err := e.loadCheckpoint(ctx, head)
	if err != nil {
		return err
	}
	if head <= checkpoint {
		return nil
	}

	from, to := e.blockRange(checkpoint, head)

	placements, err := e.fetchPlacements(ctx, from, to)
	if err != nil {
		return err
	}
	settlements, err := e.fetchSettlements(ctx, from, to)
	if err != nil {
		return err
	}

	// placements first so a bet placed and settled in one range lands in causal order
	for _, p := range placements {
		if err := e.applier.ApplyPlacement(ctx, p); err != nil {
			return fmt.Errorf("failed to apply placement %s: %w", p.RequestID, err)
		}
	}
	for _, s := range settlements {
		if err := e.applier.ApplySettlement(ctx, s); err != nil {
			return fmt.Errorf("failed to apply settlement %s: %w", s.RequestID, err)
		}
	}

	if err := e.store.UpdateCheckpoint(ctx, to); err != nil {
		return fmt.Errorf("failed to advance checkpoint to %d: %w", to, err)
	}
	e.setCheckpoint(to)
	metrics.LastProcessedBlock.Set(float64(to))
	metrics.BlocksProcessed.Add(float64(to - from + 1))

	e.logger.Info("Indexed block range",
		zap.Uint64("from", from),
		zap.Uint64("to", to),
		zap.Uint64("head", head),
		zap.Int("placements", len(placements)),
		zap.Int("settlements", len(settlements)))

	return nil
}

// loadCheckpoint returns the stored checkpoint, seeding it on first use.
func (e *Engine) loadCheckpoint(ctx context.Context, head uint64) (uint64, error) {
	cp, err := e.store.GetCheckpoint(ctx)
	if err == nil {
		e.setCheckpoint(cp.LastBlock)
		return cp.LastBlock, nil
	}
	if !errors.Is(err, betstore.ErrCheckpointNotFound) {
		return 0, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	seed := e.seedBlock(head)
	if err := e.store.CreateCheckpoint(ctx, seed); err != nil {
		return 0, fmt.Errorf("failed to create checkpoint: %w", err)
	}
	e.logger.Info("Created indexer checkpoint",
		zap.Uint64("block", seed),
		zap.Uint64("head", head))

	// re-read in case another writer created it first
	cp, err = e.store.GetCheckpoint(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load checkpoint: %w", err)
	}
	e.setCheckpoint(cp.LastBlock)
	return cp.LastBlock, nil
}

func (e *Engine) seedBlock(head uint64) uint64 {
	if e.cfg.StartBlock > 0 {
		return e.cfg.StartBlock - 1
	}
	if head > e.cfg.LookbackBlocks {
		return head - e.cfg.LookbackBlocks
	}
	return 0
}

// blockRange returns the inclusive range following checkpoint, capped by
// max_block_range.
func (e *Engine) blockRange(checkpoint, head uint64) (uint64, uint64) {
	from, to := checkpoint+1, head
	if e.cfg.MaxBlockRange > 0 && to-from+1 > e.cfg.MaxBlockRange {
		to = from + e.cfg.MaxBlockRange - 1
	}
	return from, to
}

func (e *Engine) filterLogs(ctx context.Context, from, to uint64, topic common.Hash) ([]types.Log, error) {
	logs, err := e.chain.FilterLogs(ctx, geth.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{e.contract},
		Topics:    [][]common.Hash{{topic}},
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(logs, func(a, b types.Log) int {
		if c := cmp.Compare(a.BlockNumber, b.BlockNumber); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return logs, nil
}

func (e *Engine) fetchPlacements(ctx context.Context, from, to uint64) ([]*bet.Placement, error) {
	logs, err := e.filterLogs(ctx, from, to, e.game.BetPlacedTopic())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch placement logs: %w", err)
	}

	placements := make([]*bet.Placement, 0, len(logs))
	for _, lg := range logs {
		ev, err := e.game.ParseBetPlaced(lg)
		if err != nil {
			e.skipMalformed(lg, bet.EventBetPlaced, err)
			continue
		}
		metrics.EventsDetected.WithLabelValues(string(bet.EventBetPlaced)).Inc()
		placements = append(placements, toPlacement(ev))
	}
	return placements, nil
}

func (e *Engine) fetchSettlements(ctx context.Context, from, to uint64) ([]*bet.Settlement, error) {
	logs, err := e.filterLogs(ctx, from, to, e.game.BetSettledTopic())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settlement logs: %w", err)
	}

	settlements := make([]*bet.Settlement, 0, len(logs))
	for _, lg := range logs {
		ev, err := e.game.ParseBetSettled(lg)
		if err != nil {
			e.skipMalformed(lg, bet.EventBetSettled, err)
			continue
		}
		metrics.EventsDetected.WithLabelValues(string(bet.EventBetSettled)).Inc()
		settlements = append(settlements, toSettlement(ev))
	}
	return settlements, nil
}

func (e *Engine) skipMalformed(lg types.Log, eventType bet.EventType, err error) {
	metrics.MalformedLogs.WithLabelValues(string(eventType)).Inc()
	e.logger.Warn("Skipping malformed log",
		zap.String("event_type", string(eventType)),
		zap.Uint64("block", lg.BlockNumber),
		zap.String("tx_hash", lg.TxHash.Hex()),
		zap.Uint("log_index", lg.Index),
		zap.Error(err))
}

func toPlacement(ev *contracts.DiceGameBetPlaced) *bet.Placement {
	return &bet.Placement{
		RequestID:   ev.RequestId.String(),
		Player:      bet.NormalizeAddress(ev.Player.Hex()),
		BetType:     ev.BetType,
		Prediction:  ev.Prediction,
		Amount:      ev.Amount.String(),
		TxHash:      ev.Raw.TxHash.Hex(),
		BlockNumber: ev.Raw.BlockNumber,
		LogIndex:    ev.Raw.Index,
	}
}

func toSettlement(ev *contracts.DiceGameBetSettled) *bet.Settlement {
	return &bet.Settlement{
		RequestID:   ev.RequestId.String(),
		Player:      bet.NormalizeAddress(ev.Player.Hex()),
		Die1:        ev.Die1,
		Die2:        ev.Die2,
		Won:         ev.Won,
		Payout:      ev.Payout.String(),
		TxHash:      ev.Raw.TxHash.Hex(),
		BlockNumber: ev.Raw.BlockNumber,
		LogIndex:    ev.Raw.Index,
	}
}

func (e *Engine) setRunning(running bool) {
	e.statusMu.Lock()
	e.status.Running = running
	e.statusMu.Unlock()
}

func (e *Engine) setChainHead(head uint64) {
	e.statusMu.Lock()
	e.status.ChainHead = head
	e.statusMu.Unlock()
}

func (e *Engine) setCheckpoint(block uint64) {
	e.statusMu.Lock()
	e.status.Checkpoint = block
	e.statusMu.Unlock()
}

func (e *Engine) recordTick(err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	if err != nil {
		e.status.LastError = err.Error()
		return
	}
	now := time.Now().UTC()
	e.status.LastTickAt = &now
	e.status.LastError = ""
}
