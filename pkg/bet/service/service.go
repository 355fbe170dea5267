package service

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	apperrors "github.com/petegordon/mferoll-sub000/pkg/app/errors"
	"github.com/petegordon/mferoll-sub000/pkg/bet"
	"github.com/petegordon/mferoll-sub000/pkg/betstore"
)

// Page size bounds for list queries
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Store is the read side of the bet store used by the query service.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	GetBet(ctx context.Context, requestID string) (*bet.Bet, error)
	ListBetsByPlayer(ctx context.Context, player string, limit, offset int) ([]*bet.Bet, error)
	ListRecentSettledBets(ctx context.Context, limit int) ([]*bet.Bet, error)
}

// StatsCache memoizes computed player stats. Get returns nil stats on a miss
// along with the player's invalidation generation; Set only stores stats
// computed under a generation that is still current.
//
//go:generate mockery --name StatsCache --output mocks --outpkg mocks --filename mock_stats_cache.go --with-expecter
type StatsCache interface {
	Get(ctx context.Context, player string) (*bet.PlayerStats, uint64, error)
	Set(ctx context.Context, stats *bet.PlayerStats, gen uint64) error
}

// Service answers bet history and player stats queries
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	GetBet(ctx context.Context, requestID string) (*bet.Bet, error)
	ListPlayerBets(ctx context.Context, player string, limit, offset int) ([]*bet.Bet, error)
	ListRecentSettled(ctx context.Context, limit int) ([]*bet.Bet, error)
	GetPlayerStats(ctx context.Context, player string) (*bet.PlayerStats, error)
}

type betService struct {
	store  Store
	cache  StatsCache
	logger *zap.Logger
}

// NewService creates the query service. cache may be nil, in which case stats
// are computed from the store on every call.
func NewService(store Store, cache StatsCache, logger *zap.Logger) Service {
	return &betService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

func (s *betService) GetBet(ctx context.Context, requestID string) (*bet.Bet, error) {
	id, err := normalizeRequestID(requestID)
	if err != nil {
		return nil, err
	}

	b, err := s.store.GetBet(ctx, id)
	if errors.Is(err, betstore.ErrBetNotFound) {
		return nil, apperrors.ResourceNotFoundError(err, "bet not found")
	}
	if err != nil {
		return nil, apperrors.DependencyError(err, "failed to load bet")
	}
	return b, nil
}

func (s *betService) ListPlayerBets(ctx context.Context, player string, limit, offset int) ([]*bet.Bet, error) {
	addr, err := normalizePlayer(player)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, apperrors.BadRequestError(nil, "offset must not be negative")
	}

	bets, err := s.store.ListBetsByPlayer(ctx, addr, clampLimit(limit), offset)
	if err != nil {
		return nil, apperrors.DependencyError(err, "failed to list bets")
	}
	return nonNil(bets), nil
}

func (s *betService) ListRecentSettled(ctx context.Context, limit int) ([]*bet.Bet, error) {
	bets, err := s.store.ListRecentSettledBets(ctx, clampLimit(limit))
	if err != nil {
		return nil, apperrors.DependencyError(err, "failed to list bets")
	}
	return nonNil(bets), nil
}

// GetPlayerStats serves cached stats when present; otherwise it aggregates
// every bet of the player and refreshes the cache. Cache failures only cost
// a recomputation. The cache is not written back when the read failed, since
// the generation is then unknown.
func (s *betService) GetPlayerStats(ctx context.Context, player string) (*bet.PlayerStats, error) {
	addr, err := normalizePlayer(player)
	if err != nil {
		return nil, err
	}

	var (
		gen       uint64
		writeBack bool
	)
	if s.cache != nil {
		cached, g, err := s.cache.Get(ctx, addr)
		switch {
		case err != nil:
			s.logger.Warn("Stats cache read failed", zap.String("player", addr), zap.Error(err))
		case cached != nil:
			return cached, nil
		default:
			gen, writeBack = g, true
		}
	}

	bets, err := s.store.ListBetsByPlayer(ctx, addr, 0, 0)
	if err != nil {
		return nil, apperrors.DependencyError(err, "failed to load bets")
	}

	stats, err := bet.ComputeStats(addr, bets)
	if err != nil {
		return nil, apperrors.GeneralError(err)
	}

	if writeBack {
		if err := s.cache.Set(ctx, stats, gen); err != nil {
			s.logger.Warn("Stats cache write failed", zap.String("player", addr), zap.Error(err))
		}
	}
	return stats, nil
}

func normalizePlayer(player string) (string, error) {
	if !common.IsHexAddress(player) {
		return "", apperrors.BadRequestError(nil, "invalid address")
	}
	return bet.NormalizeAddress(player), nil
}

// normalizeRequestID accepts a non-negative decimal integer and returns its
// canonical form (no sign, no leading zeros).
func normalizeRequestID(id string) (string, error) {
	n, ok := new(big.Int).SetString(id, 10)
	if !ok || n.Sign() < 0 || id[0] == '+' {
		return "", apperrors.BadRequestError(nil, "invalid request id")
	}
	return n.String(), nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

func nonNil(bets []*bet.Bet) []*bet.Bet {
	if bets == nil {
		return []*bet.Bet{}
	}
	return bets
}
