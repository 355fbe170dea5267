package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/petegordon/mferoll-sub000/pkg/bet"
)

const serviceName = "BetService"

// logService wraps Service with call logging
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for Service. Successful calls are logged
// at debug level, failures at warn.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) done(method string, start time.Time, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("service", serviceName),
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)),
	)
	if err != nil {
		ls.logger.Warn(method+" failed", append(fields, zap.Error(err))...)
		return
	}
	ls.logger.Debug(method+" completed", fields...)
}

func (ls *logService) GetBet(ctx context.Context, requestID string) (b *bet.Bet, err error) {
	defer func(start time.Time) {
		ls.done("GetBet", start, err, zap.String("request_id", requestID))
	}(time.Now())
	return ls.svc.GetBet(ctx, requestID)
}

func (ls *logService) ListPlayerBets(ctx context.Context, player string, limit, offset int) (bets []*bet.Bet, err error) {
	defer func(start time.Time) {
		ls.done("ListPlayerBets", start, err,
			zap.String("player", player),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Int("count", len(bets)),
		)
	}(time.Now())
	return ls.svc.ListPlayerBets(ctx, player, limit, offset)
}

func (ls *logService) ListRecentSettled(ctx context.Context, limit int) (bets []*bet.Bet, err error) {
	defer func(start time.Time) {
		ls.done("ListRecentSettled", start, err, zap.Int("limit", limit), zap.Int("count", len(bets)))
	}(time.Now())
	return ls.svc.ListRecentSettled(ctx, limit)
}

func (ls *logService) GetPlayerStats(ctx context.Context, player string) (stats *bet.PlayerStats, err error) {
	defer func(start time.Time) {
		ls.done("GetPlayerStats", start, err, zap.String("player", player))
	}(time.Now())
	return ls.svc.GetPlayerStats(ctx, player)
}
