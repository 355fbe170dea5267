// Package indexer implements app.Runner for the bet indexer process.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	apphttp "github.com/petegordon/mferoll-sub000/pkg/app/http"
	betservice "github.com/petegordon/mferoll-sub000/pkg/bet/service"
	"github.com/petegordon/mferoll-sub000/pkg/betstore"
	"github.com/petegordon/mferoll-sub000/pkg/config"
	"github.com/petegordon/mferoll-sub000/pkg/ethereum"
	engine "github.com/petegordon/mferoll-sub000/pkg/indexer"
	"github.com/petegordon/mferoll-sub000/pkg/notify"
	"github.com/petegordon/mferoll-sub000/pkg/pgutil"
	"github.com/petegordon/mferoll-sub000/pkg/realtime"
	"github.com/petegordon/mferoll-sub000/pkg/statscache"
)

// Server holds the configuration of the indexer process
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new indexer Server
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run starts the indexing engine and the HTTP/WebSocket server. It blocks
// until an OS shutdown signal is received or the HTTP server fails.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("nil config")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting mferoll bet indexer",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port))

	db, err := pgutil.ConnectDB(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	logger.Info("Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database))

	store := betstore.NewStore(db)

	emitter := notify.NewEmitter(logger)
	hub := realtime.NewHub(logger)
	emitter.Subscribe(hub)

	var cache betservice.StatsCache
	if cfg.Cache.RedisAddr != "" {
		redisCache, err := statscache.Connect(ctx, &cfg.Cache, logger)
		if err != nil {
			return err
		}
		defer func() { _ = redisCache.Close() }()
		emitter.Subscribe(redisCache)
		cache = redisCache
		logger.Info("Player stats cache enabled", zap.String("redis_addr", cfg.Cache.RedisAddr))
	}

	var chain engine.ChainClient
	if cfg.Chain.ContractAddress != "" {
		client, err := ethereum.NewClient(ctx, &cfg.Chain, logger)
		if err != nil {
			return err
		}
		defer client.Close()
		chain = client
	}

	applier := engine.NewApplier(store, emitter, logger)
	eng, err := engine.NewEngine(cfg.Indexer, cfg.Chain.ContractAddress, chain, store, applier, logger)
	if err != nil {
		return fmt.Errorf("create indexer engine: %w", err)
	}
	if err := eng.Start(ctx); err != nil {
		return fmt.Errorf("start indexer engine: %w", err)
	}

	queries := betservice.NewLog(betservice.NewService(store, cache, logger), logger)
	router := NewRouter(cfg, Deps{
		Engine:    eng,
		WebSocket: realtime.NewHandler(hub, logger, cfg.WebSocket),
		Bets:      queries,
		Ping:      db.PingContext,
	}, logger)

	err = apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)

	// stop producing events before tearing down their consumers
	if stopErr := eng.Stop(); stopErr != nil && !errors.Is(stopErr, engine.ErrEngineNotRunning) {
		logger.Warn("Indexer engine stop failed", zap.Error(stopErr))
	}
	hub.Close()
	emitter.Close()

	return err
}
