package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"net/url"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/petegordon/mferoll-sub000/pkg/config"
)

// Client is a read-only EVM JSON-RPC client
type Client struct {
	config *config.ChainConfig
	client *ethclient.Client
	logger *zap.Logger
}

// NewClient dials the configured node. When a chain id is configured it must
// match the one reported by the node.
func NewClient(ctx context.Context, cfg *config.ChainConfig, logger *zap.Logger) (*Client, error) {
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain RPC: %w", err)
	}

	if cfg.ChainID != 0 {
		chainID, err := client.ChainID(ctx)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to get chain id: %w", err)
		}
		if chainID.Cmp(big.NewInt(cfg.ChainID)) != 0 {
			client.Close()
			return nil, fmt.Errorf("chain id mismatch: configured %d, node reports %s", cfg.ChainID, chainID)
		}
	}

	logger.Info("Connected to chain",
		zap.Int64("chain_id", cfg.ChainID),
		zap.String("rpc_host", RedactURL(cfg.RPCURL)),
		zap.String("contract", cfg.ContractAddress))

	return &Client{
		config: cfg,
		client: client,
		logger: logger,
	}, nil
}

// RedactURL reduces a node URL to scheme and host. Paths, queries and
// credentials of hosted endpoints often carry API keys.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "<redacted>"
	}
	return u.Scheme + "://" + u.Host
}

// Close closes the RPC connection
func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// GetLatestBlockNumber gets the latest block number
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return header.Number.Uint64(), nil
}

// FilterLogs returns the logs matching q in block and log index order
func (c *Client) FilterLogs(ctx context.Context, q geth.FilterQuery) ([]types.Log, error) {
	logs, err := c.client.FilterLogs(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to filter logs: %w", err)
	}
	return logs, nil
}
