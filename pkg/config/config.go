package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the indexer process configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Chain      ChainConfig      `yaml:"chain"`
	Indexer    IndexerConfig    `yaml:"indexer"`
	WebSocket  WebSocketConfig  `yaml:"websocket"`
	Cache      CacheConfig      `yaml:"cache"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host" default:"localhost" validate:"required"`
	Port     int    `yaml:"port" default:"5432" validate:"min=1,max=65535"`
	User     string `yaml:"user" default:"postgres"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"mferoll" validate:"required"`
	SSLMode  string `yaml:"ssl_mode" default:"disable" validate:"oneof=disable require verify-ca verify-full"`
}

// GetConnectionString returns the PostgreSQL connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// ChainConfig contains the EVM node and game contract settings.
// An empty ContractAddress disables indexing, and RPCURL is then optional.
type ChainConfig struct {
	RPCURL          string `yaml:"rpc_url" validate:"required_with=ContractAddress"`
	ChainID         int64  `yaml:"chain_id"`
	ContractAddress string `yaml:"contract_address" validate:"omitempty,eth_addr"`
}

// IndexerConfig controls the polling loop
type IndexerConfig struct {
	PollInterval   time.Duration `yaml:"poll_interval" default:"3s" validate:"gt=0"`
	LookbackBlocks uint64        `yaml:"lookback_blocks" default:"1000"`
	StartBlock     uint64        `yaml:"start_block"`
	MaxBlockRange  uint64        `yaml:"max_block_range" default:"2000"`
	TickTimeout    time.Duration `yaml:"tick_timeout" default:"30s" validate:"gt=0"`
}

// WebSocketConfig contains real-time channel settings
type WebSocketConfig struct {
	MaxConnections  int           `yaml:"max_connections" default:"1000" validate:"min=1"`
	SendBufferSize  int           `yaml:"send_buffer_size" default:"64" validate:"min=1"`
	ReadBufferSize  int           `yaml:"read_buffer_size" default:"1024"`
	WriteBufferSize int           `yaml:"write_buffer_size" default:"1024"`
	MaxMessageSize  int64         `yaml:"max_message_size" default:"4096"`
	WriteWait       time.Duration `yaml:"write_wait" default:"10s"`
	PongWait        time.Duration `yaml:"pong_wait" default:"60s"`
	PingInterval    time.Duration `yaml:"ping_interval" default:"54s"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// CacheConfig contains the player stats cache settings.
// An empty RedisAddr disables the cache.
type CacheConfig struct {
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTL           time.Duration `yaml:"ttl" default:"30s"`
	KeyPrefix     string        `yaml:"key_prefix" default:"mferoll:stats:"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled bool `yaml:"enabled" default:"true"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// Load reads configuration from a YAML file. ${VAR} references are expanded
// from the environment before parsing.
func Load(configPath string) (*Config, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes, defaults and validates raw YAML configuration
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if err := yaml.Unmarshal(expandEnv(raw), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} with the environment value of VAR. Any other
// "$" is kept literally.
func expandEnv(raw []byte) []byte {
	return envRef.ReplaceAllFunc(raw, func(ref []byte) []byte {
		return []byte(os.Getenv(string(envRef.FindSubmatch(ref)[1])))
	})
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%s: failed on %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return err
	}
	if cfg.WebSocket.PingInterval >= cfg.WebSocket.PongWait {
		return fmt.Errorf("websocket.ping_interval must be shorter than websocket.pong_wait")
	}
	return nil
}
