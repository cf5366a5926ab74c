package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"orangecat-wallets/internal/core/domain"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Storage    StorageConfig    `mapstructure:"storage"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Log        LogConfig        `mapstructure:"log"`
	Bitcoin    BitcoinConfig    `mapstructure:"bitcoin"`
	Blockchain BlockchainConfig `mapstructure:"blockchain"`
	Rates      RatesConfig      `mapstructure:"rates"`
	Refresh    RefreshConfig    `mapstructure:"refresh"`
	Wallets    WalletsConfig    `mapstructure:"wallets"`
	Poller     PollerConfig     `mapstructure:"poller"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrateOnStart  bool          `mapstructure:"migrate_on_start"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return d.url("postgres")
}

// MigrationURL returns the connection string in the form golang-migrate's pgx/v5 driver expects.
func (d DatabaseConfig) MigrationURL() string {
	return d.url("pgx5")
}

func (d DatabaseConfig) url(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// StorageConfig selects the wallet storage backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // postgres, memory
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

type BitcoinConfig struct {
	Network string `mapstructure:"network"` // mainnet, testnet
}

// ProviderConfig describes one blockchain indexer. Order in the list is failover order.
type ProviderConfig struct {
	Name    string `mapstructure:"name"`
	Kind    string `mapstructure:"kind"` // esplora, blockbook
	BaseURL string `mapstructure:"base_url"`
}

type BlockchainConfig struct {
	Providers      []ProviderConfig `mapstructure:"providers"`
	RequestTimeout time.Duration    `mapstructure:"request_timeout"`
	TotalTimeout   time.Duration    `mapstructure:"total_timeout"`
}

type RatesConfig struct {
	Source          string             `mapstructure:"source"` // coingecko, static
	BaseURL         string             `mapstructure:"base_url"`
	APIKey          string             `mapstructure:"api_key"`
	TTL             time.Duration      `mapstructure:"ttl"`
	RefreshInterval time.Duration      `mapstructure:"refresh_interval"`
	RequestTimeout  time.Duration      `mapstructure:"request_timeout"`
	Currencies      []string           `mapstructure:"currencies"`
	Static          map[string]float64 `mapstructure:"static"`
}

type RefreshConfig struct {
	Cooldown time.Duration `mapstructure:"cooldown"`
}

type WalletsConfig struct {
	MaxPerOwner   int           `mapstructure:"max_per_owner"`
	VisibilityTTL time.Duration `mapstructure:"visibility_ttl"`
}

type PollerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Interval    time.Duration `mapstructure:"interval"`
	StaleAfter  time.Duration `mapstructure:"stale_after"`
	BatchSize   int           `mapstructure:"batch_size"`
	Concurrency int           `mapstructure:"concurrency"`
}

// RateLimitRule is a per-caller fixed-window limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64         `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type RateLimitConfig struct {
	Read    RateLimitRule `mapstructure:"read"`
	Write   RateLimitRule `mapstructure:"write"`
	Refresh RateLimitRule `mapstructure:"refresh"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: OCW_ (OrangeCat Wallets).
// Nested keys use underscore: OCW_DATABASE_HOST, OCW_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "orangecat")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.migrate_on_start", true)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "1h")
	v.SetDefault("jwt.issuer", "orangecat")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("bitcoin.network", "mainnet")
	v.SetDefault("blockchain.providers", []map[string]interface{}{
		{"name": "mempool", "kind": "esplora", "base_url": "https://mempool.space/api"},
		{"name": "blockstream", "kind": "esplora", "base_url": "https://blockstream.info/api"},
		{"name": "trezor", "kind": "blockbook", "base_url": "https://btc1.trezor.io/api/v2"},
	})
	v.SetDefault("blockchain.request_timeout", "10s")
	v.SetDefault("blockchain.total_timeout", "20s")
	v.SetDefault("rates.source", "coingecko")
	v.SetDefault("rates.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("rates.api_key", "")
	v.SetDefault("rates.ttl", "5m")
	v.SetDefault("rates.refresh_interval", "60s")
	v.SetDefault("rates.request_timeout", "10s")
	v.SetDefault("rates.currencies", []string{"USD", "EUR", "GBP", "CHF", "CAD", "AUD", "JPY"})
	v.SetDefault("refresh.cooldown", "300s")
	v.SetDefault("wallets.max_per_owner", domain.MaxActiveWalletsPerOwner)
	v.SetDefault("wallets.visibility_ttl", "30s")
	v.SetDefault("poller.enabled", false)
	v.SetDefault("poller.interval", "10m")
	v.SetDefault("poller.stale_after", "1h")
	v.SetDefault("poller.batch_size", 100)
	v.SetDefault("poller.concurrency", 4)
	v.SetDefault("ratelimit.read.limit", 120)
	v.SetDefault("ratelimit.read.window", "1m")
	v.SetDefault("ratelimit.write.limit", 30)
	v.SetDefault("ratelimit.write.window", "1m")
	v.SetDefault("ratelimit.refresh.limit", 20)
	v.SetDefault("ratelimit.refresh.window", "1m")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: OCW_DATABASE_HOST -> database.host
	v.SetEnvPrefix("OCW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints that defaults cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	switch c.Bitcoin.Network {
	case "mainnet", "testnet":
	default:
		return fmt.Errorf("bitcoin.network: unknown network %q", c.Bitcoin.Network)
	}
	if len(c.Blockchain.Providers) == 0 {
		return fmt.Errorf("blockchain.providers: at least one provider is required")
	}
	for i, p := range c.Blockchain.Providers {
		if p.BaseURL == "" {
			return fmt.Errorf("blockchain.providers[%d]: base_url is required", i)
		}
		if p.Kind != "esplora" && p.Kind != "blockbook" {
			return fmt.Errorf("blockchain.providers[%d]: unknown kind %q", i, p.Kind)
		}
	}
	if c.Blockchain.RequestTimeout <= 0 {
		return fmt.Errorf("blockchain.request_timeout must be positive")
	}
	if c.Blockchain.TotalTimeout < c.Blockchain.RequestTimeout {
		return fmt.Errorf("blockchain.total_timeout must be at least request_timeout")
	}
	// The postgres trigger enforces the hard cap regardless of this value.
	if c.Wallets.MaxPerOwner <= 0 || c.Wallets.MaxPerOwner > domain.MaxActiveWalletsPerOwner {
		return fmt.Errorf("wallets.max_per_owner must be between 1 and %d", domain.MaxActiveWalletsPerOwner)
	}
	return nil
}
