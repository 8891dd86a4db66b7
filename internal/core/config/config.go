package config

import (
	"time"

	"github.com/vietddude/codemarket/internal/core/domain"
	redisclient "github.com/vietddude/codemarket/internal/infra/redis"
	"github.com/vietddude/codemarket/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Wallet      WalletConfig       `yaml:"wallet"`
	Marketplace MarketplaceConfig  `yaml:"marketplace"`
	Storage     StorageConfig      `yaml:"storage"`
	Server      ServerConfig       `yaml:"server"`
	Redis       redisclient.Config `yaml:"redis"`
	Database    postgres.Config    `yaml:"database"`
	Logging     LoggingConfig      `yaml:"logging"`
}

// WalletConfig points at the wallet provider bridge.
type WalletConfig struct {
	// URL of the JSON-RPC bridge. Empty means no wallet is available.
	URL          string             `yaml:"url"`
	Transport    string             `yaml:"transport"` // http or ws
	Timeout      time.Duration      `yaml:"timeout"`
	PollInterval time.Duration      `yaml:"poll_interval"`
	Target       domain.ChainParams `yaml:"target"`
}

// MarketplaceConfig holds payment settings.
type MarketplaceConfig struct {
	OwnerAddress string `yaml:"owner_address"`
	GasLimit     uint64 `yaml:"gas_limit"`
}

// StorageConfig selects where listings are persisted.
type StorageConfig struct {
	Driver string `yaml:"driver"` // file, redis, postgres, memory
	Path   string `yaml:"path"`   // file driver directory
	Key    string `yaml:"key"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Storage drivers.
const (
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Wallet transports.
const (
	TransportHTTP = "http"
	TransportWS   = "ws"
)
