package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/vietddude/codemarket/internal/core/domain"
	"github.com/vietddude/codemarket/internal/infra/storage"
)

// Load reads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		// Expand environment variables in the YAML content
		expandedData := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	if cfg.Wallet.Transport == "" {
		cfg.Wallet.Transport = TransportHTTP
		if strings.HasPrefix(cfg.Wallet.URL, "ws://") || strings.HasPrefix(cfg.Wallet.URL, "wss://") {
			cfg.Wallet.Transport = TransportWS
		}
	}
	if cfg.Wallet.Timeout == 0 {
		cfg.Wallet.Timeout = 2 * time.Minute
	}
	if cfg.Wallet.PollInterval == 0 {
		cfg.Wallet.PollInterval = 2 * time.Second
	}
	if cfg.Wallet.Target.ChainID == "" {
		cfg.Wallet.Target = domain.Sepolia
	}

	if cfg.Marketplace.GasLimit == 0 {
		cfg.Marketplace.GasLimit = domain.DefaultGasLimit
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverFile
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = ".codemarket"
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = storage.DefaultListingsKey
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks enumerated settings.
func (c *AppConfig) Validate() error {
	switch c.Wallet.Transport {
	case TransportHTTP, TransportWS:
	default:
		return fmt.Errorf("unknown wallet transport %q", c.Wallet.Transport)
	}

	switch c.Storage.Driver {
	case DriverFile, DriverMemory:
	case DriverRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("storage driver redis requires redis.url")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("storage driver postgres requires database.url")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
