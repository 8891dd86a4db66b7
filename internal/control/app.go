// Package control wires configuration into a running marketplace: storage,
// wallet transport, session manager, listing store and health endpoints.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/vietddude/codemarket/internal/core/config"
	"github.com/vietddude/codemarket/internal/core/notify"
	"github.com/vietddude/codemarket/internal/health"
	redisclient "github.com/vietddude/codemarket/internal/infra/redis"
	"github.com/vietddude/codemarket/internal/infra/rpc"
	"github.com/vietddude/codemarket/internal/infra/storage"
	"github.com/vietddude/codemarket/internal/infra/storage/file"
	"github.com/vietddude/codemarket/internal/infra/storage/memory"
	"github.com/vietddude/codemarket/internal/infra/storage/postgres"
	"github.com/vietddude/codemarket/internal/market"
	"github.com/vietddude/codemarket/internal/wallet"
)

// App is the assembled marketplace.
type App struct {
	cfg *config.AppConfig

	Wallet *wallet.Manager
	Store  *market.Store

	transport   rpc.Transport
	repo        storage.EntryRepository
	db          *postgres.DB
	redisClient *redisclient.Client
	healthMon   *health.Monitor
	log         *slog.Logger
}

// New builds every component. Nothing talks to the wallet until Start.
func New(ctx context.Context, cfg *config.AppConfig, notifier notify.Notifier) (*App, error) {
	a := &App{cfg: cfg, log: slog.Default()}

	// 1. Initialize Storage
	if err := a.openStorage(ctx); err != nil {
		return nil, err
	}

	// 2. Initialize Wallet Transport
	var provider wallet.Provider
	if cfg.Wallet.URL != "" {
		t, err := dialTransport(ctx, cfg.Wallet)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.transport = t
		provider = wallet.NewRPCProvider(t, cfg.Wallet.PollInterval, a.log)
	} else {
		a.log.Warn("No wallet provider configured")
	}

	// 3. Session and Store
	a.Wallet = wallet.NewManager(provider, wallet.Config{
		Target:   cfg.Wallet.Target,
		Notifier: notifier,
		Logger:   a.log,
	})

	var payer market.Payer
	if provider != nil {
		payer = provider
	}
	a.Store = market.NewStore(a.repo, a.Wallet, payer, market.Config{
		Key:      cfg.Storage.Key,
		Owner:    cfg.Marketplace.OwnerAddress,
		GasLimit: cfg.Marketplace.GasLimit,
		Logger:   a.log,
	})

	// 4. Health Monitor
	var pinger health.Pinger
	switch {
	case a.db != nil:
		pinger = a.db
	case a.redisClient != nil:
		pinger = a.redisClient
	}
	a.healthMon = health.NewMonitor(a.Wallet, a.transport, a.Store, pinger)

	return a, nil
}

func (a *App) openStorage(ctx context.Context) error {
	switch a.cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, a.cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to init db: %w", err)
		}
		a.db = db
		a.repo = postgres.NewEntryRepo(db)
		a.log.Info("Using PostgreSQL storage")
	case config.DriverRedis:
		client, err := redisclient.NewClient(a.cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redisClient = client
		a.repo = client
		a.log.Info("Using Redis storage")
	case config.DriverMemory:
		a.repo = memory.NewMemoryStorage()
		a.log.Debug("Using Memory storage")
	default:
		store, err := file.NewStore(a.cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("failed to open storage dir: %w", err)
		}
		a.repo = store
		a.log.Debug("Using file storage", "path", a.cfg.Storage.Path)
	}
	return nil
}

func dialTransport(ctx context.Context, cfg config.WalletConfig) (rpc.Transport, error) {
	if cfg.Transport == config.TransportWS {
		dialCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		t, err := rpc.DialWS(dialCtx, "wallet", cfg.URL, slog.Default())
		if err != nil {
			return nil, fmt.Errorf("failed to dial wallet bridge: %w", err)
		}
		return t, nil
	}
	return rpc.NewHTTPTransport("wallet", cfg.URL, cfg.Timeout), nil
}

// Start loads listings and restores an already-authorized wallet session.
func (a *App) Start(ctx context.Context) {
	a.Store.Initialize(ctx)
	a.Wallet.Start(ctx)
}

// Run serves health and metrics and follows wallet events until ctx ends.
// A chainChanged event re-derives the session and reloads the listing
// collection.
func (a *App) Run(ctx context.Context) error {
	// Events arrive on the transport's read loop; wallet calls made there
	// would never get their responses, so the reload runs on its own goroutine.
	// Changes that arrive while one is pending collapse into it.
	reloads := make(chan struct{}, 1)
	a.Wallet.SetReload(func() {
		select {
		case reloads <- struct{}{}:
		default:
		}
	})
	defer a.Wallet.SetReload(nil)

	server := health.NewServer(a.healthMon, a.cfg.Server.Port)

	if a.db != nil {
		a.db.StartMetricsCollector(ctx)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("Health server listening", "port", a.cfg.Server.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Wallet.Timeout)
		defer cancel()
		return server.Stop(shutdownCtx)
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-reloads:
				a.reload(ctx)
			}
		}
	})
	if ws, ok := a.transport.(*rpc.WSTransport); ok {
		g.Go(func() error {
			select {
			case <-ws.Done():
				return fmt.Errorf("wallet bridge connection closed")
			case <-ctx.Done():
				return nil
			}
		})
	}
	return g.Wait()
}

func (a *App) reload(ctx context.Context) {
	a.log.Info("Network changed, reloading session and listings")
	if err := a.Wallet.Refresh(ctx); err != nil {
		a.log.Error("Error re-checking wallet session", "error", err)
	}
	a.Store.Initialize(ctx)
}

// Health returns the current health report.
func (a *App) Health(ctx context.Context) health.HealthReport {
	return a.healthMon.CheckHealth(ctx)
}

// Close releases the wallet subscription, transport and storage clients.
func (a *App) Close() {
	if a.Wallet != nil {
		a.Wallet.Close()
	}
	if a.transport != nil {
		if err := a.transport.Close(); err != nil {
			a.log.Warn("Failed to close wallet transport", "error", err)
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Warn("Failed to close Redis", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("Failed to close database", "error", err)
		}
	}
}
