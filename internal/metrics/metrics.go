package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPCCallsTotal tracks wallet RPC calls per transport and method
	RPCCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codemarket_rpc_calls_total",
			Help: "Total number of wallet RPC calls",
		},
		[]string{"transport", "method"},
	)

	// RPCErrorsTotal tracks wallet RPC errors by kind
	RPCErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codemarket_rpc_errors_total",
			Help: "Total number of wallet RPC errors",
		},
		[]string{"transport", "method", "error_type"},
	)

	// RPCLatency tracks wallet RPC round-trip latency
	RPCLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codemarket_rpc_latency_seconds",
			Help:    "Wallet RPC call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"transport", "method"},
	)

	// PurchasesTotal tracks purchase attempts by outcome
	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codemarket_purchases_total",
			Help: "Total number of purchase attempts by outcome",
		},
		[]string{"outcome"},
	)

	// ListingsCreatedTotal tracks listings added by sellers
	ListingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codemarket_listings_created_total",
			Help: "Total number of listings created",
		},
	)

	// ListingsCount tracks the size of the listing collection
	ListingsCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "codemarket_listings",
			Help: "Number of listings in the collection",
		},
	)

	// PersistErrorsTotal tracks failed writes of the listing collection
	PersistErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codemarket_persist_errors_total",
			Help: "Total number of failed listing collection writes",
		},
	)

	// WalletConnected is 1 while a wallet session is active
	WalletConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "codemarket_wallet_connected",
			Help: "Whether a wallet session is active",
		},
	)

	// WalletEventsTotal tracks provider notifications by kind
	WalletEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codemarket_wallet_events_total",
			Help: "Total number of wallet provider events",
		},
		[]string{"event"},
	)
)

var (
	// DBConnectionPoolUsage tracks open connections as a share of the pool
	DBConnectionPoolUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "codemarket_db_connection_pool_usage_percent",
			Help: "Database connection pool usage percentage",
		},
	)
)
