package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChainHeadBlock tracks the latest block number reported by the node
	ChainHeadBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mferoll_chain_head_block",
			Help: "Latest block number reported by the chain node",
		},
	)

	// LastProcessedBlock tracks the indexer checkpoint
	LastProcessedBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mferoll_last_processed_block",
			Help: "Last block number indexed",
		},
	)

	// BlocksProcessed counts blocks covered by successful ticks
	BlocksProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mferoll_blocks_processed_total",
			Help: "Total number of blocks indexed",
		},
	)

	// EventsDetected counts decoded game events by type
	EventsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mferoll_events_detected_total",
			Help: "Total number of game events detected",
		},
		[]string{"event_type"},
	)

	// EventsApplied counts game events persisted by type
	EventsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mferoll_events_applied_total",
			Help: "Total number of game events applied to the store",
		},
		[]string{"event_type"},
	)

	// MalformedLogs counts logs skipped because they could not be decoded
	MalformedLogs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mferoll_malformed_logs_total",
			Help: "Total number of logs skipped as malformed",
		},
		[]string{"event_type"},
	)

	// TickDuration tracks indexer tick duration
	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mferoll_indexer_tick_duration_seconds",
			Help:    "Indexer tick duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ErrorsTotal counts errors by component and type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mferoll_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// WSConnections tracks live real-time subscribers
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mferoll_ws_connections",
			Help: "Number of connected real-time subscribers",
		},
	)

	// WSMessagesSent counts frames queued for subscribers by message type
	WSMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mferoll_ws_messages_sent_total",
			Help: "Total number of real-time messages queued for delivery",
		},
		[]string{"type"},
	)

	// WSMessagesDropped counts frames not delivered by reason
	WSMessagesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mferoll_ws_messages_dropped_total",
			Help: "Total number of real-time messages dropped",
		},
		[]string{"reason"},
	)

	// StatsCacheRequests counts player stats cache lookups and skipped
	// write-backs by result (hit, miss, error, stale)
	StatsCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mferoll_stats_cache_requests_total",
			Help: "Total number of player stats cache lookups and stale write-backs",
		},
		[]string{"result"},
	)
)
