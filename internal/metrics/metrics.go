// Package metrics registers the bot's Prometheus collectors on the default
// registry. The health server exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Failure reason labels for DownloadsFailed.
const (
	ReasonNoOutput  = "no_output"
	ReasonTooLarge  = "too_large"
	ReasonResolver  = "resolver"
	ReasonTransport = "transport"
)

var (
	// DownloadsStarted counts download operations begun.
	DownloadsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ytbot_downloads_started_total",
		Help: "Number of download operations started.",
	})

	// DownloadsSucceeded counts downloads that were delivered to the user.
	DownloadsSucceeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ytbot_downloads_succeeded_total",
		Help: "Number of downloads uploaded back to the user.",
	})

	// DownloadsFailed counts failed downloads by failure reason.
	DownloadsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytbot_downloads_failed_total",
		Help: "Number of failed download operations by reason.",
	}, []string{"reason"})

	// ActiveSessions tracks entries currently held by the session store,
	// including logically expired ones awaiting a sweep.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ytbot_active_sessions",
		Help: "Session entries currently held in memory.",
	})

	// SessionsSwept counts entries evicted by the periodic sweep.
	SessionsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ytbot_sessions_swept_total",
		Help: "Session entries evicted by the TTL sweep.",
	})
)
