// Package metrics defines the custom Prometheus metrics shared by the rental
// platform services. It is the single source of truth for metric names,
// labels, and help strings; promauto registers everything with the default
// registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rental"

// TokenVerificationsTotal counts identity verification attempts made through
// the remote identity client.
// Label:
//   - outcome: "ok", "rejected" (header shape), or "failed" (verify call)
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verification attempts, by outcome.",
	},
	[]string{"outcome"},
)

// EnrichmentTotal counts per-item enrichment decisions on read paths.
// Labels:
//   - resource: "property" or "favorite"
//   - result: "enriched", "degraded", "skipped" (no caller token), "failed"
var EnrichmentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrichment_total",
		Help:      "Total number of per-item enrichment attempts, by resource and result.",
	},
	[]string{"resource", "result"},
)

// UpstreamRequestDuration measures the latency of outbound calls to sibling
// services.
// Label:
//   - target: "auth" or "user"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of outbound HTTP calls to sibling services.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"target"},
)

// FavoriteConflictsTotal counts rejected duplicate favorite inserts.
var FavoriteConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favorite_conflicts_total",
		Help:      "Total number of favorite inserts rejected as duplicates.",
	},
)
