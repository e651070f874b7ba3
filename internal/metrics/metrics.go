// Package metrics exposes the field cache engine's tier-hit/miss and
// latency counters via prometheus/client_golang, so an operator can see
// which tier is actually answering reads without instrumenting callers.
// The engine's own tier calls record hits, misses and degradations; the
// latency histogram is registered but is filled only by callers of
// ObserveLatency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Tier names used as the "tier" label value.
const (
	TierLocal	= "local"
	TierShared	= "shared"
	TierStore	= "store"
)

// Recorder bundles the engine's Prometheus collectors. A nil *Recorder is
// safe to call methods on (they become no-ops), so components can accept
// an optional recorder without a nil check at every call site.
type Recorder struct {
	hits		*prometheus.CounterVec
	misses		*prometheus.CounterVec
	latency		*prometheus.HistogramVec
	degraded	*prometheus.CounterVec
}

// NewRecorder builds and registers the engine's collectors against reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fce_tier_hits_total",
			Help: "Field cache engine tier hits, by tier and entity type.",
		}, []string{"tier", "entity"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fce_tier_misses_total",
			Help: "Field cache engine tier misses, by tier and entity type.",
		}, []string{"tier", "entity"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:		"fce_tier_latency_seconds",
			Help:		"Field cache engine tier call latency, by tier and entity type.",
			Buckets:	prometheus.DefBuckets,
		}, []string{"tier", "entity"}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fce_tier_degraded_total",
			Help: "Count of tier degradation events (shared cache call errored).",
		}, []string{"tier", "entity"}),
	}
	reg.MustRegister(r.hits, r.misses, r.latency, r.degraded)
	return r
}

func (r *Recorder) Hit(tier, entity string) {
	if r == nil {
		return
	}
	r.hits.WithLabelValues(tier, entity).Inc()
}

func (r *Recorder) Miss(tier, entity string) {
	if r == nil {
		return
	}
	r.misses.WithLabelValues(tier, entity).Inc()
}

func (r *Recorder) Degraded(tier, entity string) {
	if r == nil {
		return
	}
	r.degraded.WithLabelValues(tier, entity).Inc()
}

func (r *Recorder) ObserveLatency(tier, entity string, seconds float64) {
	if r == nil {
		return
	}
	r.latency.WithLabelValues(tier, entity).Observe(seconds)
}
