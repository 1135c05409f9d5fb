// Package metrics exposes message resolution outcomes as Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"msgsource/internal/ports/output"
	"msgsource/pkg/locale"
)

var _ output.ResolutionObserver = (*Collector)(nil)

const defaultLocaleLabel = "default"

// Collector counts resolutions per outcome.
type Collector struct {
	resolved  *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	defaulted prometheus.Counter
	missing   prometheus.Counter
}

// NewCollector registers the counters with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		resolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "msgsource_messages_resolved_total",
			Help: "Messages resolved from a catalog, by serving catalog locale.",
		}, []string{"locale"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "msgsource_locale_fallbacks_total",
			Help: "Resolutions served by a catalog other than the requested locale.",
		}, []string{"requested", "served"}),
		defaulted: factory.NewCounter(prometheus.CounterOpts{
			Name: "msgsource_default_messages_total",
			Help: "Resolutions answered with the caller's default message.",
		}),
		missing: factory.NewCounter(prometheus.CounterOpts{
			Name: "msgsource_messages_missing_total",
			Help: "Codes found in no catalog and without a default message.",
		}),
	}
}

// Resolved implements output.ResolutionObserver.
func (c *Collector) Resolved(code, requested, servedBy string) {
	served := servedBy
	if served == "" {
		served = defaultLocaleLabel
	}
	c.resolved.WithLabelValues(served).Inc()
	requested = locale.Normalize(requested)
	if requested != "" && requested != servedBy {
		c.fallbacks.WithLabelValues(requested, served).Inc()
	}
}

// Defaulted implements output.ResolutionObserver.
func (c *Collector) Defaulted(code, requested string) {
	c.defaulted.Inc()
}

// Missing implements output.ResolutionObserver.
func (c *Collector) Missing(code, requested string) {
	c.missing.Inc()
}
