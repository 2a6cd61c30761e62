// Package metrics exposes the agent's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the service counters.
type Metrics struct {
	MessagesTotal   *prometheus.CounterVec
	PublishesTotal  prometheus.Counter
	PublishFailures prometheus.Counter
	SearchesTotal   prometheus.Counter
	LLMFallbacks    prometheus.Counter
	LLMFailures     prometheus.Counter
}

// New registers the agent metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MessagesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agent_messages_total",
			Help: "Inbound messages by classified intent.",
		}, []string{"intent"}),
		PublishesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "agent_publishes_total",
			Help: "Listings published through the agent.",
		}),
		PublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "agent_publish_failures_total",
			Help: "Publish attempts that failed validation or persistence.",
		}),
		SearchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "agent_searches_total",
			Help: "Listing searches executed.",
		}),
		LLMFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "agent_llm_fallbacks_total",
			Help: "Messages answered by the model fallback.",
		}),
		LLMFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "agent_llm_failures_total",
			Help: "Model calls that returned an error.",
		}),
	}
}

// NewNop returns metrics bound to a throwaway registry, for tests.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
