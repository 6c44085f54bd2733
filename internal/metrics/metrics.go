// Package metrics exposes Prometheus counters for catalog administration.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	Mutations    *prometheus.CounterVec
	CompatChecks *prometheus.CounterVec
}

func New(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_mutations_total",
			Help:      "Catalog mutations issued through the admin API",
		}, []string{"entity", "action", "status"}),
		CompatChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compat_checks_total",
			Help:      "Preset compatibility checks by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(c.Mutations, c.CompatChecks)
	return c
}

// Mutation counts one create/update/delete/image call. A nil collector is a no-op.
func (c *Collector) Mutation(entity, action string, err error) {
	if c == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.Mutations.WithLabelValues(entity, action, status).Inc()
}

func (c *Collector) CompatCheck(warnings int) {
	if c == nil {
		return
	}
	outcome := "compatible"
	if warnings > 0 {
		outcome = "warnings"
	}
	c.CompatChecks.WithLabelValues(outcome).Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
