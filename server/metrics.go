package server

import (
	"github.com/activecm/mdl/pkg/mdl"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdl"

const (
	kindIP     = "ip"
	kindDomain = "domain"
)

// metrics are registered on a registry owned by a single Server
type metrics struct {
	lookups *prometheus.CounterVec
	hits    *prometheus.CounterVec
}

func newMetrics(registry prometheus.Registerer, list *mdl.List) *metrics {
	m := &metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Total number of lookups served.",
		}, []string{"kind"}),

		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_hits_total",
			Help:      "Total number of lookups which matched at least one entry.",
		}, []string{"kind"}),
	}

	records := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "records",
		Help:      "Number of entries loaded from the malware domain list.",
	}, func() float64 {
		return float64(list.Len())
	})

	age := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "list_age_days",
		Help:      "Whole days since the malware domain list file was modified, -1 if it is missing.",
	}, func() float64 {
		days, err := list.Age()
		if err != nil {
			return -1
		}
		return float64(days)
	})

	// pre-create the labels so both kinds are exported before the first lookup
	for _, kind := range []string{kindIP, kindDomain} {
		m.lookups.WithLabelValues(kind)
		m.hits.WithLabelValues(kind)
	}

	registry.MustRegister(m.lookups, m.hits, records, age)
	return m
}

// observe counts a lookup of kind and whether it matched
func (m *metrics) observe(kind string, hit bool) {
	m.lookups.WithLabelValues(kind).Inc()
	if hit {
		m.hits.WithLabelValues(kind).Inc()
	}
}
