package counterhttp

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weegigs/wee-counter-go/counter"
)

const (
	reasonContentType = "content-type"
	reasonBody        = "body"
)

type Metrics struct {
	registry    *prometheus.Registry
	reads       prometheus.Counter
	writes      prometheus.Counter
	badRequests *prometheus.CounterVec
	value       prometheus.Gauge
}

func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		registry: registry,
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "counter_reads_total",
			Help: "Total number of counter reads",
		}),
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "counter_writes_total",
			Help: "Total number of counter writes",
		}),
		badRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counter_bad_requests_total",
				Help: "Total number of rejected counter writes",
			},
			[]string{"reason"},
		),
		value: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "counter_value",
			Help: "Value returned by the next counter read",
		}),
	}

	for _, c := range []prometheus.Collector{m.reads, m.writes, m.badRequests, m.value} {
		if err := registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register counter metrics")
		}
	}

	return m, nil
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// observe is registered with the store and runs under its lock.
func (m *Metrics) observe(stored counter.Counter) {
	m.value.Set(float64(stored.Get()))
}

func (m *Metrics) read() {
	if m == nil {
		return
	}
	m.reads.Inc()
}

func (m *Metrics) written() {
	if m == nil {
		return
	}
	m.writes.Inc()
}

func (m *Metrics) rejected(reason string) {
	if m == nil {
		return
	}
	m.badRequests.WithLabelValues(reason).Inc()
}
