package infra

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"locking-gateway/middleware/locking/domain"
)

// PromStatsStore exporta as estatísticas de aquisição como métricas
// Prometheus: contadores de concessão/negação por lock e um histograma do
// tempo de espera.
type PromStatsStore struct {
	granted *prometheus.CounterVec
	denied  *prometheus.CounterVec
	waited  *prometheus.HistogramVec
}

// NewPromStatsStore registra os collectors em reg (ou no registrador padrão
// quando reg é nil). Registrar duas vezes no mesmo Registerer retorna erro.
func NewPromStatsStore(reg prometheus.Registerer) (*PromStatsStore, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	s := &PromStatsStore{
		granted: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "locking_acquire_granted_total", Help: "Acquisitions granted, per lock"},
			[]string{"lock"},
		),
		denied: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "locking_acquire_denied_total", Help: "Acquisitions denied by timeout, per lock"},
			[]string{"lock"},
		),
		waited: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "locking_acquire_wait_seconds",
				Help:    "Time spent waiting for a permit",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"lock"},
		),
	}

	for _, c := range []prometheus.Collector{s.granted, s.denied, s.waited} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *PromStatsStore) Record(_ context.Context, ev domain.AcquireEvent) error {
	if ev.Granted {
		s.granted.WithLabelValues(ev.Lock).Inc()
	} else {
		s.denied.WithLabelValues(ev.Lock).Inc()
	}
	s.waited.WithLabelValues(ev.Lock).Observe(ev.Waited.Seconds())
	return nil
}
