package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Статусы записи снапшота для метрики PersistWrites
const (
	PersistStatusOK      = "ok"
	PersistStatusDropped = "dropped"
)

// Metrics — счётчики Prometheus для операций витрины и фоновой записи состояния.
type Metrics struct {
	CartMutations  *prometheus.CounterVec
	PersistWrites  *prometheus.CounterVec
	PersistRetries prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CartMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Number of applied cart and favorites mutations by operation.",
		}, []string{"op"}),
		PersistWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_persist_writes_total",
			Help: "Number of state snapshots written to storage by status.",
		}, []string{"status"}),
		PersistRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "storefront_persist_retries_total",
			Help: "Number of retried state snapshot writes.",
		}),
	}
}
