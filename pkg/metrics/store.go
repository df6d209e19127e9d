package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records cart/order store activity. A nil *StoreMetrics is valid
// and records nothing.
type StoreMetrics struct {
	mutations       *prometheus.CounterVec
	ordersCommitted prometheus.Counter
	orderRupees     prometheus.Counter
	storageFailures *prometheus.CounterVec
	malformed       *prometheus.CounterVec
}

// NewStoreMetrics registers the store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations applied, by operation.",
	}, []string{"op"})
	ordersCommitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_committed_total",
		Help: "Orders committed at checkout.",
	})
	orderRupees := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_committed_rupees_total",
		Help: "Sum of committed order totals in rupees.",
	})
	storageFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_storage_failures_total",
		Help: "Persisted store operations that failed, by operation.",
	}, []string{"op"})
	malformed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_malformed_records_total",
		Help: "Persisted records that could not be decoded and were reset to defaults.",
	}, []string{"key"})
	reg.MustRegister(mutations, ordersCommitted, orderRupees, storageFailures, malformed)
	return &StoreMetrics{
		mutations:       mutations,
		ordersCommitted: ordersCommitted,
		orderRupees:     orderRupees,
		storageFailures: storageFailures,
		malformed:       malformed,
	}
}

// IncMutation counts one cart mutation.
func (m *StoreMetrics) IncMutation(op string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// ObserveOrder counts a committed order and its total.
func (m *StoreMetrics) ObserveOrder(total int) {
	if m == nil || m.ordersCommitted == nil {
		return
	}
	m.ordersCommitted.Inc()
	if total > 0 {
		m.orderRupees.Add(float64(total))
	}
}

// IncStorageFailure counts a failed load/save/reset.
func (m *StoreMetrics) IncStorageFailure(op string) {
	if m == nil || m.storageFailures == nil {
		return
	}
	m.storageFailures.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncMalformed counts a record that fell back to its default.
func (m *StoreMetrics) IncMalformed(key string) {
	if m == nil || m.malformed == nil {
		return
	}
	m.malformed.WithLabelValues(normalizeLabel(key)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
