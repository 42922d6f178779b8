// Package metrics содержит счётчики Prometheus для подсистемы аутентификации.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "novelamania"

// Metrics набор счётчиков. Методы безопасно вызывать у nil.
type Metrics struct {
	signIns      *prometheus.CounterVec
	authFailures *prometheus.CounterVec
	evictions    prometheus.Counter
	purged       prometheus.Counter
}

// New регистрирует счётчики в reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		signIns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signins_total",
			Help:      "Sign-in attempts by result.",
		}, []string{"result"}),
		authFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_auth_failures_total",
			Help:      "Rejected authenticated requests by reason.",
		}, []string{"reason"}),
		evictions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_evictions_total",
			Help:      "Sessions evicted by the concurrent session limit.",
		}),
		purged: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_purged_total",
			Help:      "Sessions removed after their TTL.",
		}),
	}
}

// SignIn учитывает попытку входа.
func (m *Metrics) SignIn(result string) {
	if m == nil {
		return
	}
	m.signIns.WithLabelValues(result).Inc()
}

// AuthFailure учитывает отклонённый запрос.
func (m *Metrics) AuthFailure(reason string) {
	if m == nil {
		return
	}
	m.authFailures.WithLabelValues(reason).Inc()
}

// Evicted учитывает вытесненные сессии.
func (m *Metrics) Evicted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.evictions.Add(float64(n))
}

// Purged учитывает удалённые по TTL сессии.
func (m *Metrics) Purged(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.purged.Add(float64(n))
}
