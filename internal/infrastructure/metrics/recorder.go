// Package metrics exposes bridge and API counters to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/chaoxe/miniapp/internal/domain/entity"
)

// Recorder implements port.BridgeObserver and port.RequestObserver.
type Recorder struct {
	bridgeMessages *prometheus.CounterVec
	bridgeDropped  prometheus.Counter
	apiRequests    *prometheus.CounterVec
	apiDuration    *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		bridgeMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chaoxe_bridge_messages_total",
				Help: "Bridge messages dispatched, by type",
			},
			[]string{"type"},
		),
		bridgeDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chaoxe_bridge_dropped_total",
				Help: "Bridge messages ignored because they trailed the first element of a batch",
			},
		),
		apiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chaoxe_api_requests_total",
				Help: "REST requests sent to the backend, by method and status",
			},
			[]string{"method", "status"},
		),
		apiDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chaoxe_api_request_duration_seconds",
				Help:    "Latency of REST requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
	if reg != nil {
		reg.MustRegister(r.bridgeMessages, r.bridgeDropped, r.apiRequests, r.apiDuration)
	}
	return r
}

// ObserveMessage counts one dispatched message.
func (r *Recorder) ObserveMessage(kind entity.MessageKind) {
	r.bridgeMessages.WithLabelValues(string(kind)).Inc()
}

// ObserveDropped counts ignored batch elements.
func (r *Recorder) ObserveDropped(count int) {
	if count > 0 {
		r.bridgeDropped.Add(float64(count))
	}
}

// ObserveRequest records one REST request. Transport failures use the
// status label "error".
func (r *Recorder) ObserveRequest(method string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	r.apiRequests.WithLabelValues(method, label).Inc()
	r.apiDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
