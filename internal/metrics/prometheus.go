// Package metrics records revctl operations with Prometheus collectors.
//
// revctl is a short-lived CLI, so nothing is served. The registry is written
// to a node-exporter textfile after each command instead.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/glorpus-work/revctl/pkg/fsutil"
)

// PrometheusRecorder implements revision.Recorder and store.RequestRecorder.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	operationTotal    *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a recorder on its own registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		operationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "revctl_operation_total",
				Help: "Total number of revision operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "revctl_operation_duration_seconds",
				Help:    "Duration of revision operations in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation", "outcome"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "revctl_store_request_total",
				Help: "Total number of requests made to the revision store",
			},
			[]string{"method", "success"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "revctl_store_request_duration_seconds",
				Help:    "Duration of revision store requests in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "success"},
		),
	}

	r.registry.MustRegister(
		r.operationTotal,
		r.operationDuration,
		r.requestTotal,
		r.requestDuration,
	)

	return r
}

// Registry returns the registry holding the recorder's collectors.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordOperation records a finished upload, list or activate.
func (r *PrometheusRecorder) RecordOperation(operation, outcome string, duration time.Duration) {
	r.operationTotal.WithLabelValues(operation, outcome).Inc()
	r.operationDuration.WithLabelValues(operation, outcome).Observe(duration.Seconds())
}

// RecordStoreRequest records a single HTTP call to the store.
func (r *PrometheusRecorder) RecordStoreRequest(method string, success bool, duration time.Duration) {
	successLabel := strconv.FormatBool(success)
	r.requestTotal.WithLabelValues(method, successLabel).Inc()
	r.requestDuration.WithLabelValues(method, successLabel).Observe(duration.Seconds())
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The write is atomic so a collector never reads a partial file.
func (r *PrometheusRecorder) WriteTextfile(path string) error {
	if err := fsutil.EnsureFileDir(path); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
