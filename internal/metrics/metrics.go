package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LeadsSubmitted   prometheus.Counter
	EstimatesServed  *prometheus.CounterVec
	OverlayFallbacks *prometheus.CounterVec
	OverlayPending   *prometheus.GaugeVec
	PhotoUploads     *prometheus.CounterVec
}

// New registers every collector on a fresh registry so that several
// instances can coexist.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		LeadsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "leads_submitted_total",
			Help: "Appointments submitted through the public form",
		}),
		EstimatesServed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "estimates_served_total",
			Help: "Estimates computed, by service type",
		}, []string{"service_type"}),
		OverlayFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lead_overlay_fallbacks_total",
			Help: "Lead writes that failed remotely and were kept in the overlay",
		}, []string{"field"}),
		OverlayPending: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lead_overlay_pending",
			Help: "Overlay entries not yet reconciled with the store",
		}, []string{"field"}),
		PhotoUploads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "quote_photo_uploads_total",
			Help: "Quote photo uploads by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

func (m *Metrics) LeadSubmitted() {
	if m == nil {
		return
	}
	m.LeadsSubmitted.Inc()
}

func (m *Metrics) EstimateServed(serviceType string) {
	if m == nil {
		return
	}
	m.EstimatesServed.WithLabelValues(serviceType).Inc()
}

func (m *Metrics) OverlayFallback(field string) {
	if m == nil {
		return
	}
	m.OverlayFallbacks.WithLabelValues(field).Inc()
}

func (m *Metrics) SetOverlayPending(field string, n int) {
	if m == nil {
		return
	}
	m.OverlayPending.WithLabelValues(field).Set(float64(n))
}

func (m *Metrics) PhotoUpload(result string) {
	if m == nil {
		return
	}
	m.PhotoUploads.WithLabelValues(result).Inc()
}
