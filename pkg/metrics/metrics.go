package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service metric set on a private registry so tests can
// instantiate it without collector name collisions.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal     *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestInFlight  prometheus.Gauge
	checksTotal      *prometheus.CounterVec
	checkConfidence  *prometheus.HistogramVec
	ocrRequestsTotal *prometheus.CounterVec
	ocrTextLength    *prometheus.HistogramVec
	llmRequestsTotal *prometheus.CounterVec
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "formadoc",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "formadoc",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "formadoc",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	checksTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "formadoc",
			Subsystem: "pipeline",
			Name:      "checks_total",
			Help:      "Total document checks by document type and verdict status.",
		},
		[]string{"service", "doc_type", "status"},
	)
	checkConfidence := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "formadoc",
			Subsystem: "pipeline",
			Name:      "check_confidence",
			Help:      "Distribution of verdict confidence by document type.",
			Buckets:   []float64{0.1, 0.25, 0.45, 0.55, 0.65, 0.75, 0.85, 0.9, 0.95, 0.99},
		},
		[]string{"service", "doc_type"},
	)
	ocrRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "formadoc",
			Subsystem: "ocr",
			Name:      "requests_total",
			Help:      "Total text extraction attempts by method and outcome.",
		},
		[]string{"service", "method", "outcome"},
	)
	ocrTextLength := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "formadoc",
			Subsystem: "ocr",
			Name:      "text_length_chars",
			Help:      "Length of extracted text in characters by method.",
			Buckets:   []float64{0, 60, 120, 300, 800, 2000, 5000, 15000},
		},
		[]string{"service", "method"},
	)
	llmRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "formadoc",
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Total LLM calls by operation and outcome.",
		},
		[]string{"service", "operation", "outcome"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		checksTotal,
		checkConfidence,
		ocrRequestsTotal,
		ocrTextLength,
		llmRequestsTotal,
	)

	return &Metrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		checksTotal:      checksTotal,
		checkConfidence:  checkConfidence,
		ocrRequestsTotal: ocrRequestsTotal,
		ocrTextLength:    ocrTextLength,
		llmRequestsTotal: llmRequestsTotal,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count, duration and in-flight gauge for every
// routed request. Registered before the recover middleware so panics still
// count with their mapped status.
func (m *Metrics) Middleware(service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		m.requestTotal.WithLabelValues(
			service,
			c.Method(),
			path,
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()
		m.requestDuration.WithLabelValues(service, c.Method(), path).Observe(time.Since(start).Seconds())

		return err
	}
}

func (m *Metrics) RecordCheck(service, docType, status string, confidence float64) {
	if docType == "" {
		docType = "unknown"
	}
	m.checksTotal.WithLabelValues(service, docType, status).Inc()
	m.checkConfidence.WithLabelValues(service, docType).Observe(confidence)
}

func (m *Metrics) RecordOCR(service, method string, textLength int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ocrRequestsTotal.WithLabelValues(service, method, outcome).Inc()
	if err == nil {
		m.ocrTextLength.WithLabelValues(service, method).Observe(float64(textLength))
	}
}

func (m *Metrics) RecordLLM(service, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.llmRequestsTotal.WithLabelValues(service, operation, outcome).Inc()
}
