// Package metrics exposes Prometheus collectors for the HTTP server, the
// service layer and LLM calls on a registry owned by the caller.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/scholia/internal/llm"
	"github.com/alexanderramin/scholia/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestDuration *prometheus.HistogramVec
	UseCaseDuration     *prometheus.HistogramVec
	TasksToggled        *prometheus.CounterVec
	TasksAutoFilled     prometheus.Counter
	LLMCallLatency      *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, along with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scholia_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"method", "route", "status"},
		),
		UseCaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scholia_use_case_duration_seconds",
				Help:    "Service use case duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"use_case", "success"},
		),
		TasksToggled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scholia_tasks_toggled_total",
				Help: "Task completion toggles, by resulting state",
			},
			[]string{"completed"},
		),
		TasksAutoFilled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "scholia_tasks_auto_filled_total",
				Help: "Tasks created from phase templates after a phase completed",
			},
		),
		LLMCallLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scholia_llm_call_latency_ms",
				Help:    "LLM call latency in milliseconds",
				Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
			},
			[]string{"task", "status"},
		),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestDuration,
		m.UseCaseDuration,
		m.TasksToggled,
		m.TasksAutoFilled,
		m.LLMCallLatency,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// ObserveUseCase implements service.UseCaseObserver.
func (m *Metrics) ObserveUseCase(_ context.Context, e service.UseCaseEvent) {
	m.UseCaseDuration.WithLabelValues(e.Name, strconv.FormatBool(e.Success)).Observe(e.Duration.Seconds())
	if e.Name != "toggle-task" || !e.Success {
		return
	}
	if completed, ok := e.Fields["completed"].(bool); ok {
		m.TasksToggled.WithLabelValues(strconv.FormatBool(completed)).Inc()
	}
	if n := toFloat(e.Fields["auto_filled"]); n > 0 {
		m.TasksAutoFilled.Add(n)
	}
}

// OnCallComplete implements llm.Observer.
func (m *Metrics) OnCallComplete(e llm.LLMCallEvent) {
	status := "ok"
	if !e.Success {
		status = e.ErrorCode
		if status == "" {
			status = "error"
		}
	}
	m.LLMCallLatency.WithLabelValues(string(e.Task), status).Observe(float64(e.LatencyMs))
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

var (
	_ service.UseCaseObserver = (*Metrics)(nil)
	_ llm.Observer            = (*Metrics)(nil)
)
