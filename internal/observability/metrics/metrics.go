package metrics

import (
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "loadcalc_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	mutationsTotal *prometheus.CounterVec

	evaluationsTotal *prometheus.CounterVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// CountFunc reports the current number of circuits and devices.
type CountFunc func() (circuits, devices int)

// Init registers load calculator metrics and inventory gauges.
func Init(counts CountFunc, logger *log.Logger) {
	registerOnce.Do(func() {
		mutationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "mutations_total",
				Help: "Total circuit and device mutations by operation and result",
			},
			[]string{"op", "result"},
		)

		evaluationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "evaluations_total",
				Help: "Total load evaluations by resulting status",
			},
			[]string{"status"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total panel export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Panel export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			mutationsTotal,
			evaluationsTotal,
			exportTotal,
			exportLatency,
		)

		if counts != nil {
			registerInventoryMetrics(counts, logger)
		}
	})
}

func registerInventoryMetrics(counts CountFunc, logger *log.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "circuits",
			Help: "Circuits currently modeled",
		},
		func() float64 {
			circuits, _ := counts()
			return float64(circuits)
		},
	))
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "devices",
			Help: "Devices currently attached to circuits",
		},
		func() float64 {
			_, devices := counts()
			return float64(devices)
		},
	))
	if logger != nil {
		logger.Printf("metrics: inventory gauges registered")
	}
}

// IncMutation increments the mutation counter for an operation.
func IncMutation(op, result string) {
	if op == "" {
		op = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if mutationsTotal != nil {
		mutationsTotal.WithLabelValues(op, result).Inc()
	}
}

// IncEvaluation increments the evaluation counter for a status.
func IncEvaluation(status string) {
	if status == "" {
		status = "unknown"
	}
	if evaluationsTotal != nil {
		evaluationsTotal.WithLabelValues(status).Inc()
	}
}

// ObserveExport records export latency and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError

	OpCreateCircuit = "create_circuit"
	OpRemoveCircuit = "remove_circuit"
	OpAddDevice     = "add_device"
	OpRemoveDevice  = "remove_device"
)
