package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Scan metrics
	instrumentsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "seasonal_scanner_instruments_processed_total",
			Help: "Total number of instruments scanned successfully",
		},
	)

	instrumentsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seasonal_scanner_instruments_skipped_total",
			Help: "Total number of instruments skipped during a scan",
		},
		[]string{"reason"},
	)

	windowsEvaluated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "seasonal_scanner_windows_evaluated_total",
			Help: "Total number of candidate windows evaluated",
		},
	)

	patternsFound = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seasonal_scanner_patterns_found_total",
			Help: "Total number of consistent patterns found",
		},
		[]string{"direction"},
	)

	// Backtest metrics
	tradesSimulated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seasonal_scanner_trades_simulated_total",
			Help: "Total number of backtest trades simulated",
		},
		[]string{"ticker"},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(instrumentsProcessed)
	prometheus.MustRegister(instrumentsSkipped)
	prometheus.MustRegister(windowsEvaluated)
	prometheus.MustRegister(patternsFound)
	prometheus.MustRegister(tradesSimulated)
}

// MetricsHandler handles the Prometheus metrics endpoint.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint.
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordInstrumentProcessed records a successfully scanned instrument.
func RecordInstrumentProcessed() {
	instrumentsProcessed.Inc()
}

// RecordInstrumentSkipped records an instrument skipped for a reason.
func RecordInstrumentSkipped(reason string) {
	instrumentsSkipped.WithLabelValues(reason).Inc()
}

// RecordWindowEvaluated records an evaluated candidate window.
func RecordWindowEvaluated() {
	windowsEvaluated.Inc()
}

// RecordPatternFound records a classified pattern by direction.
func RecordPatternFound(direction string) {
	patternsFound.WithLabelValues(direction).Inc()
}

// RecordTradeSimulated records a counted backtest trade.
func RecordTradeSimulated(ticker string) {
	tradesSimulated.WithLabelValues(ticker).Inc()
}
