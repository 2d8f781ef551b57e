package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success Outcome = "success"
	Error   Outcome = "error"
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                         sync.Once
	metricsRouter                *chi.Mux
	httpRequestDurationHistogram *prometheus.HistogramVec
	hubExecutionCounter          *prometheus.CounterVec
	hubExchangeRateGauge         *prometheus.GaugeVec
	hubTotalBondedGauge          *prometheus.GaugeVec
	queueProcessingDuration      *prometheus.HistogramVec
	outboxPublishedCounter       prometheus.Counter
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	go func() {
		metricsAddr := fmt.Sprintf(":%d", metricsPort)
		err := http.ListenAndServe(metricsAddr, metricsRouter)
		if err != nil {
			log.Fatal().Err(err).Msgf("error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"endpoint", "status"},
	)

	hubExecutionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_execution_total",
			Help: "Number of hub executions by message and outcome.",
		},
		[]string{"msg", "outcome"},
	)

	hubExchangeRateGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hub_exchange_rate",
			Help: "Exchange rate of each liquid staking token after the last committed execution.",
		},
		[]string{"token"},
	)

	hubTotalBondedGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hub_total_bonded",
			Help: "Bonded amount backing each liquid staking token, in the underlying denom.",
		},
		[]string{"token"},
	)

	queueProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "queue_message_processing_seconds",
			Help:    "Histogram of queue message processing durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"queue", "status"},
	)

	outboxPublishedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_outbox_published_total",
			Help: "Number of outbound messages published to the relayer queue.",
		},
	)

	prometheus.MustRegister(
		httpRequestDurationHistogram,
		hubExecutionCounter,
		hubExchangeRateGauge,
		hubTotalBondedGauge,
		queueProcessingDuration,
		outboxPublishedCounter,
	)
}

// StartHttpRequestDurationTimer starts a timer to measure http request handling duration.
func StartHttpRequestDurationTimer(endpoint string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		httpRequestDurationHistogram.WithLabelValues(endpoint, fmt.Sprintf("%d", statusCode)).Observe(duration)
	}
}

// RecordHubExecution counts one execution of msg. Recording before Init is a no-op.
func RecordHubExecution(msg string, outcome string) {
	if hubExecutionCounter == nil {
		return
	}
	hubExecutionCounter.WithLabelValues(msg, outcome).Inc()
}

// RecordHubState exports the rate and bonded amount of token.
func RecordHubState(token string, exchangeRate, totalBonded float64) {
	if hubExchangeRateGauge == nil {
		return
	}
	hubExchangeRateGauge.WithLabelValues(token).Set(exchangeRate)
	hubTotalBondedGauge.WithLabelValues(token).Set(totalBonded)
}

// StartQueueProcessingTimer starts a timer to measure how long a queue message takes to handle.
func StartQueueProcessingTimer(queueName string) func(err error) {
	startTime := time.Now()
	return func(err error) {
		if queueProcessingDuration == nil {
			return
		}
		status := Success
		if err != nil {
			status = Error
		}
		queueProcessingDuration.WithLabelValues(queueName, status.String()).Observe(time.Since(startTime).Seconds())
	}
}

func RecordOutboxPublished(count int) {
	if outboxPublishedCounter == nil {
		return
	}
	outboxPublishedCounter.Add(float64(count))
}
