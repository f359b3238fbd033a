// Package metrics collects and exposes Prometheus metrics for dexdash.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/five82/dexdash/internal/share"
)

var _ share.Observer = (*Collector)(nil)

// Collector records provider, session, poll, and alert metrics.
type Collector struct {
	requests        *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	acquisitions    *prometheus.CounterVec
	sessionRejected *prometheus.CounterVec
	polls           *prometheus.CounterVec
	lastValue       prometheus.Gauge
	lastReadingTime prometheus.Gauge
	alerts          prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dexdash_share_requests_total",
			Help: "Provider requests by endpoint and HTTP status (0 for transport failures).",
		}, []string{"endpoint", "status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dexdash_share_request_seconds",
			Help:    "Provider request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		acquisitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dexdash_session_acquisitions_total",
			Help: "Session acquisition attempts by result.",
		}, []string{"result"}),
		sessionRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dexdash_session_rejected_total",
			Help: "Requests rejected by the provider because the session was no longer valid.",
		}, []string{"reason"}),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dexdash_polls_total",
			Help: "Poll cycles by result.",
		}, []string{"result"}),
		lastValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dexdash_glucose_mgdl",
			Help: "Newest glucose value in mg/dL.",
		}),
		lastReadingTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dexdash_glucose_reading_timestamp_seconds",
			Help: "Unix time of the newest glucose reading.",
		}),
		alerts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dexdash_alerts_total",
			Help: "Alerts sounded.",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.requestLatency,
		c.acquisitions,
		c.sessionRejected,
		c.polls,
		c.lastValue,
		c.lastReadingTime,
		c.alerts,
	)

	return c
}

// ObserveRequest records one provider round trip.
func (c *Collector) ObserveRequest(endpoint string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	c.requestLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveAcquire records the outcome of a session acquisition.
func (c *Collector) ObserveAcquire(err error) {
	c.acquisitions.WithLabelValues(result(err)).Inc()
}

// ObserveSessionRejected records a session rejected mid-use.
func (c *Collector) ObserveSessionRejected(reason share.Reason) {
	c.sessionRejected.WithLabelValues(string(reason)).Inc()
}

// RecordPoll records a poll cycle and, when present, the newest reading.
func (c *Collector) RecordPoll(latest *share.GlucoseReading, err error) {
	if err == nil && latest == nil {
		c.polls.WithLabelValues("no_data").Inc()
		return
	}
	c.polls.WithLabelValues(result(err)).Inc()
	if latest != nil {
		c.lastValue.Set(float64(latest.MgDL))
		if !latest.Time.IsZero() {
			c.lastReadingTime.Set(float64(latest.Time.Unix()))
		}
	}
}

// RecordAlert records an alert sounding.
func (c *Collector) RecordAlert() {
	c.alerts.Inc()
}

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// Handler returns an HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
