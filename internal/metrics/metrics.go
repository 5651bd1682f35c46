// Package metrics collects and exposes Prometheus metrics for the notifier
// jobs.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers counters for dispatches, push delivery, and sweeps.
type Collector struct {
	dispatched      *prometheus.CounterVec
	pushFailures    prometheus.Counter
	pushSkipped     prometheus.Counter
	historyFailures prometheus.Counter
	sweptRecords    prometheus.Counter
	jobRuns         *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifier_dispatched_total",
			Help: "Notifications dispatched, by kind.",
		}, []string{"kind"}),
		pushFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "notifier_push_failures_total",
			Help: "Push deliveries that failed (stale token, provider error).",
		}),
		pushSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "notifier_push_skipped_total",
			Help: "Dispatches where the user had no delivery token.",
		}),
		historyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "notifier_history_write_failures_total",
			Help: "In-app history writes that failed.",
		}),
		sweptRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "notifier_swept_records_total",
			Help: "Notification history records deleted by the retention sweep.",
		}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifier_job_runs_total",
			Help: "Job runs, by job name and success.",
		}, []string{"job", "success"}),
	}

	reg.MustRegister(
		c.dispatched,
		c.pushFailures,
		c.pushSkipped,
		c.historyFailures,
		c.sweptRecords,
		c.jobRuns,
	)
	return c
}

func (c *Collector) RecordDispatch(kind string) {
	c.dispatched.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordPushFailure() {
	c.pushFailures.Inc()
}

func (c *Collector) RecordPushSkipped() {
	c.pushSkipped.Inc()
}

func (c *Collector) RecordHistoryFailure() {
	c.historyFailures.Inc()
}

func (c *Collector) RecordSweptRecords(n int64) {
	c.sweptRecords.Add(float64(n))
}

func (c *Collector) RecordJobRun(job string, success bool) {
	c.jobRuns.WithLabelValues(job, strconv.FormatBool(success)).Inc()
}

// Handler serves the metrics registered on reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
