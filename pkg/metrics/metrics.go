package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arnavshah/shelter-scheduler-go/pkg/scheduler"
)

const namespace = "shelter"

// Recorder holds the collectors describing scheduling runs
type Recorder struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	items       *prometheus.CounterVec
	waivers     prometheus.Counter
	reschedules prometheus.Counter
	duration    prometheus.Histogram
}

// NewRecorder registers the collectors on a fresh registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_runs_total",
			Help:      "Scheduling runs by outcome.",
		}, []string{"outcome"}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_items_total",
			Help:      "Schedule items by result.",
		}, []string{"result"}),
		waivers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "volunteer_waivers_total",
			Help:      "Hours whose budget was raised by an approved volunteer.",
		}),
		reschedules: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reschedules_total",
			Help:      "Items moved to a new hour.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schedule_run_duration_seconds",
			Help:      "Duration of scheduling runs.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	r.registry.MustRegister(r.runs, r.items, r.waivers, r.reschedules, r.duration)
	return r
}

// Observe records a finished run. A nil result counts as a failed run.
func (r *Recorder) Observe(result *scheduler.Result, elapsed time.Duration) {
	r.duration.Observe(elapsed.Seconds())
	if result == nil {
		r.runs.WithLabelValues("failed").Inc()
		return
	}

	outcome := "complete"
	if len(result.Unresolved) > 0 {
		outcome = "partial"
	}
	r.runs.WithLabelValues(outcome).Inc()
	r.items.WithLabelValues("placed").Add(float64(result.Placed()))
	r.items.WithLabelValues("unresolved").Add(float64(len(result.Unresolved)))
	r.waivers.Add(float64(result.Volunteers))
	r.reschedules.Add(float64(result.Rescheduled))
}

// Handler exposes the registry in the prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
