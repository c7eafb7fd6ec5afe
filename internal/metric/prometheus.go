package metric

import (
	"net/http"
	"sync"

	"github.com/oneee-playground/schedsim/internal/sim"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	SimulationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedsim_simulations_total",
		Help: "Number of handled simulation requests by result",
	}, []string{"result"})

	JobsSimulated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedsim_jobs_simulated_total",
		Help: "Number of jobs across all simulated requests",
	})

	Makespan = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedsim_makespan_units",
		Help:    "Makespan of simulated schedules in time units",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"algorithm"})

	metricsList = []prometheus.Collector{
		SimulationsTotal,
		JobsSimulated,
		Makespan,
	}
)

var registerMetrics sync.Once

func Register() {
	registerMetrics.Do(func() {
		prometheus.MustRegister(metricsList...)
	})
}

func Observe(report sim.Report) {
	JobsSimulated.Add(float64(len(report.Jobs)))
	for _, result := range report.Results() {
		Makespan.WithLabelValues(string(result.Algorithm)).Observe(float64(result.Makespan))
	}
}

// Serve exposes registered metrics on addr until the listener fails.
func Serve(addr string, log *zap.Logger) error {
	Register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Info("starting metrics server",
		zap.String("addr", addr),
		zap.String("endpoint", "/metrics"),
	)

	return http.ListenAndServe(addr, mux)
}
