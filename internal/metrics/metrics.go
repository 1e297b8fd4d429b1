package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const namespace = "sdscan"

// Metrics are the per-run counters. Each run owns its registry so repeated
// runs in one process (tests) never collide on the global one.
type Metrics struct {
	Registry *prometheus.Registry

	SeedsTotal        prometheus.Gauge
	BranchesCompleted prometheus.Counter
	SequencesAccepted prometheus.Counter
	BatchWriteSeconds prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		SeedsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "seeds_total",
			Help:      "Number of two-element seeds (branches) in this run",
		}),
		BranchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "branches_completed_total",
			Help:      "Branches whose batch has been persisted",
		}),
		SequencesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sequences_accepted_total",
			Help:      "Sequences appended to the result sink",
		}),
		BatchWriteSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_write_seconds",
			Help:      "Time spent appending one non-empty batch to the sink",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	m.Registry.MustRegister(m.SeedsTotal, m.BranchesCompleted, m.SequencesAccepted, m.BatchWriteSeconds)
	return m
}

// RecordBatch accounts for one completed branch.
func (m *Metrics) RecordBatch(rows int, took time.Duration) {
	m.BranchesCompleted.Inc()
	if rows > 0 {
		m.SequencesAccepted.Add(float64(rows))
		m.BatchWriteSeconds.Observe(took.Seconds())
	}
}

// Serve exposes the registry on addr at /metrics until ctx is done or the
// returned stop func is called. It returns once the listener is bound.
func (m *Metrics) Serve(ctx context.Context, addr string) (stop func(), err error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen on %s", addr)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Warn("metrics server stopped")
		}
	}()
	log.Infof("serving metrics on http://%s/metrics", ln.Addr())

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, c := context.WithTimeout(context.Background(), 2*time.Second)
		defer c()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return func() {
		cancel()
		<-done
	}, nil
}
