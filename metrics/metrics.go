// Package metrics exports benchmark results as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mknyszek/intlist-bench/throughput"
	"github.com/mknyszek/intlist-bench/timing"
)

// Metrics holds the collectors of one process.
type Metrics struct {
	reg *prometheus.Registry

	nsPerElement *prometheus.GaugeVec
	measurements *prometheus.CounterVec
	opsPerSec    *prometheus.GaugeVec
	passes       *prometheus.GaugeVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		nsPerElement: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "intbench_ns_per_element",
			Help: "Most recent single-threaded iteration cost per element",
		}, []string{"impl", "size", "stable"}),
		measurements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intbench_measurements_total",
			Help: "Completed timing measurements",
		}, []string{"impl", "stable"}),
		opsPerSec: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "intbench_throughput_ops_per_second",
			Help: "Aggregate elements read per second across workers",
		}, []string{"impl", "op", "threads", "size"}),
		passes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "intbench_worker_passes",
			Help: "Full passes completed by each worker in the current phase",
		}, []string{"worker"}),
	}
	m.reg.MustRegister(m.nsPerElement, m.measurements, m.opsPerSec, m.passes)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// ObserveTiming records a timing measurement.
func (m *Metrics) ObserveTiming(r timing.Result) {
	stable := strconv.FormatBool(r.Stable)
	m.nsPerElement.WithLabelValues(r.Impl, strconv.Itoa(r.Size), stable).Set(r.NsPerItem)
	m.measurements.WithLabelValues(r.Impl, stable).Inc()
}

// ObserveSample records the per-worker pass counters of one poll.
func (m *Metrics) ObserveSample(s throughput.Sample) {
	for i, c := range s.Counts {
		m.passes.WithLabelValues(strconv.Itoa(i)).Set(float64(c))
	}
}

// ObserveThroughput records the result of one configuration.
func (m *Metrics) ObserveThroughput(r throughput.Result) {
	m.opsPerSec.WithLabelValues(r.Impl, r.Op.String(), strconv.Itoa(r.Threads), strconv.Itoa(r.Size)).Set(r.OpsPerSec)
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		log.Info("serving metrics", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "err", err)
		}
	}()
	return nil
}
