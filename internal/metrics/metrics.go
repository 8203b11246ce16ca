// Package metrics exposes engine counters as Prometheus metrics on an
// optional loopback HTTP listener. It is pure ambient instrumentation: the
// UCI wire protocol on stdout never touches this package, and a search with
// metrics disabled behaves identically to one with metrics enabled.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the gauges/counters the UCI layer updates from each
// completed iteration's info report; Server wires them onto a /metrics
// endpoint when the engine is started with a listen address configured.
type Collector struct {
	Nodes       prometheus.Counter
	NPS         prometheus.Gauge
	HashFull    prometheus.Gauge
	TTHitRate   prometheus.Gauge
	SearchDepth prometheus.Gauge
}

// NewCollector registers a fresh set of metrics against its own registry,
// so multiple Engine instances in a test binary don't collide on the
// default global registry.
func NewCollector() (*Collector, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		Nodes: factory.NewCounter(prometheus.CounterOpts{
			Name: "gochess_nodes_total",
			Help: "Total search nodes visited since engine start.",
		}),
		NPS: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gochess_nodes_per_second",
			Help: "Nodes per second on the most recently completed iteration.",
		}),
		HashFull: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gochess_tt_hashfull_permille",
			Help: "Transposition table occupancy in permille.",
		}),
		TTHitRate: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gochess_tt_hit_rate",
			Help: "Fraction of TT probes that hit, 0..1, on the most recent search.",
		}),
		SearchDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gochess_search_depth",
			Help: "Depth of the most recently completed iteration.",
		}),
	}, reg
}

// Server serves /metrics on a loopback listener. Callers Start it once at
// engine startup when a listen address is configured; Shutdown stops it.
// The gochess-uci command never calls Shutdown: the listener runs until
// the process exits after "quit".
type Server struct {
	http *http.Server
}

// NewServer builds (but does not start) an HTTP server for reg's registry.
func NewServer(addr string, reg *prometheus.Registry) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &Server{http: &http.Server{Addr: addr, Handler: mux}}
}

// Start runs the listener in the background. Errors other than a clean
// shutdown are sent to errCh so the caller can log them without blocking.
func (s *Server) Start(errCh chan<- error) {
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
}

// Shutdown stops the listener, releasing its port.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
