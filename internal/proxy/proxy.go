package proxy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Proxy forwards API traffic to the backend verbatim: path, query string and
// body pass through untouched, and the backend's status code and body come
// back unmodified. When the backend cannot be reached the caller gets a 503
// with a fixed JSON error body.
type Proxy struct {
	backend *url.URL
	forward *httputil.ReverseProxy
	log     *zap.SugaredLogger

	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	backendErrors prometheus.Counter
}

// New builds a Proxy for the given backend base URL.
func New(backend string, log *zap.SugaredLogger) (*Proxy, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	trimmed := strings.TrimSpace(backend)
	if trimmed == "" {
		return nil, fmt.Errorf("backend url required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse backend url %q: %w", backend, err)
	}

	registry := prometheus.NewRegistry()
	p := &Proxy{
		backend:  u,
		log:      log,
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vanguard_proxy_requests_total",
			Help: "Requests forwarded to the backend, by method.",
		}, []string{"method"}),
		backendErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vanguard_proxy_backend_errors_total",
			Help: "Forwarded requests that failed to reach the backend.",
		}),
	}
	registry.MustRegister(p.requests, p.backendErrors)

	p.forward = httputil.NewSingleHostReverseProxy(u)
	p.forward.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		p.backendErrors.Inc()
		p.log.Warnw("backend unreachable", "method", r.Method, "path", r.URL.Path, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Backend unreachable"}`))
	}
	return p, nil
}

// Handler returns the proxy's HTTP handler: /metrics plus a wildcard
// forwarder for the mutating and read verbs the backend accepts.
func (p *Proxy) Handler() http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
	r.PathPrefix("/").
		Methods(http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete).
		HandlerFunc(p.serve)
	return r
}

// ListenAndServe runs the proxy on addr until ctx is cancelled.
func (p *Proxy) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           p.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("proxy server: %w", err)
	}
}

func (p *Proxy) serve(w http.ResponseWriter, r *http.Request) {
	p.requests.WithLabelValues(r.Method).Inc()
	p.forward.ServeHTTP(w, r)
}
