// Package server serves rendered trend charts over HTTP.
package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/sync/errgroup"

	"github.com/nexusriot/ducktrend/internal/config"
	"github.com/nexusriot/ducktrend/pkg/trend"
	"github.com/nexusriot/ducktrend/pkg/trend/chart"
)

const (
	maxBody         = 1 << 20
	shutdownTimeout = 5 * time.Second
)

//go:embed templates/index.html
var templates embed.FS

var index = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"data":   trend.FormatData,
	"join":   strings.Join,
	"num":    trend.FormatFloat,
	"score":  scoreValue,
	"ms":     func(d time.Duration) int64 { return d.Milliseconds() },
	"policy": func() []string { return config.Policies },
	"caps":   func() []string { return config.Linecaps },
}).ParseFS(templates, "templates/index.html"))

type Server struct {
	base    config.Config
	log     zerolog.Logger
	reg     *prometheus.Registry
	metrics *Metrics
	mux     *http.ServeMux
}

// New returns a server whose requests start from base.
func New(base config.Config, lg zerolog.Logger) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		base:    base,
		log:     lg,
		reg:     reg,
		metrics: NewMetrics(reg),
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /trend.svg", s.handleQuery)
	s.mux.HandleFunc("POST /trend.svg", s.handleBody)
	s.mux.HandleFunc("GET /code", s.handleCode)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return s
}

// Handler wraps the routes with CORS, request ids and access logging.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	})(h)
	h = hlog.RequestIDHandler("req_id", "X-Request-Id")(h)
	h = hlog.NewHandler(s.log)(h)
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})(h)
}

// Serve answers requests on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("serving charts")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info().Msg("shutting down")
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// config returns a copy of the base configuration that requests may modify.
func (s *Server) config() config.Config {
	cfg := s.base
	if s.base.Score != nil {
		v := *s.base.Score
		cfg.Score = &v
	}
	return cfg
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	cfg := s.config()
	if err := applyQuery(&cfg, r.URL.Query()); err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, cfg)
}

func (s *Server) handleBody(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		s.fail(w, r, trend.NewOptionError("body", err))
		return
	}
	cfg := s.config()
	if err := config.Decode(b, &cfg); err != nil {
		s.fail(w, r, trend.NewOptionError("body", err))
		return
	}
	s.render(w, r, cfg)
}

func (s *Server) handleCode(w http.ResponseWriter, r *http.Request) {
	cfg := s.config()
	if err := applyQuery(&cfg, r.URL.Query()); err != nil {
		s.fail(w, r, err)
		return
	}
	code, err := config.Snippet(cfg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, code)
}

type page struct {
	Config config.Config
	SVG    template.HTML
	Code   string
	YAML   string
	Err    error
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cfg := s.config()
	p := page{}
	err := applyQuery(&cfg, r.URL.Query())
	if err == nil {
		var svg []byte
		svg, err = s.build(cfg)
		// produced by the renderer, which escapes attribute values
		p.SVG = template.HTML(svg)
	}
	if err != nil {
		s.metrics.Errors.Inc()
		p.Err = err
	}
	p.Config = cfg
	if code, err := config.Snippet(cfg); err == nil {
		p.Code = code
	}
	if y, err := cfg.YAML(); err == nil {
		p.YAML = string(y)
	}

	var b bytes.Buffer
	if err := index.Execute(&b, p); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if p.Err != nil {
		w.WriteHeader(status(p.Err))
	}
	_, _ = w.Write(b.Bytes())
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, cfg config.Config) {
	svg, err := s.build(cfg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(svg) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", chart.MediaType)
	_, _ = w.Write(svg)
}

// build renders cfg and records the outcome. An empty chart yields no bytes.
func (s *Server) build(cfg config.Config) ([]byte, error) {
	start := time.Now()
	opts, err := cfg.ChartOptions()
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := chart.Render(&b, opts); err != nil {
		return nil, err
	}
	s.metrics.observe(cfg.Smooth, time.Since(start))
	return b.Bytes(), nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.metrics.Errors.Inc()
	code := status(err)
	ev := hlog.FromRequest(r).Warn()
	if code >= http.StatusInternalServerError {
		ev = hlog.FromRequest(r).Error()
	}
	ev.Err(err).Msg("render failed")
	http.Error(w, err.Error(), code)
}

func status(err error) int {
	if config.IsConfigError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func scoreValue(s *float64) string {
	if s == nil {
		return ""
	}
	return trend.FormatFloat(*s)
}
