// Package server serves the reports over HTTP.
//
//	GET /reports                 kinds, as JSON
//	GET /reports/{kind}?id=12    the report, as application/pdf
//	GET /metrics                 Prometheus metrics
//	GET /healthz                 liveness
//
// Add download=1 to the report query to get an attachment instead of an
// inline document.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/internal/config"
	"github.com/lvillar/calcpdf/model"
	"github.com/lvillar/calcpdf/report"
)

// RequestIDHeader carries the request id, taken from the request when set.
const RequestIDHeader = "X-Request-ID"

// Server renders the reports of a dataset.
type Server struct {
	cfg     *config.Config
	ds      *model.Dataset
	logger  logrus.FieldLogger
	now     func() time.Time
	metrics *metrics
	mux     *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock used for the creation date of the reports.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithRegistry registers the metrics in reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.metrics = newMetrics(reg)
	}
}

// New returns the HTTP handler of the report server.
func New(cfg *config.Config, ds *model.Dataset, logger logrus.FieldLogger, opts ...Option) http.Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	s := &Server{
		cfg:    cfg,
		ds:     ds,
		logger: logger,
		now:    time.Now,
		mux:    http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = newMetrics(prometheus.NewRegistry())
	}

	s.mux.HandleFunc("GET /reports", s.handleKinds)
	s.mux.HandleFunc("GET /reports/{kind}", s.handleReport)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})
	return s
}

type loggerKey struct{}

// ServeHTTP tags the request with an id and dispatches it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, id)
	logger := s.logger.WithFields(logrus.Fields{
		"request_id": id,
		"method":     r.Method,
		"path":       r.URL.Path,
	})
	ctx := context.WithValue(r.Context(), loggerKey{}, logger)

	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r.WithContext(ctx))
	logger.WithFields(logrus.Fields{
		"status":   rec.status,
		"duration": time.Since(start),
	}).Info("Request served.")
}

func loggerFrom(ctx context.Context) logrus.FieldLogger {
	if l, ok := ctx.Value(loggerKey{}).(logrus.FieldLogger); ok {
		return l
	}
	return logrus.StandardLogger()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string][]string{"kinds": report.Kinds()}); err != nil {
		loggerFrom(r.Context()).WithError(err).Error("Encoding kinds.")
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	logger := loggerFrom(r.Context()).WithField("kind", kind)

	id := 0
	if v := r.URL.Query().Get("id"); v != "" {
		var err error
		if id, err = strconv.Atoi(v); err != nil {
			s.error(w, logger, kind, fmt.Errorf("%w: id %q", calcpdf.ErrInvalidParam, v))
			return
		}
	}
	if s.ds == nil {
		s.error(w, logger, kind, calcpdf.ErrNoData)
		return
	}

	start := time.Now()
	rep, err := report.New(kind, s.ds, s.cfg.ReportOptions(id))
	if err != nil {
		s.error(w, logger, kind, err)
		return
	}
	opts := append(s.cfg.DocumentOptions(), calcpdf.WithCreated(s.now()))
	data, err := report.Generate(rep, logger, opts...)
	if err != nil {
		s.error(w, logger, rep.Kind(), err)
		return
	}
	s.metrics.observe(rep.Kind(), "ok", time.Since(start), len(data))

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(data))
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	disposition := "inline"
	if download, _ := strconv.ParseBool(r.URL.Query().Get("download")); download {
		disposition = "attachment"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename(rep.Kind(), id)))
	if _, err := w.Write(data); err != nil {
		logger.WithError(err).Warn("Writing report.")
	}
}

func filename(kind string, id int) string {
	if id > 0 {
		return fmt.Sprintf("%s-%d.pdf", kind, id)
	}
	return kind + ".pdf"
}

// error writes the status matching err.
func (s *Server) error(w http.ResponseWriter, logger logrus.FieldLogger, kind string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, calcpdf.ErrUnknownKind), errors.Is(err, calcpdf.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, calcpdf.ErrInvalidParam):
		status = http.StatusBadRequest
	case errors.Is(err, calcpdf.ErrNoData):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		logger.WithError(err).Error("Report failed.")
	} else {
		logger.WithError(err).Info("Report rejected.")
	}
	// unknown kinds are not counted, the label comes from the path
	if slices.Contains(report.Kinds(), kind) {
		s.metrics.observe(kind, "error", 0, 0)
	}
	http.Error(w, err.Error(), status)
}
