// Package server exposes the daily widget over HTTP for embedding.
// Widgets are cached per variant and local day, and a cron schedule
// refreshes every variant shortly after midnight.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/patrickmn/go-cache"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/dailyword/config"
	"github.com/gaurav-prasanna/dailyword/core"
	"github.com/gaurav-prasanna/dailyword/core/daily"
	"github.com/gaurav-prasanna/dailyword/core/render"
)

const shutdownTimeout = 10 * time.Second

// Server serves rendered widgets.
type Server struct {
	router  *chi.Mux
	svc     *daily.Service
	cache   *cache.Cache
	cron    *cron.Cron
	cfg     config.ServerConfig
	variant core.Variant
	log     zerolog.Logger
}

// New creates a Server and registers the refresh schedule. The schedule is
// not started until ListenAndServe.
func New(cfg *config.Config, svc *daily.Service, log zerolog.Logger) (*Server, error) {
	variant, err := config.ParseVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:  chi.NewRouter(),
		svc:     svc,
		cache:   cache.New(cfg.Server.CacheTTL, 10*time.Minute),
		cfg:     cfg.Server,
		variant: variant,
		log:     log,
	}

	opts := []cron.Option{cron.WithLogger(cronLogger{log: log})}
	if loc, err := time.LoadLocation(cfg.Render.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	}
	s.cron = cron.New(opts...)
	if cfg.Server.RefreshCron != "" {
		_, err := s.cron.AddFunc(cfg.Server.RefreshCron, func() {
			s.Refresh(log.WithContext(context.Background()))
		})
		if err != nil {
			return nil, fmt.Errorf("parsing server.refresh_cron %q: %w", cfg.Server.RefreshCron, err)
		}
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins(),
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/widget", s.handleWidget("html"))
	s.router.Get("/widget.html", s.handleWidget("html"))
	s.router.Get("/widget.json", s.handleWidget("json"))
	s.router.Get("/widget.md", s.handleWidget("markdown"))
	s.router.Get("/widget.txt", s.handleWidget("text"))
	s.router.Get("/widget.pdf", s.handleWidget("pdf"))
}

func (s *Server) allowedOrigins() []string {
	if len(s.cfg.AllowOrigin) == 0 {
		return []string{"*"}
	}
	return s.cfg.AllowOrigin
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

// Widget returns today's widget for a variant, running the pipeline on a
// cache miss. Failed runs are cached for the shorter failure TTL.
func (s *Server) Widget(ctx context.Context, variant core.Variant) (core.Widget, error) {
	key := cacheKey(variant, s.svc.Day())
	if v, ok := s.cache.Get(key); ok {
		return v.(core.Widget), nil
	}
	return s.refreshVariant(ctx, variant)
}

// Refresh re-runs the pipeline for every variant and overwrites the cache.
func (s *Server) Refresh(ctx context.Context) {
	for _, v := range daily.Variants() {
		if _, err := s.refreshVariant(ctx, v); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("variant", string(v)).Msg("Refresh failed")
		}
	}
}

func (s *Server) refreshVariant(ctx context.Context, variant core.Variant) (core.Widget, error) {
	run, err := s.svc.Today(ctx, variant)
	if err != nil {
		return core.Widget{}, err
	}
	ttl := s.cfg.CacheTTL
	if !run.Widget.OK {
		ttl = s.cfg.FailureTTL
	}
	s.cache.Set(cacheKey(variant, run.Day), run.Widget, ttl)
	return run.Widget, nil
}

func cacheKey(variant core.Variant, day time.Time) string {
	return string(variant) + ":" + day.Format(time.DateOnly)
}

// ListenAndServe starts the refresh schedule and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return s.log.WithContext(context.Background()) },
	}

	s.cron.Start()
	defer s.cron.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("Starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleWidget(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		variant := s.variant
		if q := r.URL.Query().Get("variant"); q != "" {
			v, err := config.ParseVariant(q)
			if err != nil {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			variant = v
		}

		renderer, err := render.New(format)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}

		widget, err := s.Widget(r.Context(), variant)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Building widget")
			respondError(w, http.StatusInternalServerError, "widget unavailable")
			return
		}

		data, err := renderer.Render(widget)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Str("format", format).Msg("Rendering widget")
			respondError(w, http.StatusInternalServerError, "render failed")
			return
		}

		w.Header().Set("Content-Type", renderer.ContentType())
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// requestLogger puts the server logger, tagged with the request id, into the
// request context and logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := s.log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
		r = r.WithContext(log.WithContext(r.Context()))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(start)).
			Msg("Request")
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

var _ cron.Logger = cronLogger{}
