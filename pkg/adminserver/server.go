// Package adminserver exposes a read-only HTTP/WebSocket introspection
// surface over a running buffer pool. It never calls PinPage or mutates
// pool state; it only observes the four §4.3-style snapshot reads.
package adminserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dbkit/pagepool/pkg/storage"
)

// Config holds the admin server's network and polling settings.
type Config struct {
	Host           string
	Port           int
	PollInterval   time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

// DefaultConfig returns sensible defaults for local use.
func DefaultConfig() *Config {
	return &Config{
		Host:         "localhost",
		Port:         8080,
		PollInterval: time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// Server is the admin HTTP server.
type Server struct {
	config    *Config
	pool      *storage.BufferPool
	router    *chi.Mux
	httpSrv   *http.Server
	startTime time.Time
	log       *zap.SugaredLogger
}

// New builds a Server over pool. log may be nil.
func New(config *Config, pool *storage.BufferPool, log *zap.SugaredLogger) *Server {
	s := &Server{
		config:    config,
		pool:      pool,
		router:    chi.NewRouter(),
		startTime: time.Now(),
		log:       log,
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      s.router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/stats", s.jsonHandler(s.handleStats))
	s.router.Get("/frames", s.jsonHandler(s.handleFrames))
	s.router.Get("/ws/stats", s.handleStatsStream)
}

func (s *Server) jsonHandler(fn func(r *http.Request) (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		payload, err := fn(r)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		json.NewEncoder(w).Encode(payload)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

// statsPayload is the JSON body shared by /stats and /ws/stats.
type statsPayload struct {
	Capacity int    `json:"capacity"`
	ReadIO   int    `json:"read_io"`
	WriteIO  int    `json:"write_io"`
	Strategy string `json:"strategy"`
}

func (s *Server) snapshotStats() statsPayload {
	return statsPayload{
		Capacity: s.pool.NumFrames(),
		ReadIO:   s.pool.ReadIO(),
		WriteIO:  s.pool.WriteIO(),
		Strategy: s.pool.StrategyName(),
	}
}

func (s *Server) handleStats(r *http.Request) (interface{}, error) {
	return s.snapshotStats(), nil
}

type framePayload struct {
	Index      int  `json:"index"`
	PageNumber int  `json:"page_number"`
	Dirty      bool `json:"dirty"`
	PinCount   int  `json:"pin_count"`
}

func (s *Server) handleFrames(r *http.Request) (interface{}, error) {
	contents := s.pool.FrameContents()
	dirty := s.pool.DirtyFlags()
	fix := s.pool.FixCounts()

	out := make([]framePayload, len(contents))
	for i := range contents {
		out[i] = framePayload{
			Index:      i,
			PageNumber: int(contents[i]),
			Dirty:      dirty[i],
			PinCount:   fix[i],
		}
	}
	return out, nil
}

// Start runs the server until ctx is canceled, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logf("admin server listening on %s", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) logf(format string, args ...interface{}) {
	if s.log != nil {
		s.log.Infof(format, args...)
	}
}
