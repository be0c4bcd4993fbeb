package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests
const shutdownTimeout = 10 * time.Second

// setupRoutes registers all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.config.RequestLogging {
		r.Use(s.loggingMiddleware)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/works", func(r chi.Router) {
			r.Get("/", s.handleListWorks)
			r.Post("/", s.handleAddWork)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetWork)
				r.Delete("/", s.handleDeleteWork)
				r.Get("/meta", s.handleGetSongMeta)
				r.Put("/meta", s.handlePutSongMeta)
				r.Get("/pipeline", s.handleWorkPipeline)
			})
		})

		r.Post("/match", s.handleMatch)
		r.Post("/match/batch", s.handleBatchMatch)

		r.Route("/pipeline", func(r chi.Router) {
			r.Get("/", s.handleCatalogPipeline)
			r.Get("/config", s.handlePipelineConfig)
			r.Post("/song", s.handleEstimateSong)
			r.Post("/catalog", s.handleEstimateCatalog)
			r.Post("/statement", s.handleStatementPipeline)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusNotFound, "No route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})

	return r
}

// loggingMiddleware logs every request with its status and latency
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.log.Infof("%s %s from %s -> %d (%dB, %s) [%s]",
			r.Method, r.URL.Path, r.RemoteAddr, status, ww.BytesWritten(),
			time.Since(start).Round(time.Microsecond), middleware.GetReqID(r.Context()))
	})
}

// Start serves until ctx is canceled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.config.Port,
		Handler:           s.setupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Infof("🚀 Royalty server starting on %s", srv.Addr)
	s.log.Infof("   Database: %s", s.config.DBPath)
	s.log.Infof("   Match floor: %.2f", s.config.MatchFloor)
	s.log.Infof("   CORS Origins: %v", s.config.AllowedOrigins)
	s.log.Infof("Endpoints:")
	s.log.Infof("   GET    /health                    - Health check")
	s.log.Infof("   GET    /api/works                 - List catalog works")
	s.log.Infof("   POST   /api/works                 - Register a work")
	s.log.Infof("   GET    /api/works/{id}            - Get work by ID")
	s.log.Infof("   DELETE /api/works/{id}            - Delete work by ID")
	s.log.Infof("   GET    /api/works/{id}/meta       - Get pipeline metadata")
	s.log.Infof("   PUT    /api/works/{id}/meta       - Save pipeline metadata")
	s.log.Infof("   GET    /api/works/{id}/pipeline   - Estimate one work")
	s.log.Infof("   POST   /api/match                 - Rank works for a song")
	s.log.Infof("   POST   /api/match/batch           - Reconcile a statement")
	s.log.Infof("   GET    /api/pipeline              - Estimate the catalog")
	s.log.Infof("   GET    /api/pipeline/config       - Active pipeline config")
	s.log.Infof("   POST   /api/pipeline/song         - Estimate an ad hoc song")
	s.log.Infof("   POST   /api/pipeline/catalog      - Estimate an ad hoc catalog")
	s.log.Infof("   POST   /api/pipeline/statement    - Estimate a statement's works")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Infof("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
