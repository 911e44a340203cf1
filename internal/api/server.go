package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/KiwiAmenazante/DREMO/internal/config"
	"github.com/KiwiAmenazante/DREMO/internal/core/domain"
	"github.com/KiwiAmenazante/DREMO/internal/core/ports"
	"github.com/KiwiAmenazante/DREMO/internal/health"
	"github.com/KiwiAmenazante/DREMO/internal/log"
	"github.com/KiwiAmenazante/DREMO/internal/metrics"
)

// Server is the HTTP layer over the resolver and the directory lookup.
type Server struct {
	cfg       *config.Configuration
	resolver  ports.ResolverService
	directory ports.DirectoryService
	health    *health.Status
	metrics   *metrics.Metrics
	validator *Validator
}

// NewServer wires the API handlers.
func NewServer(cfg *config.Configuration, resolver ports.ResolverService, directory ports.DirectoryService, healthStatus *health.Status, m *metrics.Metrics) *Server {
	return &Server{
		cfg:       cfg,
		resolver:  resolver,
		directory: directory,
		health:    healthStatus,
		metrics:   m,
		validator: NewValidator(),
	}
}

// Routes mounts all endpoints on the given router. The context carries the
// bootstrap logger that LogMiddleware injects into every request.
func (s *Server) Routes(ctx context.Context, mux *chi.Mux) {
	mux.Use(middleware.RequestID)
	mux.Use(LogMiddleware(ctx))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	mux.Use(s.recoverer)

	mux.Get("/health", s.handleHealth)
	mux.Get("/metrics", promhttp.Handler().ServeHTTP)
	mux.Post("/api/validate-dni", s.handleValidateDNI)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.health.Status(r.Context()))
}

// handleValidateDNI resolves the identity and searches the directory. The
// two calls run concurrently; the response is assembled once both finish.
// Directory failures never fail the request, a resolution failure does.
func (s *Server) handleValidateDNI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ValidateDNIRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}
	req.Normalize()
	if fieldErrs := s.validator.Validate(&req); fieldErrs != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Errors: fieldErrs})
		return
	}

	var (
		resolved  *domain.ResolvedIdentity
		dirResult domain.DirectoryMatch
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resolved, err = s.resolver.Resolve(gctx, req.DNI)
		return err
	})
	g.Go(func() error {
		dirResult = s.directory.FindContactForID(gctx, req.DNI)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.metrics.ResolutionFailures.Inc()

		var resErr *domain.ResolutionError
		message := "upstream error"
		if errors.As(err, &resErr) {
			message = resErr.Reason
		}
		log.Warn(ctx, "identity resolution failed", "dni", req.DNI, "reason", message)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Message: message})
		return
	}

	s.metrics.Resolutions.WithLabelValues(string(resolved.Source)).Inc()
	s.metrics.DirectoryLookups.WithLabelValues(string(dirResult.Status)).Inc()

	writeJSON(w, http.StatusOK, ValidateDNIResponse{
		Success:        true,
		Message:        "OK",
		DNI:            req.DNI,
		IdentitySource: resolved.Source,
		Identity:       resolved.Fields,
		Directory:      dirResult,
	})
}

// recoverer converts panics into the JSON error envelope. The panic detail is
// echoed to the caller only outside production.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error(r.Context(), "panic serving request", fmt.Errorf("%v", rec), "path", r.URL.Path)
				resp := ErrorResponse{Message: "server error"}
				if !s.cfg.Production() {
					resp.Detail = fmt.Sprint(rec)
				}
				writeJSON(w, http.StatusInternalServerError, resp)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
