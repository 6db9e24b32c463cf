// Package api serves the layout engine over HTTP.
//
// Routes:
//
//	GET  /health
//	GET  /api/materials
//	POST /api/layout     engine.Request -> model.LayoutResult
//	POST /api/quantity   engine.Request -> Quantity
//	POST /api/compare    engine.Request -> []ScenarioSummary
//	POST /api/estimate   EstimateRequest -> model.PurchaseEstimate
//	POST /api/skirting   SkirtingRequest -> model.SkirtingSummary
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/piwi3910/floorplan/internal/cache"
	"github.com/piwi3910/floorplan/internal/model"
)

// Router wraps the mux router with the result cache and logger.
type Router struct {
	*mux.Router
	cache        cache.Cache
	ttl          time.Duration
	maxBodyBytes int64
	logger       *log.Logger
}

// NewRouter creates the HTTP router with all routes. A nil cache disables
// result caching and a nil logger uses log.Default().
func NewRouter(c cache.Cache, cfg model.ServerConfig, logger *log.Logger) *Router {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = model.DefaultAppConfig().Server.MaxBodyBytes
	}

	r := &Router{
		Router:       mux.NewRouter(),
		cache:        c,
		ttl:          cache.TTL(cfg),
		maxBodyBytes: maxBody,
		logger:       logger,
	}
	r.Use(r.logRequests)

	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/materials", r.listMaterials).Methods("GET")
	api.HandleFunc("/layout", r.layout).Methods("POST")
	api.HandleFunc("/quantity", r.quantity).Methods("POST")
	api.HandleFunc("/compare", r.compare).Methods("POST")
	api.HandleFunc("/estimate", r.estimate).Methods("POST")
	api.HandleFunc("/skirting", r.skirting).Methods("POST")

	return r
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		r.logger.Debug("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.status,
			"elapsed", time.Since(start).Round(time.Microsecond))
	})
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (r *Router) listMaterials(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, model.MaterialPresets())
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
