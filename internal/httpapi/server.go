package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/rbas/fluxa/internal/state"
)

// Server exposes the monitor's own liveness plus read-only status of the
// monitored services. The root endpoint is the cross-monitoring hook:
// another fluxa instance can probe it like any other URL.
type Server struct {
	Logger *zap.Logger
	Stats  *state.Store
}

func NewServer(l *zap.Logger, stats *state.Store) *Server {
	return &Server{Logger: l, Stats: stats}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	// Always 200 with a fixed body, regardless of monitor states.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Ok"))
	})

	r.Get("/api/services", s.handleListServices)
	r.Get("/api/services/{serviceID}", s.handleGetService)

	return r
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Stats.All())
}

// handleGetService resolves {serviceID} either as a zero-based index into
// the sorted service list or as an escaped service URL.
func (s *Server) handleGetService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "serviceID")

	if idx, err := strconv.Atoi(id); err == nil {
		all := s.Stats.All()
		if idx < 0 || idx >= len(all) {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(all[idx])
		return
	}

	raw := id
	if unescaped, err := url.PathUnescape(id); err == nil {
		raw = unescaped
	}
	stats, ok := s.Stats.Get(raw)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}
