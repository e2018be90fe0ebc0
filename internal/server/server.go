// Package server provides the HTTP and WebSocket surface for the Mudra
// visualizer: engine control, the particle feed, and the browser frontend.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// EngineState is a snapshot of the running engine reported by /api/state.
type EngineState struct {
	Gesture       gesture.Gesture `json:"gesture"`
	Anchor        gesture.Anchor  `json:"anchor"`
	ParticleCount int             `json:"particle_count"`
	Text          string          `json:"text"`
	Forced        bool            `json:"forced"`
	Enabled       bool            `json:"enabled"`
}

// Engine is the control surface the HTTP API drives. The app implements it.
type Engine interface {
	State() EngineState
	ForceGesture(g gesture.Gesture) error
	ClearForce()
	SetText(text string)
	Resize(count int) error
}

// Config holds the server configuration. Nil or empty fields disable the
// corresponding endpoints.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Detector  detector.Detector
	Engine    Engine
}

// Server represents the HTTP server for the Mudra application.
type Server struct {
	config    Config
	mux       *http.ServeMux
	particles *ParticlesHandler
	start     time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config:    config,
		mux:       http.NewServeMux(),
		particles: NewParticlesHandler(),
		start:     time.Now(),
	}
	s.setupRoutes()
	return s
}

// Particles returns the particle feed handler. The simulation loop publishes
// frames to it.
func (s *Server) Particles() *ParticlesHandler {
	return s.particles
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/particles", s.particles)

	if s.config.Engine != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
		s.mux.HandleFunc("/api/gestures/force", s.handleForce)
		s.mux.HandleFunc("/api/text", s.handleText)
		s.mux.HandleFunc("/api/resize", s.handleResize)
	}

	if s.config.Store != nil {
		actionHandler := api.NewActionHandler(s.config.Store)
		s.mux.Handle("/api/actions", actionHandler)
		s.mux.Handle("/api/actions/", actionHandler)
		s.mux.Handle("/api/events", api.NewEventsHandler(s.config.Store))
		s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.Store))
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	if s.config.Camera != nil && s.config.Detector != nil {
		s.mux.Handle("/api/landmarks", NewLandmarksHandler(s.config.Detector, s.config.Camera))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleState handles GET /api/state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	api.WriteJSON(w, http.StatusOK, s.config.Engine.State())
}

type forceRequest struct {
	Gesture string `json:"gesture"`
}

// handleForce handles POST and DELETE on /api/gestures/force. POST pins the
// classifier to a gesture for the override window; DELETE clears a pending
// override early.
func (s *Server) handleForce(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req forceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}

		g, err := gesture.Parse(req.Gesture)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, "Unknown gesture")
			return
		}

		if err := s.config.Engine.ForceGesture(g); err != nil {
			api.WriteError(w, http.StatusInternalServerError, "Failed to force gesture")
			return
		}

		api.WriteJSON(w, http.StatusOK, map[string]string{"gesture": string(g)})

	case http.MethodDelete:
		s.config.Engine.ClearForce()
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type textRequest struct {
	Text string `json:"text"`
}

// handleText handles POST /api/text, replacing the glyph string rendered by
// the peace formation. An empty string restores the default.
func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s.config.Engine.SetText(req.Text)
	api.WriteJSON(w, http.StatusOK, map[string]string{"text": s.config.Engine.State().Text})
}

type resizeRequest struct {
	Count int `json:"count"`
}

// handleResize handles POST /api/resize. Resizing rebuilds the particle
// population from scratch.
func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req resizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Count <= 0 {
		api.WriteError(w, http.StatusBadRequest, "count must be positive")
		return
	}

	if err := s.config.Engine.Resize(req.Count); err != nil {
		api.WriteError(w, http.StatusInternalServerError, "Failed to resize")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]int{"count": req.Count})
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
