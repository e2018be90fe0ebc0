package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/mudra/internal/gesture"
)

// fakeEngine records control calls for inspection.
type fakeEngine struct {
	state   EngineState
	forced  gesture.Gesture
	cleared bool
	text    string
	resized int
}

func (f *fakeEngine) State() EngineState { return f.state }

func (f *fakeEngine) ForceGesture(g gesture.Gesture) error {
	f.forced = g
	return nil
}

func (f *fakeEngine) ClearForce() { f.cleared = true }

func (f *fakeEngine) SetText(text string) {
	f.text = text
	f.state.Text = text
}

func (f *fakeEngine) Resize(count int) error {
	f.resized = count
	return nil
}

func TestServer_Health(t *testing.T) {
	s := New(Config{})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		contentType := rec.Header().Get("Content-Type")
		if contentType != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", contentType)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if response["status"] != "ok" {
			t.Errorf("expected status 'ok', got %v", response["status"])
		}

		if _, exists := response["uptime"]; !exists {
			t.Error("expected 'uptime' field in response")
		}
	})

	t.Run("only allows GET method", func(t *testing.T) {
		methods := []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch}

		for _, method := range methods {
			req := httptest.NewRequest(method, "/api/health", nil)
			rec := httptest.NewRecorder()

			s.ServeHTTP(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("method %s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
			}
		}
	})
}

func TestServer_NotFound(t *testing.T) {
	s := New(Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestServer_State(t *testing.T) {
	engine := &fakeEngine{
		state: EngineState{
			Gesture:       gesture.Metal,
			Anchor:        gesture.Anchor{X: 0.2, Y: -0.1},
			ParticleCount: 15000,
			Enabled:       true,
		},
	}
	s := New(Config{Engine: engine})

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var state EngineState
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if state.Gesture != gesture.Metal {
		t.Errorf("gesture = %q, want %q", state.Gesture, gesture.Metal)
	}
	if state.ParticleCount != 15000 {
		t.Errorf("particle_count = %d, want 15000", state.ParticleCount)
	}
}

func TestServer_ForceGesture(t *testing.T) {
	engine := &fakeEngine{}
	s := New(Config{Engine: engine})

	t.Run("forces a valid gesture", func(t *testing.T) {
		body := strings.NewReader(`{"gesture": "peace"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/gestures/force", body)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if engine.forced != gesture.Peace {
			t.Errorf("forced gesture = %q, want %q", engine.forced, gesture.Peace)
		}
	})

	t.Run("rejects unknown gestures", func(t *testing.T) {
		body := strings.NewReader(`{"gesture": "jazzhands"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/gestures/force", body)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		body := strings.NewReader(`{not json`)
		req := httptest.NewRequest(http.MethodPost, "/api/gestures/force", body)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("DELETE clears a pending override", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/gestures/force", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
		}
		if !engine.cleared {
			t.Error("expected ClearForce to be called")
		}
	})
}

func TestServer_Text(t *testing.T) {
	engine := &fakeEngine{}
	s := New(Config{Engine: engine})

	body := strings.NewReader(`{"text": "NAMASTE"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/text", body)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if engine.text != "NAMASTE" {
		t.Errorf("text = %q, want NAMASTE", engine.text)
	}
}

func TestServer_Resize(t *testing.T) {
	engine := &fakeEngine{}
	s := New(Config{Engine: engine})

	t.Run("resizes the particle field", func(t *testing.T) {
		body := strings.NewReader(`{"count": 6000}`)
		req := httptest.NewRequest(http.MethodPost, "/api/resize", body)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if engine.resized != 6000 {
			t.Errorf("resize count = %d, want 6000", engine.resized)
		}
	})

	t.Run("rejects non-positive counts", func(t *testing.T) {
		body := strings.NewReader(`{"count": 0}`)
		req := httptest.NewRequest(http.MethodPost, "/api/resize", body)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}

func TestServer_EngineEndpointsDisabled(t *testing.T) {
	s := New(Config{})

	paths := []string{"/api/state", "/api/gestures/force", "/api/text", "/api/resize"}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("path %s: expected status %d without an engine, got %d", path, http.StatusNotFound, rec.Code)
		}
	}
}

func TestServer_StaticFiles(t *testing.T) {
	tmpDir := t.TempDir()

	testContent := "<html><body>Mudra</body></html>"
	if err := os.WriteFile(filepath.Join(tmpDir, "index.html"), []byte(testContent), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	s := New(Config{StaticDir: tmpDir})

	t.Run("serves index.html at root path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		if rec.Body.String() != testContent {
			t.Errorf("expected body %q, got %q", testContent, rec.Body.String())
		}
	})

	t.Run("returns 404 for non-existent static files", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nonexistent.html", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})
}

func TestEncodeFrame(t *testing.T) {
	positions := []float32{1, 2, 3, 4, 5, 6}
	colors := []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}

	buf := encodeFrame(positions, colors)

	wantLen := 4 + 4*(len(positions)+len(colors))
	if len(buf) != wantLen {
		t.Fatalf("frame length = %d, want %d", len(buf), wantLen)
	}

	count := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	if count != 2 {
		t.Errorf("particle count = %d, want 2", count)
	}
}

func TestParticlesHandler_PublishWithoutClients(t *testing.T) {
	h := NewParticlesHandler()

	// Must not panic or block with nobody connected.
	h.Publish([]float32{1, 2, 3}, []float32{0, 0, 0})

	if h.ClientCount() != 0 {
		t.Errorf("client count = %d, want 0", h.ClientCount())
	}
}
