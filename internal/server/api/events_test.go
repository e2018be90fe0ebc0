package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/store"
)

func TestEventsHandler(t *testing.T) {
	s := newTestStore(t)
	h := NewEventsHandler(s)

	base := time.Now().Add(-time.Minute)
	transitions := []struct {
		from, to string
		source   store.EventSource
	}{
		{"none", "fist", store.SourceLive},
		{"fist", "open", store.SourceLive},
		{"open", "metal", store.SourceForced},
	}
	for i, tr := range transitions {
		err := s.Events().Insert(&store.Event{
			ID:          uuid.New().String(),
			FromGesture: tr.from,
			ToGesture:   tr.to,
			Source:      tr.source,
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("failed to insert event: %v", err)
		}
	}

	t.Run("lists newest first", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		var resp listEventsResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if len(resp.Events) != 3 {
			t.Fatalf("expected 3 events, got %d", len(resp.Events))
		}
		if resp.Events[0].ToGesture != "metal" {
			t.Errorf("newest event = %q, want metal", resp.Events[0].ToGesture)
		}
		if resp.Events[0].Source != "forced" {
			t.Errorf("source = %q, want forced", resp.Events[0].Source)
		}
	})

	t.Run("honors the limit parameter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events?limit=1", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		var resp listEventsResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(resp.Events) != 1 {
			t.Errorf("expected 1 event, got %d", len(resp.Events))
		}
	})

	t.Run("rejects bad limits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events?limit=zero", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("rejects non-GET methods", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/events", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
		}
	})
}
