package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/ironclub/internal/models"
	"github.com/claude/ironclub/internal/storage"
)

func TestParseTimeRangeDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatalf("parseTimeRange: %v", err)
	}
	if d := end.Sub(start); d < 6*24*time.Hour || d > 8*24*time.Hour {
		t.Errorf("default range = %s, want about 7 days", d)
	}
}

func TestParseTimeRangeDateOnly(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?start=2026-03-01&end=2026-03-10", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatalf("parseTimeRange: %v", err)
	}
	if start.Format("2006-01-02") != "2026-03-01" {
		t.Errorf("start = %s", start)
	}
	// Date-only end is inclusive: bumped to the end of that day.
	if !end.Equal(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %s, want 2026-03-11T00:00:00Z", end)
	}
}

func TestParseTimeRangeRFC3339(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?start=2026-03-01T10:00:00Z&end=2026-03-01T12:00:00Z", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatalf("parseTimeRange: %v", err)
	}
	if end.Sub(start) != 2*time.Hour {
		t.Errorf("range = %s, want 2h", end.Sub(start))
	}
}

func TestParseTimeRangeInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?start=notadate", nil)
	if _, _, err := parseTimeRange(req); err == nil {
		t.Error("parseTimeRange accepted garbage")
	}
}

func TestWriteStorageError(t *testing.T) {
	s := &Server{log: slog.Default()}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", storage.ErrNotFound, http.StatusNotFound},
		{"capacity full", storage.ErrCapacityFull, http.StatusConflict},
		{"already booked", storage.ErrAlreadyBooked, http.StatusConflict},
		{"invalid input", models.ErrInvalidInput, http.StatusBadRequest},
		{"wrapped invalid input", errors.Join(errors.New("set 3"), models.ErrInvalidInput), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.writeStorageError(rec, tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if body["error"] == "" {
				t.Error("error body missing")
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]int{"n": 1})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
}
