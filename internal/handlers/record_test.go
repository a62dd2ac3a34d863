package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/christophersalem/hebard-hot-tub/internal/models"
	"github.com/christophersalem/hebard-hot-tub/internal/service"
)

func TestRecordEvent_AllParamsAcknowledged(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{EventLog: logs})

	q := url.Values{}
	q.Set("pump", "🔆")
	q.Set("heater", "🟢")
	q.Set("tub", "101.3")
	q.Set("solar", "112.0")
	q.Set("delta", "10.7")
	q.Set("action", "Pump ON")
	q.Set("note", "Solar gain")
	q.Set("duration", "2 hours 15 minutes")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/exec?"+q.Encode(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w.Body.String() != "OK" {
		t.Fatalf("body = %q; want OK", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type = %q", ct)
	}

	want := models.EventFields{
		Pump: "🔆", Heater: "🟢", Tub: "101.3", Solar: "112.0", Delta: "10.7",
		Action: "Pump ON", Note: "Solar gain", Duration: "2 hours 15 minutes",
	}
	if logs.last != want {
		t.Fatalf("fields = %+v; want %+v", logs.last, want)
	}
}

func TestRecordEvent_MissingParamsAreEmpty(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exec?pump=on&note=&duration=", nil))

	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
	if logs.last != (models.EventFields{Pump: "on"}) {
		t.Fatalf("unexpected fields: %+v", logs.last)
	}
}

func TestRecordEvent_Errors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "storage unavailable",
			err:      fmt.Errorf("%w: insert row: %w", service.ErrStorageUnavailable, errors.New("disk I/O error")),
			wantCode: http.StatusServiceUnavailable,
			wantMsg:  errStorageUnavailable,
		},
		{
			name:     "header missing",
			err:      service.ErrHeaderMissing,
			wantCode: http.StatusInternalServerError,
			wantMsg:  errHeaderMissing,
		},
		{
			name:     "unexpected",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  errRecord,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{EventLog: &mockEventLog{err: tc.err}})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exec?pump=on", nil))

			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.wantMsg {
				t.Fatalf("error message: got %q, want %q", out.Error, tc.wantMsg)
			}
		})
	}
}

func TestRecordEvent_PostNotRouted(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/exec?pump=on", nil))

	if w.Code == http.StatusOK {
		t.Fatalf("POST must not be accepted")
	}
	if logs.calls != 0 {
		t.Fatalf("service called %d times", logs.calls)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(&service.Service{EventLog: &mockEventLog{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("health: status=%d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "hottub_rows_trimmed_total") {
		t.Fatalf("metrics output missing hottub counters")
	}
}

func TestSwaggerDocServed(t *testing.T) {
	r := newTestRouter(&service.Service{EventLog: &mockEventLog{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("doc.json: status=%d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, path := range []string{`"/exec"`, `"/health"`, `"duration"`} {
		if !strings.Contains(body, path) {
			t.Fatalf("doc.json missing %s", path)
		}
	}
}
