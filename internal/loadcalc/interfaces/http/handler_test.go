package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"circuit-load/internal/audit"
	"circuit-load/internal/loadcalc/application"
	loadcalc "circuit-load/internal/loadcalc/domain"
	"circuit-load/internal/loadcalc/infrastructure/memory"
)

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (r *recordingAudit) Log(_ context.Context, entry audit.Entry) error {
	r.mu.Lock()
	r.actions = append(r.actions, entry.Action)
	r.mu.Unlock()
	return nil
}

func newTestHandler(t *testing.T) (*http.ServeMux, *recordingAudit) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	svc, err := application.NewService(memory.NewCircuitRepository(), application.WithLogger(logger))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	recorder := &recordingAudit{}
	handler, err := NewHandler(svc, application.DefaultFormOptions(), recorder, logger)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	mux := http.NewServeMux()
	handler.Register(mux)
	return mux, recorder
}

func do(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	resp := httptest.NewRecorder()
	mux.ServeHTTP(resp, req)
	return resp
}

func TestHandler_CircuitLifecycle(t *testing.T) {
	mux, recorder := newTestHandler(t)

	resp := do(t, mux, http.MethodPost, "/api/v1/circuits", map[string]any{"name": "Kitchen Circuit", "voltage": 120, "breaker_rating": 20})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create circuit: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var circuit loadcalc.Circuit
	if err := json.Unmarshal(resp.Body.Bytes(), &circuit); err != nil {
		t.Fatalf("decode circuit: %v", err)
	}

	for _, device := range []map[string]any{{"name": "Microwave", "watts": 1200}, {"name": "Coffee Maker", "watts": 900}} {
		resp = do(t, mux, http.MethodPost, "/api/v1/circuits/"+string(circuit.ID)+"/devices", device)
		if resp.Code != http.StatusCreated {
			t.Fatalf("add device: expected 201, got %d: %s", resp.Code, resp.Body.String())
		}
	}
	var heater loadcalc.Device
	resp = do(t, mux, http.MethodPost, "/api/v1/circuits/"+string(circuit.ID)+"/devices", map[string]any{"name": "Heater", "watts": 500})
	if err := json.Unmarshal(resp.Body.Bytes(), &heater); err != nil {
		t.Fatalf("decode device: %v", err)
	}

	resp = do(t, mux, http.MethodGet, "/api/v1/circuits/"+string(circuit.ID)+"/report", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("report: expected 200, got %d", resp.Code)
	}
	var report loadcalc.LoadReport
	if err := json.Unmarshal(resp.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Status != loadcalc.StatusOverloaded || report.TotalWatts != 2600 {
		t.Fatalf("expected overloaded 2600W, got %s %v", report.Status, report.TotalWatts)
	}

	resp = do(t, mux, http.MethodDelete, "/api/v1/circuits/"+string(circuit.ID)+"/devices/"+string(heater.ID), nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("remove device: expected 204, got %d", resp.Code)
	}
	resp = do(t, mux, http.MethodGet, "/api/v1/circuits/"+string(circuit.ID), nil)
	var result application.CircuitReport
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode circuit report: %v", err)
	}
	if result.Report.Status != loadcalc.StatusNearLimit || len(result.Circuit.Devices) != 2 {
		t.Fatalf("expected near limit with 2 devices, got %s with %d", result.Report.Status, len(result.Circuit.Devices))
	}

	resp = do(t, mux, http.MethodDelete, "/api/v1/circuits/"+string(circuit.ID), nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("remove circuit: expected 204, got %d", resp.Code)
	}
	resp = do(t, mux, http.MethodGet, "/api/v1/circuits", nil)
	var list []application.CircuitReport
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}

	expected := []string{"circuit.create", "device.add", "device.add", "device.add", "device.remove", "circuit.remove"}
	if strings.Join(recorder.actions, ",") != strings.Join(expected, ",") {
		t.Fatalf("unexpected audit actions: %v", recorder.actions)
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	mux, recorder := newTestHandler(t)

	resp := do(t, mux, http.MethodPost, "/api/v1/circuits", map[string]any{"name": "", "voltage": 120, "breaker_rating": 20})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty name, got %d", resp.Code)
	}
	resp = do(t, mux, http.MethodPost, "/api/v1/circuits", map[string]any{"name": "Kitchen", "voltage": 0, "breaker_rating": 20})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero voltage, got %d", resp.Code)
	}
	resp = do(t, mux, http.MethodPost, "/api/v1/circuits/missing/devices", map[string]any{"name": "Heater", "watts": 100})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing circuit, got %d", resp.Code)
	}
	resp = do(t, mux, http.MethodDelete, "/api/v1/circuits/missing", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing circuit removal, got %d", resp.Code)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/circuits", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid json, got %d", rec.Code)
	}
	if len(recorder.actions) != 0 {
		t.Fatalf("expected no audit entries for failed calls, got %v", recorder.actions)
	}
}

func TestHandler_OptionsAndExports(t *testing.T) {
	mux, _ := newTestHandler(t)

	resp := do(t, mux, http.MethodGet, "/api/v1/options", nil)
	var options application.FormOptions
	if err := json.Unmarshal(resp.Body.Bytes(), &options); err != nil {
		t.Fatalf("decode options: %v", err)
	}
	if options.DefaultVoltage != 120 || options.DefaultBreakerRating != 15 || len(options.BreakerRatings) != 5 {
		t.Fatalf("unexpected options: %+v", options)
	}

	do(t, mux, http.MethodPost, "/api/v1/circuits", map[string]any{"name": "Dryer", "voltage": 240, "breaker_rating": 30})

	resp = do(t, mux, http.MethodGet, "/api/v1/exports/panel.pdf", nil)
	if resp.Code != http.StatusOK || resp.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("pdf export: got %d %s", resp.Code, resp.Header().Get("Content-Type"))
	}
	resp = do(t, mux, http.MethodGet, "/api/v1/exports/panel.xlsx", nil)
	if resp.Code != http.StatusOK || resp.Body.Len() == 0 {
		t.Fatalf("xlsx export: got %d", resp.Code)
	}
	resp = do(t, mux, http.MethodGet, "/api/v1/exports/panel.doc", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown export, got %d", resp.Code)
	}
}

func TestHandler_OverflowingDeviceRejected(t *testing.T) {
	mux, _ := newTestHandler(t)

	resp := do(t, mux, http.MethodPost, "/api/v1/circuits", map[string]any{"name": "Kitchen", "voltage": 120, "breaker_rating": 20})
	var circuit loadcalc.Circuit
	if err := json.Unmarshal(resp.Body.Bytes(), &circuit); err != nil {
		t.Fatalf("decode circuit: %v", err)
	}
	devicesPath := "/api/v1/circuits/" + string(circuit.ID) + "/devices"
	resp = do(t, mux, http.MethodPost, devicesPath, map[string]any{"name": "A", "watts": 1e308})
	if resp.Code != http.StatusCreated {
		t.Fatalf("first device: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	resp = do(t, mux, http.MethodPost, devicesPath, map[string]any{"name": "B", "watts": 1e308})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("overflowing device: expected 400, got %d", resp.Code)
	}

	for _, path := range []string{"/api/v1/circuits", "/api/v1/circuits/" + string(circuit.ID) + "/report"} {
		resp = do(t, mux, http.MethodGet, path, nil)
		if resp.Code != http.StatusOK || resp.Body.Len() == 0 {
			t.Fatalf("%s: expected 200 with body, got %d %q", path, resp.Code, resp.Body.String())
		}
	}
}

func TestWriteJSON_UnencodablePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"total_amps": math.Inf(1)})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") == "application/json" {
		t.Fatalf("expected no json content type on failure")
	}
}
