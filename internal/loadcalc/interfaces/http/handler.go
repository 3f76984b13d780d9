package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"circuit-load/internal/audit"
	"circuit-load/internal/auth"
	"circuit-load/internal/loadcalc/application"
	loadcalc "circuit-load/internal/loadcalc/domain"
	"circuit-load/internal/loadcalc/interfaces/export"
	"circuit-load/internal/observability/metrics"
)

const (
	circuitsPath = "/api/v1/circuits"
	optionsPath  = "/api/v1/options"
	exportsPath  = "/api/v1/exports/"
)

// Handler serves the load calculator API.
type Handler struct {
	service     *application.Service
	options     application.FormOptions
	auditLogger audit.Logger
	logger      *log.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *application.Service, options application.FormOptions, auditLogger audit.Logger, logger *log.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("loadcalc handler: nil service")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{service: service, options: options, auditLogger: auditLogger, logger: logger}, nil
}

// Register mounts the handler's routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle(circuitsPath, h)
	mux.Handle(circuitsPath+"/", h)
	mux.Handle(optionsPath, h)
	mux.Handle(exportsPath, h)
}

// ServeHTTP routes load calculator requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == optionsPath && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, h.options)
		return
	case strings.HasPrefix(path, exportsPath) && r.Method == http.MethodGet:
		h.handleExport(w, r, strings.TrimPrefix(path, exportsPath))
		return
	case path == circuitsPath:
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreateCircuit(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	case strings.HasPrefix(path, circuitsPath+"/"):
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}

	parts := strings.Split(strings.TrimPrefix(path, circuitsPath+"/"), "/")
	if parts[0] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	circuitID := loadcalc.CircuitID(parts[0])

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.handleGet(w, r, circuitID)
	case len(parts) == 1 && r.Method == http.MethodDelete:
		h.handleRemoveCircuit(w, r, circuitID)
	case len(parts) == 2 && parts[1] == "report" && r.Method == http.MethodGet:
		h.handleReport(w, r, circuitID)
	case len(parts) == 2 && parts[1] == "devices" && r.Method == http.MethodPost:
		h.handleAddDevice(w, r, circuitID)
	case len(parts) == 3 && parts[1] == "devices" && parts[2] != "" && r.Method == http.MethodDelete:
		h.handleRemoveDevice(w, r, circuitID, loadcalc.DeviceID(parts[2]))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.Reports(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *Handler) handleCreateCircuit(w http.ResponseWriter, r *http.Request) {
	var req application.CircuitInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	circuit, err := h.service.CreateCircuit(r.Context(), req.Name, req.Voltage, req.BreakerRating)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, circuit)
	h.logAudit(r, "circuit.create", "circuit", string(circuit.ID), circuit.ID, map[string]any{
		"name":           circuit.Name,
		"voltage":        circuit.Voltage,
		"breaker_rating": circuit.BreakerRating,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, circuitID loadcalc.CircuitID) {
	result, err := h.service.Evaluate(r.Context(), circuitID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request, circuitID loadcalc.CircuitID) {
	result, err := h.service.Evaluate(r.Context(), circuitID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Report)
}

func (h *Handler) handleRemoveCircuit(w http.ResponseWriter, r *http.Request, circuitID loadcalc.CircuitID) {
	idx, err := h.service.RemoveCircuit(r.Context(), circuitID)
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, "circuit.remove", "circuit", string(circuitID), circuitID, map[string]any{"index": idx})
}

func (h *Handler) handleAddDevice(w http.ResponseWriter, r *http.Request, circuitID loadcalc.CircuitID) {
	var req application.DeviceInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	device, err := h.service.AddDevice(r.Context(), circuitID, req.Name, req.Watts)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, device)
	h.logAudit(r, "device.add", "device", string(device.ID), circuitID, map[string]any{
		"name":  device.Name,
		"watts": device.Watts,
	})
}

func (h *Handler) handleRemoveDevice(w http.ResponseWriter, r *http.Request, circuitID loadcalc.CircuitID, deviceID loadcalc.DeviceID) {
	if err := h.service.RemoveDevice(r.Context(), circuitID, deviceID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, "device.remove", "device", string(deviceID), circuitID, nil)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, name string) {
	var (
		format      string
		contentType string
		build       func([]application.CircuitReport) ([]byte, error)
	)
	switch name {
	case "panel.xlsx":
		format = "xlsx"
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		build = export.BuildPanelXLSX
	case "panel.pdf":
		format = "pdf"
		contentType = "application/pdf"
		build = func(reports []application.CircuitReport) ([]byte, error) {
			return export.BuildPanelPDF(reports, time.Now())
		}
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}

	start := time.Now()
	reports, err := h.service.Reports(r.Context())
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(start))
		respondError(w, err)
		return
	}
	data, err := build(reports)
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(start))
		h.logger.Printf("export %s failed: %v", format, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport(format, metrics.ResultSuccess, time.Since(start))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) logAudit(r *http.Request, action, resourceType, resourceID string, circuitID loadcalc.CircuitID, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	entry, err := audit.NewEntry(action, audit.Resource{Type: resourceType, ID: resourceID, CircuitID: string(circuitID)}, meta)
	if err != nil {
		h.logger.Printf("audit entry failed: action=%s err=%v", action, err)
		return
	}
	entry.Actor = auth.SubjectFromContext(r.Context())
	entry.Role = string(auth.RoleFromContext(r.Context()))
	entry.Origin = audit.RequestOrigin(r)
	if err := h.auditLogger.Log(r.Context(), entry); err != nil {
		h.logger.Printf("audit log failed: action=%s err=%v", action, err)
	}
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, loadcalc.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, loadcalc.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, loadcalc.ErrDuplicateID):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "encode response failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
