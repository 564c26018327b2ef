package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
	"github.com/msto63/vmel/internal/evalsvc"
	"github.com/msto63/vmel/internal/journal"
	"github.com/msto63/vmel/pkg/core/health"
	"github.com/msto63/vmel/pkg/core/logging"
	"github.com/msto63/vmel/pkg/core/version"
)

// RunRequest is the body of POST /api/v1/run and /api/v1/tokenize
type RunRequest struct {
	Source string `json:"source"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Handler serves the REST API
type Handler struct {
	service *evalsvc.Service
	health  *health.Registry
	logger  *logging.Logger
	maxBody int64
}

// NewHandler creates a REST handler on top of svc
func NewHandler(svc *evalsvc.Service, registry *health.Registry) *Handler {
	return &Handler{
		service: svc,
		health:  registry,
		logger:  logging.New("gateway-handler"),
		// JSON escaping can double the source size
		maxBody: int64(svc.Engine().Options().MaxSourceLength)*2 + 1024,
	}
}

// Register adds the REST routes to mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/run", h.handleRun)
	mux.HandleFunc("POST /api/v1/tokenize", h.handleTokenize)
	mux.HandleFunc("GET /api/v1/runs", h.handleListRuns)
	mux.HandleFunc("GET /api/v1/runs/{id}", h.handleGetRun)
	mux.HandleFunc("GET /api/v1/version", h.handleVersion)
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Run(r.Context(), journal.OriginHTTP, req.Source)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleTokenize(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Tokenize(req.Source)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	store := h.service.Journal()
	if store == nil {
		h.writeError(w, http.StatusNotFound, "journal_disabled", "Run journal is not enabled", "")
		return
	}

	filter := journal.Filter{
		Origin:     journal.Origin(r.URL.Query().Get("origin")),
		OnlyErrors: r.URL.Query().Get("errors") == "true",
		Limit:      50,
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			h.writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer", v)
			return
		}
		filter.Limit = limit
	}

	entries, err := store.List(r.Context(), filter)
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	if entries == nil {
		entries = []*journal.Entry{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  entries,
		"count": len(entries),
	})
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	store := h.service.Journal()
	if store == nil {
		h.writeError(w, http.StatusNotFound, "journal_disabled", "Run journal is not enabled", "")
		return
	}

	entry, err := store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, version.Get())
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	report := h.health.Check(ctx)
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, report)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (RunRequest, bool) {
	var req RunRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "too_large", "Request body too large", "")
			return req, false
		}
		h.writeError(w, http.StatusBadRequest, "invalid_json", "Invalid request body", err.Error())
		return req, false
	}
	return req, true
}

// writeFailure maps a foundation error to its HTTP status
func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	code := mdwerror.GetCode(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	h.writeError(w, status, string(code), err.Error(), "")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message, details string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}
