package alerts

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alertflow/relay/pkg/logger"
)

// Handler exposes the engine over HTTP: submissions on POST/PUT, streaming
// subscriptions on GET.
type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type submitResponse struct {
	Status string `json:"status"`
	Alert  Alert  `json:"alert"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Submit accepts a new alert for the group named in the URL, defaulting to
// the "default" group on the bare /alerts route.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	group := ResolveGroup(chi.URLParam(r, "group"))

	var payload Alert
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ErrInvalidAlert.Error()})
		return
	}

	stamped, err := h.svc.Submit(r.Context(), group, payload)
	switch {
	case errors.Is(err, ErrInvalidAlert):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ErrInvalidAlert.Error()})
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "alert submission failed",
			logger.Component("ingest"), slog.String("group", group), logger.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "backend unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Status: "alert stored",
		Alert:  stamped.Data,
	})
}

// Stream serves the live event stream for the group named in the URL. The
// response is committed as an event stream up front; failures after that
// point end the stream rather than changing the status.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	group := ResolveGroup(chi.URLParam(r, "group"))

	sink, err := NewSSEWriter(w)
	if err != nil {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	if err := h.svc.Stream(r.Context(), group, sink); err != nil {
		h.log.ErrorContext(r.Context(), "subscription session failed",
			logger.Component("session"), slog.String("group", group), logger.Error(err))
	}
}

// Router mounts the alert routes. Both POST and PUT are accepted for
// submission, with and without an explicit group.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/alerts", h.Submit)
	r.Put("/alerts", h.Submit)
	r.Post("/alerts/{group}", h.Submit)
	r.Put("/alerts/{group}", h.Submit)

	r.Get("/alerts", h.Stream)
	r.Get("/alerts/{group}", h.Stream)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
