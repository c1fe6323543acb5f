package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	catalogerrors "galavote/contexts/event-catalog/event-service/domain/errors"
	cataloghttp "galavote/contexts/event-catalog/event-service/transport/http"
)

func (s *Server) registerCatalogRoutes() {
	s.mux.HandleFunc("POST /api/v1/events", s.handleCreateEvent)
	s.mux.HandleFunc("GET /api/v1/events", s.handleListEvents)
	s.mux.HandleFunc("GET /api/v1/events/{slug}", s.handleEventBySlug)
	s.mux.HandleFunc("POST /api/v1/events/{event_id}/submit", s.handleSubmitEvent)
	s.mux.HandleFunc("POST /api/v1/events/{event_id}/publish", s.handlePublishEvent)
	s.mux.HandleFunc("DELETE /api/v1/events/{event_id}", s.handleDeleteEvent)
	s.mux.HandleFunc("POST /api/v1/events/{event_id}/polls", s.handleCreatePoll)
	s.mux.HandleFunc("POST /api/v1/polls/{poll_id}/publish", s.handlePublishPoll)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if userID == "" {
		writeCatalogError(w, http.StatusUnauthorized, "missing_user", "X-User-ID header is required")
		return
	}

	var req cataloghttp.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.catalog.Handler.CreateEventHandler(r.Context(), userID, req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if userID == "" {
		writeCatalogError(w, http.StatusUnauthorized, "missing_user", "X-User-ID header is required")
		return
	}

	resp, err := s.catalog.Handler.ListEventsHandler(r.Context(), userID)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEventBySlug(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.EventBySlugHandler(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitEvent(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if userID == "" {
		writeCatalogError(w, http.StatusUnauthorized, "missing_user", "X-User-ID header is required")
		return
	}

	resp, err := s.catalog.Handler.SubmitEventHandler(r.Context(), r.PathValue("event_id"), userID)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublishEvent(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.PublishEventHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if userID == "" {
		writeCatalogError(w, http.StatusUnauthorized, "missing_user", "X-User-ID header is required")
		return
	}

	if err := s.catalog.Handler.DeleteEventHandler(r.Context(), r.PathValue("event_id"), userID); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if userID == "" {
		writeCatalogError(w, http.StatusUnauthorized, "missing_user", "X-User-ID header is required")
		return
	}

	var req cataloghttp.CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.catalog.Handler.CreatePollHandler(r.Context(), r.PathValue("event_id"), userID, req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handlePublishPoll(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if userID == "" {
		writeCatalogError(w, http.StatusUnauthorized, "missing_user", "X-User-ID header is required")
		return
	}

	if err := s.catalog.Handler.PublishPollHandler(r.Context(), r.PathValue("poll_id"), userID); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeCatalogDomainError(w http.ResponseWriter, err error) {
	var quotaErr *catalogerrors.QuotaExceededError
	if errors.As(err, &quotaErr) {
		writeJSON(w, http.StatusForbidden, cataloghttp.QuotaDeniedResponse{
			Code:         "event_quota_exceeded",
			Message:      quotaErr.Error(),
			CurrentCount: quotaErr.CurrentCount,
			Quota:        quotaErr.Quota,
			Plan:         quotaErr.PlanName,
		})
		return
	}

	switch {
	case errors.Is(err, catalogerrors.ErrInvalidEventInput):
		writeCatalogError(w, http.StatusBadRequest, "invalid_event_input", err.Error())
	case errors.Is(err, catalogerrors.ErrInvalidPollInput):
		writeCatalogError(w, http.StatusBadRequest, "invalid_poll_input", err.Error())
	case errors.Is(err, catalogerrors.ErrEventNotFound):
		writeCatalogError(w, http.StatusNotFound, "event_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrPollNotFound):
		writeCatalogError(w, http.StatusNotFound, "poll_not_found", err.Error())
	case errors.Is(err, catalogerrors.ErrNotOwner):
		writeCatalogError(w, http.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, catalogerrors.ErrSlugTaken):
		writeCatalogError(w, http.StatusConflict, "slug_taken", err.Error())
	case errors.Is(err, catalogerrors.ErrInvalidTransition):
		writeCatalogError(w, http.StatusConflict, "invalid_transition", err.Error())
	default:
		writeCatalogError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCatalogError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, cataloghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
