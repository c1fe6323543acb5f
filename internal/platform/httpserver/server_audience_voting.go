package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	votingerrors "galavote/contexts/audience-voting/ballot-engine/domain/errors"
	votinghttp "galavote/contexts/audience-voting/ballot-engine/transport/http"
)

func (s *Server) registerVotingRoutes() {
	s.mux.HandleFunc("GET /api/v1/polls/{poll_id}", s.handleVoterState)
	s.mux.HandleFunc("POST /api/v1/polls/{poll_id}/ballots", s.handleSubmitBallot)
	s.mux.HandleFunc("GET /api/v1/polls/{poll_id}/results", s.handlePollResults)
	s.mux.HandleFunc("GET /api/v1/events/{event_id}/results", s.handleEventResults)
}

func (s *Server) handleSubmitBallot(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.SubmitBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.voting.Handler.SubmitBallotHandler(
		r.Context(),
		r.PathValue("poll_id"),
		strings.TrimSpace(r.Header.Get("X-Voter-Token")),
		strings.TrimSpace(r.Header.Get("X-User-ID")),
		req,
	)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleVoterState(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.VoterStateHandler(
		r.Context(),
		r.PathValue("poll_id"),
		strings.TrimSpace(r.Header.Get("X-Voter-Token")),
		strings.TrimSpace(r.Header.Get("X-User-ID")),
	)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePollResults(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.PollResultsHandler(r.Context(), r.PathValue("poll_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEventResults(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.EventResultsHandler(r.Context(), r.PathValue("event_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrVoterTokenMissing):
		writeVotingError(w, http.StatusUnauthorized, "voter_token_missing", err.Error())
	case errors.Is(err, votingerrors.ErrPollNotFound):
		writeVotingError(w, http.StatusNotFound, "poll_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrEventNotFound):
		writeVotingError(w, http.StatusNotFound, "event_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrPollClosed):
		writeVotingError(w, http.StatusConflict, "poll_closed", err.Error())
	case errors.Is(err, votingerrors.ErrDuplicateBallot):
		writeVotingError(w, http.StatusConflict, "duplicate_ballot", err.Error())
	case errors.Is(err, votingerrors.ErrInvalidOption):
		writeVotingError(w, http.StatusBadRequest, "invalid_option", err.Error())
	case errors.Is(err, votingerrors.ErrInvalidSelectionCount):
		writeVotingError(w, http.StatusBadRequest, "invalid_selection_count", err.Error())
	case errors.Is(err, votingerrors.ErrResultsHidden):
		writeVotingError(w, http.StatusForbidden, "results_hidden", err.Error())
	default:
		writeVotingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeVotingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
