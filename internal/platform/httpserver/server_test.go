package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ballotengine "galavote/contexts/audience-voting/ballot-engine"
	votingentities "galavote/contexts/audience-voting/ballot-engine/domain/entities"
	votingports "galavote/contexts/audience-voting/ballot-engine/ports"
	eventservice "galavote/contexts/event-catalog/event-service"
)

func newTestServer() *Server {
	catalog := eventservice.NewInMemoryModule(nil)
	voting := ballotengine.NewInMemoryModule(nil, nil)
	return New(catalog, voting, nil, ":0", true)
}

func seedVotingFixtures(server *Server, revealAt *time.Time) {
	store := server.voting.Store
	store.SetEvent(votingports.EventProjection{
		EventID:  "event-1",
		Slug:     "gala-night",
		Status:   "published",
		IsPublic: true,
		RevealAt: revealAt,
	})
	store.SetPoll(votingports.PollProjection{
		PollID:     "poll-1",
		EventID:    "event-1",
		Title:      "Best Newcomer",
		Position:   0,
		VotingType: votingentities.VotingTypeSingle,
		Published:  true,
	})
	store.SetOption(votingports.OptionProjection{OptionID: "opt-a", PollID: "poll-1", Position: 0, Name: "Alpha"})
	store.SetOption(votingports.OptionProjection{OptionID: "opt-b", PollID: "poll-1", Position: 1, Name: "Bravo"})
}

func TestCreateEventRequiresUser(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader([]byte(`{"title":"Gala"}`)))
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateEventAndFetchBySlug(t *testing.T) {
	server := newTestServer()

	body := []byte(`{"title":"Winter Gala","description":"annual awards","is_public":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader(body))
	req.Header.Set("X-User-ID", "user-1")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var created struct {
		EventID string `json:"event_id"`
		Slug    string `json:"slug"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if created.Slug != "winter-gala" || created.Status != "draft" {
		t.Fatalf("unexpected create payload: %+v", created)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/events/winter-gala", nil)
	getRR := httptest.NewRecorder()
	server.mux.ServeHTTP(getRR, getReq)
	if getRR.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching by slug, got %d body=%s", getRR.Code, getRR.Body.String())
	}
}

func TestCreateEventQuotaDenialPayload(t *testing.T) {
	server := newTestServer()

	first := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader([]byte(`{"title":"First"}`)))
	first.Header.Set("X-User-ID", "user-1")
	firstRR := httptest.NewRecorder()
	server.mux.ServeHTTP(firstRR, first)
	if firstRR.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", firstRR.Code, firstRR.Body.String())
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader([]byte(`{"title":"Second"}`)))
	second.Header.Set("X-User-ID", "user-1")
	secondRR := httptest.NewRecorder()
	server.mux.ServeHTTP(secondRR, second)

	if secondRR.Code != http.StatusForbidden {
		t.Fatalf("expected 403 quota denial, got %d body=%s", secondRR.Code, secondRR.Body.String())
	}
	var denial struct {
		Code         string `json:"code"`
		CurrentCount int    `json:"current_count"`
		Quota        int    `json:"quota"`
		Plan         string `json:"plan"`
	}
	if err := json.Unmarshal(secondRR.Body.Bytes(), &denial); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if denial.Code != "event_quota_exceeded" || denial.CurrentCount != 1 || denial.Quota != 1 || denial.Plan != "free" {
		t.Fatalf("unexpected denial payload: %+v", denial)
	}
}

func TestEventLifecycleOverHTTP(t *testing.T) {
	server := newTestServer()

	create := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader([]byte(`{"title":"Gala"}`)))
	create.Header.Set("X-User-ID", "user-1")
	createRR := httptest.NewRecorder()
	server.mux.ServeHTTP(createRR, create)
	var created struct {
		EventID string `json:"event_id"`
	}
	if err := json.Unmarshal(createRR.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	// Publishing a draft skips the moderation queue and must fail.
	publish := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+created.EventID+"/publish", nil)
	publishRR := httptest.NewRecorder()
	server.mux.ServeHTTP(publishRR, publish)
	if publishRR.Code != http.StatusConflict {
		t.Fatalf("expected 409 publishing draft, got %d", publishRR.Code)
	}

	submit := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+created.EventID+"/submit", nil)
	submit.Header.Set("X-User-ID", "user-2")
	submitRR := httptest.NewRecorder()
	server.mux.ServeHTTP(submitRR, submit)
	if submitRR.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner submit, got %d", submitRR.Code)
	}

	submit = httptest.NewRequest(http.MethodPost, "/api/v1/events/"+created.EventID+"/submit", nil)
	submit.Header.Set("X-User-ID", "user-1")
	submitRR = httptest.NewRecorder()
	server.mux.ServeHTTP(submitRR, submit)
	if submitRR.Code != http.StatusOK {
		t.Fatalf("expected 200 submitting draft, got %d body=%s", submitRR.Code, submitRR.Body.String())
	}

	publishRR = httptest.NewRecorder()
	server.mux.ServeHTTP(publishRR, httptest.NewRequest(http.MethodPost, "/api/v1/events/"+created.EventID+"/publish", nil))
	if publishRR.Code != http.StatusOK {
		t.Fatalf("expected 200 publishing pending event, got %d body=%s", publishRR.Code, publishRR.Body.String())
	}
}

func TestCreatePollOverHTTP(t *testing.T) {
	server := newTestServer()

	create := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader([]byte(`{"title":"Gala"}`)))
	create.Header.Set("X-User-ID", "user-1")
	createRR := httptest.NewRecorder()
	server.mux.ServeHTTP(createRR, create)
	var created struct {
		EventID string `json:"event_id"`
	}
	if err := json.Unmarshal(createRR.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	pollBody := []byte(`{"title":"Best Newcomer","voting_type":"single","options":[{"participant_name":"Alice"},{"participant_name":"Bob"}]}`)
	pollReq := httptest.NewRequest(http.MethodPost, "/api/v1/events/"+created.EventID+"/polls", bytes.NewReader(pollBody))
	pollReq.Header.Set("X-User-ID", "user-1")
	pollRR := httptest.NewRecorder()
	server.mux.ServeHTTP(pollRR, pollReq)

	if pollRR.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", pollRR.Code, pollRR.Body.String())
	}
	var poll struct {
		PollID   string `json:"poll_id"`
		Position int    `json:"position"`
	}
	if err := json.Unmarshal(pollRR.Body.Bytes(), &poll); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	publishReq := httptest.NewRequest(http.MethodPost, "/api/v1/polls/"+poll.PollID+"/publish", nil)
	publishReq.Header.Set("X-User-ID", "user-1")
	publishRR := httptest.NewRecorder()
	server.mux.ServeHTTP(publishRR, publishReq)
	if publishRR.Code != http.StatusNoContent {
		t.Fatalf("expected 204 publishing poll, got %d body=%s", publishRR.Code, publishRR.Body.String())
	}
}

func TestSubmitBallotOverHTTP(t *testing.T) {
	server := newTestServer()
	seedVotingFixtures(server, nil)

	body := []byte(`{"option_ids":["opt-a"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/polls/poll-1/ballots", bytes.NewReader(body))
	req.Header.Set("X-Voter-Token", "tok-1")
	req.Header.Set("X-User-ID", "user-1")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	// Same token again conflicts regardless of selection.
	dup := httptest.NewRequest(http.MethodPost, "/api/v1/polls/poll-1/ballots", bytes.NewReader([]byte(`{"option_ids":["opt-b"]}`)))
	dup.Header.Set("X-Voter-Token", "tok-1")
	dupRR := httptest.NewRecorder()
	server.mux.ServeHTTP(dupRR, dup)
	if dupRR.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate ballot, got %d body=%s", dupRR.Code, dupRR.Body.String())
	}

	missing := httptest.NewRequest(http.MethodPost, "/api/v1/polls/poll-1/ballots", bytes.NewReader([]byte(`{"option_ids":["opt-a"]}`)))
	missingRR := httptest.NewRecorder()
	server.mux.ServeHTTP(missingRR, missing)
	if missingRR.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without voter token, got %d body=%s", missingRR.Code, missingRR.Body.String())
	}
}

func TestVoterStateOverHTTP(t *testing.T) {
	server := newTestServer()
	seedVotingFixtures(server, nil)

	submit := httptest.NewRequest(http.MethodPost, "/api/v1/polls/poll-1/ballots", bytes.NewReader([]byte(`{"option_ids":["opt-b"]}`)))
	submit.Header.Set("X-Voter-Token", "tok-1")
	submitRR := httptest.NewRecorder()
	server.mux.ServeHTTP(submitRR, submit)
	if submitRR.Code != http.StatusCreated {
		t.Fatalf("submit failed: %d body=%s", submitRR.Code, submitRR.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/polls/poll-1", nil)
	req.Header.Set("X-Voter-Token", "tok-1")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var state struct {
		HasVoted      bool     `json:"has_voted"`
		OptionIDsCast []string `json:"option_ids_cast"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !state.HasVoted || len(state.OptionIDsCast) != 1 || state.OptionIDsCast[0] != "opt-b" {
		t.Fatalf("unexpected voter state: %+v", state)
	}
}

func TestResultsRevealGateOverHTTP(t *testing.T) {
	server := newTestServer()
	future := time.Now().UTC().Add(time.Hour)
	seedVotingFixtures(server, &future)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/polls/poll-1/results", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 before reveal, got %d body=%s", rr.Code, rr.Body.String())
	}

	past := time.Now().UTC().Add(-time.Hour)
	server.voting.Store.SetEvent(votingports.EventProjection{
		EventID:  "event-1",
		Slug:     "gala-night",
		Status:   "published",
		IsPublic: true,
		RevealAt: &past,
	})

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/polls/poll-1/results", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 after reveal, got %d body=%s", rr.Code, rr.Body.String())
	}

	eventRR := httptest.NewRecorder()
	server.mux.ServeHTTP(eventRR, httptest.NewRequest(http.MethodGet, "/api/v1/events/event-1/results", nil))
	if eventRR.Code != http.StatusOK {
		t.Fatalf("expected 200 for event results, got %d body=%s", eventRR.Code, eventRR.Body.String())
	}
}

func TestResultsUnknownPoll(t *testing.T) {
	server := newTestServer()

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/polls/poll-ghost/results", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSwaggerRouteGatedByFlag(t *testing.T) {
	enabled := newTestServer()
	rr := httptest.NewRecorder()
	enabled.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	if rr.Code == http.StatusNotFound {
		t.Fatalf("expected swagger route when enabled, got %d", rr.Code)
	}

	disabled := New(eventservice.NewInMemoryModule(nil), ballotengine.NewInMemoryModule(nil, nil), nil, ":0", false)
	rr = httptest.NewRecorder()
	disabled.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when swagger is disabled, got %d", rr.Code)
	}
}
