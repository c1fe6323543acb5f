package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"galavote/contexts/audience-voting/ballot-engine/domain/entities"
	domainerrors "galavote/contexts/audience-voting/ballot-engine/domain/errors"
)

func TestInsertBallotEnforcesOnePerVoter(t *testing.T) {
	store := NewStore(nil)
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	first := entities.Ballot{
		BallotID:          "b1",
		PollID:            "poll-1",
		VoterToken:        "tok-1",
		SelectedOptionIDs: []string{"opt-a"},
		CreatedAt:         created,
	}
	if err := store.InsertBallot(context.Background(), first); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	second := first
	second.BallotID = "b2"
	second.SelectedOptionIDs = []string{"opt-b"}
	if err := store.InsertBallot(context.Background(), second); !errors.Is(err, domainerrors.ErrDuplicateBallot) {
		t.Fatalf("expected ErrDuplicateBallot, got %v", err)
	}

	// Same token on another poll is a separate vote.
	other := first
	other.BallotID = "b3"
	other.PollID = "poll-2"
	if err := store.InsertBallot(context.Background(), other); err != nil {
		t.Fatalf("insert on second poll failed: %v", err)
	}
}

func TestListBallotsByPollOrdering(t *testing.T) {
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore([]entities.Ballot{
		{BallotID: "b2", PollID: "poll-1", VoterToken: "tok-2", CreatedAt: created.Add(time.Minute)},
		{BallotID: "b1", PollID: "poll-1", VoterToken: "tok-1", CreatedAt: created},
		{BallotID: "b9", PollID: "poll-2", VoterToken: "tok-1", CreatedAt: created},
	})

	ballots, err := store.ListBallotsByPoll(context.Background(), "poll-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ballots) != 2 {
		t.Fatalf("expected 2 ballots for poll-1, got %d", len(ballots))
	}
	if ballots[0].BallotID != "b1" || ballots[1].BallotID != "b2" {
		t.Fatalf("expected creation order, got %s then %s", ballots[0].BallotID, ballots[1].BallotID)
	}
}

func TestGetBallotByVoterReturnsCopy(t *testing.T) {
	store := NewStore([]entities.Ballot{
		{BallotID: "b1", PollID: "poll-1", VoterToken: "tok-1", SelectedOptionIDs: []string{"opt-a"}},
	})

	ballot, found, err := store.GetBallotByVoter(context.Background(), "poll-1", "tok-1")
	if err != nil || !found {
		t.Fatalf("expected ballot, found=%v err=%v", found, err)
	}
	ballot.SelectedOptionIDs[0] = "mutated"

	again, _, err := store.GetBallotByVoter(context.Background(), "poll-1", "tok-1")
	if err != nil {
		t.Fatalf("second lookup failed: %v", err)
	}
	if again.SelectedOptionIDs[0] != "opt-a" {
		t.Fatal("caller mutation must not leak into the store")
	}
}
