package services

import (
	"testing"
	"time"

	"galavote/contexts/audience-voting/ballot-engine/domain/entities"
)

func TestComputePollResultCountsAndPercentages(t *testing.T) {
	options := []TallyOption{
		{OptionID: "opt-a", Name: "Alpha", Position: 0},
		{OptionID: "opt-b", Name: "Bravo", Position: 1},
	}
	ballots := []entities.Ballot{
		ballotFor("opt-a"),
		ballotFor("opt-a"),
		ballotFor("opt-b"),
	}

	result := ComputePollResult("poll-1", options, ballots)

	if result.TotalBallots != 3 {
		t.Fatalf("expected 3 total ballots, got %d", result.TotalBallots)
	}
	if result.Tallies[0].OptionID != "opt-a" || result.Tallies[0].VoteCount != 2 {
		t.Fatalf("expected opt-a ranked first with 2 votes, got %+v", result.Tallies[0])
	}
	if result.Tallies[0].Percentage != 66.7 {
		t.Fatalf("expected 66.7 percent for opt-a, got %v", result.Tallies[0].Percentage)
	}
	if result.Tallies[1].Percentage != 33.3 {
		t.Fatalf("expected 33.3 percent for opt-b, got %v", result.Tallies[1].Percentage)
	}
}

func TestComputePollResultTieBreaksByPosition(t *testing.T) {
	options := []TallyOption{
		{OptionID: "opt-c", Name: "Charlie", Position: 2},
		{OptionID: "opt-a", Name: "Alpha", Position: 0},
		{OptionID: "opt-b", Name: "Bravo", Position: 1},
	}
	ballots := []entities.Ballot{
		ballotFor("opt-a"),
		ballotFor("opt-b"),
		ballotFor("opt-c"),
	}

	result := ComputePollResult("poll-1", options, ballots)

	for i, want := range []string{"opt-a", "opt-b", "opt-c"} {
		if result.Tallies[i].OptionID != want {
			t.Fatalf("tie ordering broken at index %d: expected %s, got %s", i, want, result.Tallies[i].OptionID)
		}
	}
}

func TestComputePollResultMultiBallotCountsEachSelectionOnce(t *testing.T) {
	options := []TallyOption{
		{OptionID: "opt-a", Position: 0},
		{OptionID: "opt-b", Position: 1},
	}
	ballots := []entities.Ballot{
		ballotFor("opt-a", "opt-b"),
		ballotFor("opt-a"),
	}

	result := ComputePollResult("poll-1", options, ballots)

	if result.TotalBallots != 2 {
		t.Fatalf("expected 2 ballots, got %d", result.TotalBallots)
	}
	if result.Tallies[0].OptionID != "opt-a" || result.Tallies[0].VoteCount != 2 {
		t.Fatalf("expected opt-a with 2 votes, got %+v", result.Tallies[0])
	}
	// Percentages are against ballots, so selections can sum past 100.
	if result.Tallies[0].Percentage != 100.0 {
		t.Fatalf("expected 100 percent for opt-a, got %v", result.Tallies[0].Percentage)
	}
	if result.Tallies[1].Percentage != 50.0 {
		t.Fatalf("expected 50 percent for opt-b, got %v", result.Tallies[1].Percentage)
	}
}

func TestComputePollResultNoBallots(t *testing.T) {
	options := []TallyOption{
		{OptionID: "opt-a", Position: 0},
		{OptionID: "opt-b", Position: 1},
	}

	result := ComputePollResult("poll-1", options, nil)

	if result.TotalBallots != 0 {
		t.Fatalf("expected 0 ballots, got %d", result.TotalBallots)
	}
	for _, tally := range result.Tallies {
		if tally.VoteCount != 0 || tally.Percentage != 0 {
			t.Fatalf("expected zeroed tally, got %+v", tally)
		}
	}
}

func TestComputePollResultIgnoresUnknownSelections(t *testing.T) {
	options := []TallyOption{
		{OptionID: "opt-a", Position: 0},
	}
	ballots := []entities.Ballot{
		ballotFor("opt-a"),
		ballotFor("opt-ghost"),
	}

	result := ComputePollResult("poll-1", options, ballots)

	if len(result.Tallies) != 1 {
		t.Fatalf("expected one tally, got %d", len(result.Tallies))
	}
	if result.Tallies[0].VoteCount != 1 {
		t.Fatalf("expected 1 vote for opt-a, got %d", result.Tallies[0].VoteCount)
	}
}

func ballotFor(optionIDs ...string) entities.Ballot {
	return entities.Ballot{
		BallotID:          "ballot",
		PollID:            "poll-1",
		VoterToken:        "token",
		SelectedOptionIDs: optionIDs,
		CreatedAt:         time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}
