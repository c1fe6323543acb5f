package services

import (
	"math"
	"sort"

	"galavote/contexts/audience-voting/ballot-engine/domain/entities"
)

// TallyOption is the option identity a tally is computed over. Position is
// the option's definition order within the poll and the deterministic
// tie-breaker.
type TallyOption struct {
	OptionID string
	Name     string
	Position int
}

// ComputePollResult folds the ledger into ranked per-option tallies. A multi
// ballot contributes one count to each selected option; percentages are
// against total ballots, not total selections. Ordering is vote count
// descending with ties resolved by option position ascending, so identical
// data always yields an identical ranking.
func ComputePollResult(pollID string, options []TallyOption, ballots []entities.Ballot) entities.PollResult {
	counts := make(map[string]int, len(options))
	for _, ballot := range ballots {
		for _, optionID := range ballot.SelectedOptionIDs {
			counts[optionID]++
		}
	}

	totalBallots := len(ballots)
	tallies := make([]entities.OptionTally, 0, len(options))
	for _, option := range options {
		tally := entities.OptionTally{
			OptionID:  option.OptionID,
			Name:      option.Name,
			Position:  option.Position,
			VoteCount: counts[option.OptionID],
		}
		if totalBallots > 0 {
			tally.Percentage = roundPercent(float64(tally.VoteCount) / float64(totalBallots) * 100)
		}
		tallies = append(tallies, tally)
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		if tallies[i].VoteCount == tallies[j].VoteCount {
			return tallies[i].Position < tallies[j].Position
		}
		return tallies[i].VoteCount > tallies[j].VoteCount
	})

	return entities.PollResult{
		PollID:       pollID,
		TotalBallots: totalBallots,
		Tallies:      tallies,
	}
}

func roundPercent(value float64) float64 {
	return math.Round(value*10) / 10
}
