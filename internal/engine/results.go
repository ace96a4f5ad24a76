package engine

import (
	"context"
	"fmt"
	"sort"

	"election-service/internal/ports/models"
)

// GetResults computes the tally view for an election. While the
// election has no votes the candidate breakdown is withheld: the view
// carries an empty candidate list and HasVotes false. With votes,
// candidates come back ordered by vote count descending, equal counts
// by ascending candidate id, each with its percentage of the total
// formatted to two decimals.
func (e *Engine) GetResults(ctx context.Context, electionID uint) (*models.ElectionResults, error) {
	election, err := e.stores.Elections.GetElection(ctx, electionID)
	if err != nil {
		return nil, err
	}

	results := &models.ElectionResults{
		ElectionID: electionID,
		Candidates: []models.CandidateResult{},
		TotalVotes: election.TotalVotes,
		HasVotes:   election.TotalVotes > 0,
	}
	if !results.HasVotes {
		return results, nil
	}

	candidates, err := e.stores.Candidates.ListCandidates(ctx, electionID)
	if err != nil {
		return nil, storeErr(err)
	}

	// Insertion order is ascending candidate id, so a stable sort keeps
	// ties ordered by id.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].VoteCount > candidates[j].VoteCount
	})

	total := float64(election.TotalVotes)
	for _, candidate := range candidates {
		results.Candidates = append(results.Candidates, models.CandidateResult{
			Candidate:  candidate,
			Percentage: fmt.Sprintf("%.2f", float64(candidate.VoteCount)/total*100),
		})
	}
	return results, nil
}
