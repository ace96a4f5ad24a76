package engine_test

import (
	"context"
	"testing"

	"election-service/internal/ports/models"
	"election-service/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetResultsWithheldUntilFirstVote(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	election := newRunningElection(t, eng)
	addCandidate(t, eng, election.ID, "John Doe")

	results, err := eng.GetResults(ctx, election.ID)
	require.NoError(t, err)
	assert.False(t, results.HasVotes)
	assert.Equal(t, uint64(0), results.TotalVotes)
	assert.Empty(t, results.Candidates, "no breakdown before the first vote")
}

func TestGetResultsUnknownElection(t *testing.T) {
	eng, _ := newTestEngine(t)

	_, err := eng.GetResults(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestGetResultsOrderingAndPercentages(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	election := newRunningElection(t, eng)
	c1 := addCandidate(t, eng, election.ID, "John Doe")
	c2 := addCandidate(t, eng, election.ID, "Jane Smith")
	addCandidate(t, eng, election.ID, "Alex Johnson")

	votes := []struct {
		address   string
		studentID string
		candidate uint
	}{
		{"0xaaa", "2020/001", c2.ID},
		{"0xbbb", "2020/002", c2.ID},
		{"0xccc", "2020/003", c1.ID},
	}
	for _, v := range votes {
		registerVoter(t, eng, election.ID, v.address, v.studentID)
		_, err := eng.CastVote(ctx, election.ID, v.candidate, v.address, baseTime)
		require.NoError(t, err)
	}

	results, err := eng.GetResults(ctx, election.ID)
	require.NoError(t, err)
	require.True(t, results.HasVotes)
	assert.Equal(t, uint64(3), results.TotalVotes)
	require.Len(t, results.Candidates, 3)

	// Vote count descending, then candidate 3's zero at the end.
	assert.Equal(t, uint(2), results.Candidates[0].ID)
	assert.Equal(t, uint(1), results.Candidates[1].ID)
	assert.Equal(t, uint(3), results.Candidates[2].ID)

	assert.Equal(t, "66.67", results.Candidates[0].Percentage)
	assert.Equal(t, "33.33", results.Candidates[1].Percentage)
	assert.Equal(t, "0.00", results.Candidates[2].Percentage)
}

func TestGetResultsTieBreaksByCandidateID(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	election := newRunningElection(t, eng)
	c1 := addCandidate(t, eng, election.ID, "John Doe")
	c2 := addCandidate(t, eng, election.ID, "Jane Smith")

	registerVoter(t, eng, election.ID, "0xaaa", "2020/001")
	registerVoter(t, eng, election.ID, "0xbbb", "2020/002")

	// Cast for the later candidate first; the tie must still come back
	// in ascending id order.
	_, err := eng.CastVote(ctx, election.ID, c2.ID, "0xaaa", baseTime)
	require.NoError(t, err)
	_, err = eng.CastVote(ctx, election.ID, c1.ID, "0xbbb", baseTime)
	require.NoError(t, err)

	results, err := eng.GetResults(ctx, election.ID)
	require.NoError(t, err)
	require.Len(t, results.Candidates, 2)
	assert.Equal(t, uint(1), results.Candidates[0].ID)
	assert.Equal(t, uint(2), results.Candidates[1].ID)
	assert.Equal(t, "50.00", results.Candidates[0].Percentage)
	assert.Equal(t, "50.00", results.Candidates[1].Percentage)
}

func TestElectionStatusAt(t *testing.T) {
	election := &models.Election{
		StartTime: baseTime,
		EndTime:   baseTime + 7200,
		IsActive:  true,
	}

	assert.Equal(t, models.StatusUpcoming, election.StatusAt(baseTime-1))
	assert.Equal(t, models.StatusActive, election.StatusAt(baseTime))
	assert.Equal(t, models.StatusActive, election.StatusAt(baseTime+7200))
	assert.Equal(t, models.StatusExpired, election.StatusAt(baseTime+7201))

	election.IsActive = false
	assert.Equal(t, models.StatusEnded, election.StatusAt(baseTime-1))
	assert.Equal(t, models.StatusEnded, election.StatusAt(baseTime))
	assert.Equal(t, models.StatusEnded, election.StatusAt(baseTime+7201))
}
