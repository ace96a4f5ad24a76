package memory

import (
	"context"
	"errors"
	"testing"

	"election-service/internal/ports"
	"election-service/internal/ports/models"
	"election-service/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedElection(t *testing.T, store *Store) *models.Election {
	t.Helper()
	election := &models.Election{
		Title:       "Student Union Election 2024",
		Description: "Annual election for Student Union Government positions",
		StartTime:   100,
		EndTime:     100 + 86400,
		IsActive:    true,
	}
	require.NoError(t, store.CreateElection(context.Background(), election))
	return election
}

func seedCandidate(t *testing.T, store *Store, electionID uint) *models.Candidate {
	t.Helper()
	candidate := &models.Candidate{
		ElectionID: electionID,
		Name:       "John Doe",
		Position:   "President",
		Manifesto:  "Building a better future for all students with transparency and innovation.",
		IsActive:   true,
	}
	require.NoError(t, store.AddCandidate(context.Background(), candidate))
	return candidate
}

func seedVoter(t *testing.T, store *Store, electionID uint, address, studentID string) *models.Voter {
	t.Helper()
	voter := &models.Voter{
		ElectionID:       electionID,
		Address:          address,
		StudentID:        studentID,
		IsRegistered:     true,
		RegistrationTime: 100,
	}
	require.NoError(t, store.RegisterVoter(context.Background(), voter))
	return voter
}

func TestElectionIDSequence(t *testing.T) {
	store := NewStore()

	first := seedElection(t, store)
	second := seedElection(t, store)

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)

	// A fresh election starts with an empty, known candidate list.
	candidates, err := store.ListCandidates(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestGetElectionCopiesRecord(t *testing.T) {
	store := NewStore()
	election := seedElection(t, store)

	got, err := store.GetElection(context.Background(), election.ID)
	require.NoError(t, err)

	got.TotalVotes = 99
	again, err := store.GetElection(context.Background(), election.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), again.TotalVotes, "callers get copies, not aliases")
}

func TestListElectionsOrderedByID(t *testing.T) {
	store := NewStore()
	for i := 0; i < 5; i++ {
		seedElection(t, store)
	}

	elections, err := store.ListElections(context.Background())
	require.NoError(t, err)
	require.Len(t, elections, 5)
	for i, election := range elections {
		assert.Equal(t, uint(i+1), election.ID)
	}
}

func TestCandidateSequencePerElection(t *testing.T) {
	store := NewStore()
	first := seedElection(t, store)
	second := seedElection(t, store)

	c1 := seedCandidate(t, store, first.ID)
	c2 := seedCandidate(t, store, first.ID)
	other := seedCandidate(t, store, second.ID)

	assert.Equal(t, uint(1), c1.ID)
	assert.Equal(t, uint(2), c2.ID)
	assert.Equal(t, uint(1), other.ID)
}

func TestListCandidatesUnknownElection(t *testing.T) {
	store := NewStore()

	_, err := store.ListCandidates(context.Background(), 42)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestRegisterVoterConflicts(t *testing.T) {
	store := NewStore()
	election := seedElection(t, store)
	seedVoter(t, store, election.ID, "0xaaa", "2020/001")

	err := store.RegisterVoter(context.Background(), &models.Voter{
		ElectionID: election.ID, Address: "0xbbb", StudentID: "2020/001", IsRegistered: true,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict), "duplicate student id")

	err = store.RegisterVoter(context.Background(), &models.Voter{
		ElectionID: election.ID, Address: "0xaaa", StudentID: "2020/002", IsRegistered: true,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict), "duplicate address")
}

func TestMarkVotedTransitions(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	election := seedElection(t, store)
	seedVoter(t, store, election.ID, "0xaaa", "2020/001")

	err := store.MarkVoted(ctx, election.ID, "0xnobody", 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindState))

	require.NoError(t, store.MarkVoted(ctx, election.ID, "0xaaa", 1))

	err = store.MarkVoted(ctx, election.ID, "0xaaa", 2)
	assert.True(t, apperrors.IsKind(err, apperrors.KindState))

	voter, err := store.GetVoter(ctx, election.ID, "0xaaa")
	require.NoError(t, err)
	assert.True(t, voter.HasVoted)
	assert.Equal(t, uint(1), voter.VotedCandidateID)
}

func TestLedgerCounts(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	election := seedElection(t, store)

	for i, candidateID := range []uint{1, 1, 2} {
		vote := &models.Vote{
			ElectionID:   election.ID,
			CandidateID:  candidateID,
			VoterAddress: "0xvoter",
			CastAt:       int64(200 + i),
		}
		require.NoError(t, store.AppendVote(ctx, vote))
		assert.NotEmpty(t, vote.ID, "append assigns a record id")
	}

	total, err := store.CountVotes(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)

	forFirst, err := store.CountVotesForCandidate(ctx, election.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), forFirst)

	none, err := store.CountVotes(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), none)
}

func TestRunInTxCommit(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	election := seedElection(t, store)
	candidate := seedCandidate(t, store, election.ID)
	seedVoter(t, store, election.ID, "0xaaa", "2020/001")

	err := store.RunInTx(ctx, func(ctx context.Context, tx ports.VoteTx) error {
		if err := tx.AppendVote(ctx, &models.Vote{ElectionID: election.ID, CandidateID: candidate.ID, VoterAddress: "0xaaa", CastAt: 200}); err != nil {
			return err
		}
		if err := tx.IncrementVoteCount(ctx, election.ID, candidate.ID); err != nil {
			return err
		}
		if err := tx.IncrementTotalVotes(ctx, election.ID); err != nil {
			return err
		}
		return tx.MarkVoted(ctx, election.ID, "0xaaa", candidate.ID)
	})
	require.NoError(t, err)

	got, err := store.GetElection(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.TotalVotes)
	total, err := store.CountVotes(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	election := seedElection(t, store)
	candidate := seedCandidate(t, store, election.ID)
	seedVoter(t, store, election.ID, "0xaaa", "2020/001")

	boom := errors.New("boom")
	err := store.RunInTx(ctx, func(ctx context.Context, tx ports.VoteTx) error {
		if err := tx.AppendVote(ctx, &models.Vote{ElectionID: election.ID, CandidateID: candidate.ID, VoterAddress: "0xaaa", CastAt: 200}); err != nil {
			return err
		}
		if err := tx.IncrementVoteCount(ctx, election.ID, candidate.ID); err != nil {
			return err
		}
		if err := tx.IncrementTotalVotes(ctx, election.ID); err != nil {
			return err
		}
		if err := tx.MarkVoted(ctx, election.ID, "0xaaa", candidate.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Every update from the failed commit is gone.
	got, err := store.GetElection(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got.TotalVotes)

	total, err := store.CountVotes(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total)

	candidates, err := store.ListCandidates(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), candidates[0].VoteCount)

	voter, err := store.GetVoter(ctx, election.ID, "0xaaa")
	require.NoError(t, err)
	assert.False(t, voter.HasVoted)
	assert.Equal(t, uint(0), voter.VotedCandidateID)
}

func TestRunInTxPartialFailureRollsBack(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	election := seedElection(t, store)
	seedCandidate(t, store, election.ID)

	err := store.RunInTx(ctx, func(ctx context.Context, tx ports.VoteTx) error {
		if err := tx.AppendVote(ctx, &models.Vote{ElectionID: election.ID, CandidateID: 1, VoterAddress: "0xaaa", CastAt: 200}); err != nil {
			return err
		}
		// Unknown candidate: the commit fails after the append.
		return tx.IncrementVoteCount(ctx, election.ID, 42)
	})
	require.Error(t, err)

	total, err := store.CountVotes(ctx, election.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total, "the append was undone")
}
