// Package engine implements the election state engine: it composes the
// four stores to guarantee one vote per eligible voter, consistent
// counters under concurrent writes, and deterministic tallies.
package engine

import (
	"context"
	"errors"
	"sync"

	"election-service/internal/ports"
	"election-service/internal/ports/models"
	"election-service/pkg/apperrors"
)

// Engine owns all write access to the stores. Mutations for the same
// election are serialized by a per-election mutex; cross-election
// operations never contend. Reads bypass the election lock and rely on
// the stores returning committed snapshots.
type Engine struct {
	stores ports.Stores
	tx     ports.TxRunner

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func New(stores ports.Stores, tx ports.TxRunner) *Engine {
	return &Engine{
		stores: stores,
		tx:     tx,
		locks:  make(map[uint]*sync.Mutex),
	}
}

// lockElection acquires the mutex for one election and returns its
// unlock. Lock entries are never removed; elections are never deleted.
func (e *Engine) lockElection(electionID uint) func() {
	e.mu.Lock()
	l, ok := e.locks[electionID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[electionID] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// CreateElection validates the request and stores a new active election
// with an empty candidate list. A failed validation does not consume an
// election id.
func (e *Engine) CreateElection(ctx context.Context, req models.CreateElectionRequest, now int64) (*models.Election, error) {
	if err := validateElectionData(req.Title, req.Description); err != nil {
		return nil, err
	}
	if err := validateElectionTimes(req.StartTime, req.EndTime, now); err != nil {
		return nil, err
	}

	election := &models.Election{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsActive:    true,
		TotalVotes:  0,
	}
	if err := e.stores.Elections.CreateElection(ctx, election); err != nil {
		return nil, storeErr(err)
	}
	return election, nil
}

func (e *Engine) GetElection(ctx context.Context, id uint) (*models.Election, error) {
	return e.stores.Elections.GetElection(ctx, id)
}

// ListElections returns all elections ordered by id ascending, each
// with its derived status at now and its candidate count.
func (e *Engine) ListElections(ctx context.Context, now int64) ([]models.ElectionWithStats, error) {
	elections, err := e.stores.Elections.ListElections(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	out := make([]models.ElectionWithStats, 0, len(elections))
	for _, election := range elections {
		candidates, err := e.stores.Candidates.ListCandidates(ctx, election.ID)
		if err != nil {
			return nil, storeErr(err)
		}
		out = append(out, models.ElectionWithStats{
			Election:       election,
			Status:         election.StatusAt(now),
			CandidateCount: len(candidates),
		})
	}
	return out, nil
}

// EndElection deactivates the election. Ending an already-ended
// election still reports success; the flip is final.
func (e *Engine) EndElection(ctx context.Context, id uint) error {
	unlock := e.lockElection(id)
	defer unlock()

	return e.stores.Elections.DeactivateElection(ctx, id)
}

// AddCandidate validates the request and appends a candidate to the
// election's list, assigning the next per-election candidate id.
func (e *Engine) AddCandidate(ctx context.Context, electionID uint, req models.AddCandidateRequest) (*models.Candidate, error) {
	unlock := e.lockElection(electionID)
	defer unlock()

	if _, err := e.stores.Elections.GetElection(ctx, electionID); err != nil {
		return nil, err
	}
	if err := validateCandidateData(req.Name, req.Position, req.Manifesto); err != nil {
		return nil, err
	}

	candidate := &models.Candidate{
		ElectionID: electionID,
		Name:       req.Name,
		Position:   req.Position,
		Manifesto:  req.Manifesto,
		VoteCount:  0,
		IsActive:   true,
	}
	if err := e.stores.Candidates.AddCandidate(ctx, candidate); err != nil {
		return nil, storeErr(err)
	}
	return candidate, nil
}

// ListCandidates returns the election's candidates in insertion order.
// An unknown election id is NotFound, not an empty list.
func (e *Engine) ListCandidates(ctx context.Context, electionID uint) ([]models.Candidate, error) {
	return e.stores.Candidates.ListCandidates(ctx, electionID)
}

// RegisterVoter records a registration for an opaque voter address.
// Rejected once the election has been ended, on a malformed student id,
// on a duplicate student id, and on a duplicate address.
func (e *Engine) RegisterVoter(ctx context.Context, electionID uint, address, studentID string, now int64) (*models.Voter, error) {
	unlock := e.lockElection(electionID)
	defer unlock()

	election, err := e.stores.Elections.GetElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if !election.IsActive {
		return nil, apperrors.State("election has ended")
	}
	if err := validateStudentID(studentID); err != nil {
		return nil, err
	}

	voter := &models.Voter{
		ElectionID:       electionID,
		Address:          address,
		StudentID:        studentID,
		IsRegistered:     true,
		HasVoted:         false,
		VotedCandidateID: 0,
		RegistrationTime: now,
	}
	if err := e.stores.Voters.RegisterVoter(ctx, voter); err != nil {
		return nil, err
	}
	return voter, nil
}

func (e *Engine) GetVoter(ctx context.Context, electionID uint, address string) (*models.Voter, error) {
	return e.stores.Voters.GetVoter(ctx, electionID, address)
}

// HasVoted is false, not an error, for an unregistered address.
func (e *Engine) HasVoted(ctx context.Context, electionID uint, address string) (bool, error) {
	return e.stores.Voters.HasVoted(ctx, electionID, address)
}

// CastVote moves a voter from Registered to Voted. The ledger append,
// both counter increments and the voter flag commit as one unit; a
// failure inside the commit rolls all of them back and surfaces as an
// internal error.
func (e *Engine) CastVote(ctx context.Context, electionID, candidateID uint, address string, now int64) (*models.Vote, error) {
	unlock := e.lockElection(electionID)
	defer unlock()

	election, err := e.stores.Elections.GetElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if election.StatusAt(now) != models.StatusActive {
		return nil, apperrors.State("election not open for voting")
	}

	voter, err := e.stores.Voters.GetVoter(ctx, electionID, address)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.State("not registered")
		}
		return nil, storeErr(err)
	}
	if !voter.IsRegistered {
		return nil, apperrors.State("not registered")
	}
	if voter.HasVoted {
		return nil, apperrors.State("already voted")
	}

	candidate, err := e.stores.Candidates.GetCandidate(ctx, electionID, candidateID)
	if err != nil {
		return nil, err
	}
	if !candidate.IsActive {
		return nil, apperrors.NotFound("candidate not found")
	}

	vote := &models.Vote{
		ElectionID:   electionID,
		CandidateID:  candidateID,
		VoterAddress: address,
		CastAt:       now,
	}
	err = e.tx.RunInTx(ctx, func(ctx context.Context, tx ports.VoteTx) error {
		if err := tx.AppendVote(ctx, vote); err != nil {
			return err
		}
		if err := tx.IncrementVoteCount(ctx, electionID, candidateID); err != nil {
			return err
		}
		if err := tx.IncrementTotalVotes(ctx, electionID); err != nil {
			return err
		}
		return tx.MarkVoted(ctx, electionID, address, candidateID)
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return vote, nil
}

// storeErr keeps typed store errors and wraps anything else as
// internal.
func storeErr(err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Internal(err)
}
