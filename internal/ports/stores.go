// Package ports defines the storage contracts the election engine is
// written against. A memory adapter and a postgres adapter both satisfy
// them; the engine never branches on which one it has.
package ports

import (
	"context"

	"election-service/internal/ports/models"
)

// ElectionStore holds election records and owns the global election id
// sequence. Ids start at 1, only successful creates consume one, and an
// id is never reused.
type ElectionStore interface {
	// CreateElection assigns the next election id, stores the record
	// and initializes its empty candidate list. Sets e.ID on success.
	CreateElection(ctx context.Context, e *models.Election) error
	GetElection(ctx context.Context, id uint) (*models.Election, error)
	// ListElections returns all elections ordered by id ascending.
	ListElections(ctx context.Context) ([]models.Election, error)
	// DeactivateElection flips IsActive to false. Idempotent; only
	// fails when the election does not exist.
	DeactivateElection(ctx context.Context, id uint) error
	IncrementTotalVotes(ctx context.Context, id uint) error
}

// CandidateStore holds per-election candidate lists with per-election
// id sequences starting at 1.
type CandidateStore interface {
	// AddCandidate assigns the next candidate id within c.ElectionID
	// and stores the record. Sets c.ID on success.
	AddCandidate(ctx context.Context, c *models.Candidate) error
	GetCandidate(ctx context.Context, electionID, candidateID uint) (*models.Candidate, error)
	// ListCandidates returns candidates in insertion order. An unknown
	// election id is NotFound, distinct from an empty list.
	ListCandidates(ctx context.Context, electionID uint) ([]models.Candidate, error)
	IncrementVoteCount(ctx context.Context, electionID, candidateID uint) error
}

// VoterStore maps (election, voter address) to a registration record
// and enforces one registration per student id per election.
type VoterStore interface {
	// RegisterVoter stores the record. Conflict when the address is
	// already registered for the election or the student id is held by
	// any other address in the same election.
	RegisterVoter(ctx context.Context, v *models.Voter) error
	GetVoter(ctx context.Context, electionID uint, address string) (*models.Voter, error)
	// HasVoted is false, not an error, for an unregistered address.
	HasVoted(ctx context.Context, electionID uint, address string) (bool, error)
	// MarkVoted flips HasVoted exactly once and records the candidate.
	// StateError when the voter is unregistered or has already voted.
	MarkVoted(ctx context.Context, electionID uint, address string, candidateID uint) error
}

// VoteLedger is the append-only record of accepted votes and the ground
// truth for all counters. Appends never reject on eligibility; checks
// happen in the engine.
type VoteLedger interface {
	AppendVote(ctx context.Context, v *models.Vote) error
	CountVotes(ctx context.Context, electionID uint) (uint64, error)
	CountVotesForCandidate(ctx context.Context, electionID, candidateID uint) (uint64, error)
}

// VoteTx is the view of the stores inside a vote commit: the ledger
// append and the three counter/flag updates must land together or not
// at all.
type VoteTx interface {
	AppendVote(ctx context.Context, v *models.Vote) error
	IncrementVoteCount(ctx context.Context, electionID, candidateID uint) error
	IncrementTotalVotes(ctx context.Context, electionID uint) error
	MarkVoted(ctx context.Context, electionID uint, address string, candidateID uint) error
}

// TxRunner runs fn atomically against the stores. If fn returns an
// error every update it made is rolled back.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx VoteTx) error) error
}

// Stores bundles the four contracts the engine composes.
type Stores struct {
	Elections  ElectionStore
	Candidates CandidateStore
	Voters     VoterStore
	Ledger     VoteLedger
}
