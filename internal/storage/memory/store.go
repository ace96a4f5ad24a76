// Package memory provides the self-contained storage backend. One
// Store satisfies all four store contracts plus the transaction runner,
// guarded by a single RWMutex so readers always observe a committed
// snapshot.
package memory

import (
	"context"
	"sort"
	"sync"

	"election-service/internal/ports"
	"election-service/internal/ports/models"
	"election-service/pkg/apperrors"

	"github.com/google/uuid"
)

type studentKey struct {
	ElectionID uint
	StudentID  string
}

type Store struct {
	mu sync.RWMutex

	elections      map[uint]models.Election
	nextElectionID uint

	candidates      map[uint][]models.Candidate
	nextCandidateID map[uint]uint

	voters   map[models.VoterKey]models.Voter
	students map[studentKey]string // -> registered address

	votes []models.Vote
}

func NewStore() *Store {
	return &Store{
		elections:       make(map[uint]models.Election),
		nextElectionID:  1,
		candidates:      make(map[uint][]models.Candidate),
		nextCandidateID: make(map[uint]uint),
		voters:          make(map[models.VoterKey]models.Voter),
		students:        make(map[studentKey]string),
	}
}

// Stores returns the store bundled under every contract it implements.
func (s *Store) Stores() ports.Stores {
	return ports.Stores{
		Elections:  s,
		Candidates: s,
		Voters:     s,
		Ledger:     s,
	}
}

// --- ElectionStore ---

func (s *Store) CreateElection(_ context.Context, e *models.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextElectionID
	s.nextElectionID++
	s.elections[e.ID] = *e
	s.candidates[e.ID] = []models.Candidate{}
	s.nextCandidateID[e.ID] = 1
	return nil
}

func (s *Store) GetElection(_ context.Context, id uint) (*models.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.elections[id]
	if !ok {
		return nil, apperrors.NotFound("election not found")
	}
	return &e, nil
}

func (s *Store) ListElections(_ context.Context) ([]models.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint, 0, len(s.elections))
	for id := range s.elections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]models.Election, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.elections[id])
	}
	return out, nil
}

func (s *Store) DeactivateElection(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.elections[id]
	if !ok {
		return apperrors.NotFound("election not found")
	}
	e.IsActive = false
	s.elections[id] = e
	return nil
}

func (s *Store) IncrementTotalVotes(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incrementTotalVotesLocked(id)
}

func (s *Store) incrementTotalVotesLocked(id uint) error {
	e, ok := s.elections[id]
	if !ok {
		return apperrors.NotFound("election not found")
	}
	e.TotalVotes++
	s.elections[id] = e
	return nil
}

// --- CandidateStore ---

func (s *Store) AddCandidate(_ context.Context, c *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.candidates[c.ElectionID]
	if !ok {
		return apperrors.NotFound("election not found")
	}
	c.ID = s.nextCandidateID[c.ElectionID]
	s.nextCandidateID[c.ElectionID]++
	s.candidates[c.ElectionID] = append(list, *c)
	return nil
}

func (s *Store) GetCandidate(_ context.Context, electionID, candidateID uint) (*models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.candidates[electionID] {
		if c.ID == candidateID {
			candidate := c
			return &candidate, nil
		}
	}
	return nil, apperrors.NotFound("candidate not found")
}

func (s *Store) ListCandidates(_ context.Context, electionID uint) ([]models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, ok := s.candidates[electionID]
	if !ok {
		return nil, apperrors.NotFound("election not found")
	}
	out := make([]models.Candidate, len(list))
	copy(out, list)
	return out, nil
}

func (s *Store) IncrementVoteCount(_ context.Context, electionID, candidateID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incrementVoteCountLocked(electionID, candidateID)
}

func (s *Store) incrementVoteCountLocked(electionID, candidateID uint) error {
	list := s.candidates[electionID]
	for i := range list {
		if list[i].ID == candidateID {
			list[i].VoteCount++
			return nil
		}
	}
	return apperrors.NotFound("candidate not found")
}

// --- VoterStore ---

func (s *Store) RegisterVoter(_ context.Context, v *models.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := v.Key()
	if _, ok := s.voters[key]; ok {
		return apperrors.Conflict("voter already registered for this election")
	}
	sk := studentKey{ElectionID: v.ElectionID, StudentID: v.StudentID}
	if _, ok := s.students[sk]; ok {
		return apperrors.Conflict("student id already registered for this election")
	}
	s.voters[key] = *v
	s.students[sk] = v.Address
	return nil
}

func (s *Store) GetVoter(_ context.Context, electionID uint, address string) (*models.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.voters[models.VoterKey{ElectionID: electionID, Address: address}]
	if !ok {
		return nil, apperrors.NotFound("voter not found")
	}
	return &v, nil
}

func (s *Store) HasVoted(_ context.Context, electionID uint, address string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.voters[models.VoterKey{ElectionID: electionID, Address: address}]
	if !ok {
		return false, nil
	}
	return v.HasVoted, nil
}

func (s *Store) MarkVoted(_ context.Context, electionID uint, address string, candidateID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markVotedLocked(electionID, address, candidateID)
}

func (s *Store) markVotedLocked(electionID uint, address string, candidateID uint) error {
	key := models.VoterKey{ElectionID: electionID, Address: address}
	v, ok := s.voters[key]
	if !ok || !v.IsRegistered {
		return apperrors.State("not registered")
	}
	if v.HasVoted {
		return apperrors.State("already voted")
	}
	v.HasVoted = true
	v.VotedCandidateID = candidateID
	s.voters[key] = v
	return nil
}

// --- VoteLedger ---

func (s *Store) AppendVote(_ context.Context, v *models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendVoteLocked(v)
	return nil
}

func (s *Store) appendVoteLocked(v *models.Vote) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	s.votes = append(s.votes, *v)
}

func (s *Store) CountVotes(_ context.Context, electionID uint) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n uint64
	for _, v := range s.votes {
		if v.ElectionID == electionID {
			n++
		}
	}
	return n, nil
}

func (s *Store) CountVotesForCandidate(_ context.Context, electionID, candidateID uint) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n uint64
	for _, v := range s.votes {
		if v.ElectionID == electionID && v.CandidateID == candidateID {
			n++
		}
	}
	return n, nil
}
