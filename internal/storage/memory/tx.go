package memory

import (
	"context"

	"election-service/internal/ports"
	"election-service/internal/ports/models"
)

// txView applies vote-commit updates directly to the parent store while
// the store mutex is held, recording an undo step per update. Holding
// the write lock across the whole commit makes it a single
// linearization point for readers.
type txView struct {
	store *Store
	undo  []func()
}

// RunInTx implements ports.TxRunner. On error every applied update is
// reverted in reverse order before the lock is released, so no partial
// commit is ever observable.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx ports.VoteTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txView{store: s}
	if err := fn(ctx, tx); err != nil {
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		return err
	}
	return nil
}

func (t *txView) AppendVote(_ context.Context, v *models.Vote) error {
	t.store.appendVoteLocked(v)
	t.undo = append(t.undo, func() {
		t.store.votes = t.store.votes[:len(t.store.votes)-1]
	})
	return nil
}

func (t *txView) IncrementVoteCount(_ context.Context, electionID, candidateID uint) error {
	if err := t.store.incrementVoteCountLocked(electionID, candidateID); err != nil {
		return err
	}
	t.undo = append(t.undo, func() {
		list := t.store.candidates[electionID]
		for i := range list {
			if list[i].ID == candidateID {
				list[i].VoteCount--
				return
			}
		}
	})
	return nil
}

func (t *txView) IncrementTotalVotes(_ context.Context, electionID uint) error {
	if err := t.store.incrementTotalVotesLocked(electionID); err != nil {
		return err
	}
	t.undo = append(t.undo, func() {
		e := t.store.elections[electionID]
		e.TotalVotes--
		t.store.elections[electionID] = e
	})
	return nil
}

func (t *txView) MarkVoted(_ context.Context, electionID uint, address string, candidateID uint) error {
	key := models.VoterKey{ElectionID: electionID, Address: address}
	prev, ok := t.store.voters[key]
	if err := t.store.markVotedLocked(electionID, address, candidateID); err != nil {
		return err
	}
	t.undo = append(t.undo, func() {
		if ok {
			t.store.voters[key] = prev
		}
	})
	return nil
}
