package postgres

import (
	"context"
	"errors"

	"election-service/internal/ports"
	"election-service/internal/ports/models"
	"election-service/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
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

func (s *Store) CreateElection(ctx context.Context, e *models.Election) error {
	// The primary key sequence assigns the election id; the candidate
	// list needs no initialization here, unknown elections are detected
	// against the elections table.
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *Store) GetElection(ctx context.Context, id uint) (*models.Election, error) {
	var e models.Election
	err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("election not found")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) ListElections(ctx context.Context) ([]models.Election, error) {
	var elections []models.Election
	err := s.db.WithContext(ctx).Order("id asc").Find(&elections).Error
	return elections, err
}

func (s *Store) DeactivateElection(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Election{}).
		Where("id = ?", id).
		UpdateColumn("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("election not found")
	}
	return nil
}

func (s *Store) IncrementTotalVotes(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Election{}).
		Where("id = ?", id).
		UpdateColumn("total_votes", gorm.Expr("total_votes + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("election not found")
	}
	return nil
}

// --- CandidateStore ---

func (s *Store) AddCandidate(ctx context.Context, c *models.Candidate) error {
	if _, err := s.GetElection(ctx, c.ElectionID); err != nil {
		return err
	}

	// The engine's per-election lock serializes adds, so the max+1
	// read is not racy within a single process.
	var maxID uint
	err := s.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("election_id = ?", c.ElectionID).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error
	if err != nil {
		return err
	}
	c.ID = maxID + 1
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *Store) GetCandidate(ctx context.Context, electionID, candidateID uint) (*models.Candidate, error) {
	var c models.Candidate
	err := s.db.WithContext(ctx).
		First(&c, "election_id = ? AND id = ?", electionID, candidateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("candidate not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCandidates(ctx context.Context, electionID uint) ([]models.Candidate, error) {
	if _, err := s.GetElection(ctx, electionID); err != nil {
		return nil, err
	}
	candidates := []models.Candidate{}
	err := s.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("id asc").
		Find(&candidates).Error
	return candidates, err
}

func (s *Store) IncrementVoteCount(ctx context.Context, electionID, candidateID uint) error {
	res := s.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("election_id = ? AND id = ?", electionID, candidateID).
		UpdateColumn("vote_count", gorm.Expr("vote_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("candidate not found")
	}
	return nil
}

// --- VoterStore ---

func (s *Store) RegisterVoter(ctx context.Context, v *models.Voter) error {
	err := s.db.WithContext(ctx).Create(v).Error
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if pgErr.ConstraintName == "idx_voters_election_student" {
			return apperrors.Conflict("student id already registered for this election")
		}
		return apperrors.Conflict("voter already registered for this election")
	}
	return err
}

func (s *Store) GetVoter(ctx context.Context, electionID uint, address string) (*models.Voter, error) {
	var v models.Voter
	err := s.db.WithContext(ctx).
		First(&v, "election_id = ? AND address = ?", electionID, address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("voter not found")
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) HasVoted(ctx context.Context, electionID uint, address string) (bool, error) {
	v, err := s.GetVoter(ctx, electionID, address)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v.HasVoted, nil
}

func (s *Store) MarkVoted(ctx context.Context, electionID uint, address string, candidateID uint) error {
	v, err := s.GetVoter(ctx, electionID, address)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return apperrors.State("not registered")
	}
	if err != nil {
		return err
	}
	if !v.IsRegistered {
		return apperrors.State("not registered")
	}
	if v.HasVoted {
		return apperrors.State("already voted")
	}

	res := s.db.WithContext(ctx).Model(&models.Voter{}).
		Where("election_id = ? AND address = ? AND has_voted = ?", electionID, address, false).
		UpdateColumns(map[string]interface{}{
			"has_voted":          true,
			"voted_candidate_id": candidateID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.State("already voted")
	}
	return nil
}

// --- VoteLedger ---

func (s *Store) AppendVote(ctx context.Context, v *models.Vote) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(v).Error
}

func (s *Store) CountVotes(ctx context.Context, electionID uint) (uint64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Where("election_id = ?", electionID).
		Count(&n).Error
	return uint64(n), err
}

func (s *Store) CountVotesForCandidate(ctx context.Context, electionID, candidateID uint) (uint64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Where("election_id = ? AND candidate_id = ?", electionID, candidateID).
		Count(&n).Error
	return uint64(n), err
}

// RunInTx implements ports.TxRunner on a database transaction; a
// failure inside fn rolls the whole commit back.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx ports.VoteTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &Store{db: tx})
	})
}
