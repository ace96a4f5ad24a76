package models

// Vote is one accepted ballot in the append-only vote ledger. Records
// are never updated or removed; all counters derive from them.
type Vote struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	ElectionID   uint   `gorm:"column:election_id;not null;index" json:"electionId"`
	CandidateID  uint   `gorm:"column:candidate_id;not null;index" json:"candidateId"`
	VoterAddress string `gorm:"column:voter_address;size:128;not null" json:"voterAddress"`
	CastAt       int64  `gorm:"column:cast_at;not null" json:"castAt"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}

// CastVoteRequest defines the input for casting a vote. The voter
// address comes from the transport layer, not the body.
type CastVoteRequest struct {
	ElectionID  uint `json:"electionId" binding:"required"`
	CandidateID uint `json:"candidateId" binding:"required"`
}
