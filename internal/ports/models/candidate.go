package models

// Candidate runs in exactly one election. IDs are per-election
// sequences starting at 1; the (election_id, id) pair is the identity.
// VoteCount is denormalized from the vote ledger.
type Candidate struct {
	ElectionID uint   `gorm:"primaryKey;autoIncrement:false;column:election_id" json:"electionId"`
	ID         uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name       string `gorm:"column:name;size:255;not null" json:"name"`
	Position   string `gorm:"column:position;size:255;not null" json:"position"`
	Manifesto  string `gorm:"column:manifesto;type:text;not null" json:"manifesto"`
	VoteCount  uint64 `gorm:"column:vote_count;not null;default:0" json:"voteCount"`
	IsActive   bool   `gorm:"column:is_active;not null;default:true" json:"isActive"`
}

// TableName specifies the table name for Candidate
func (Candidate) TableName() string {
	return "candidates"
}

// AddCandidateRequest defines the input for adding a candidate
type AddCandidateRequest struct {
	Name      string `json:"name" binding:"required"`
	Position  string `json:"position" binding:"required"`
	Manifesto string `json:"manifesto" binding:"required"`
}

// CandidateResult is a candidate with its share of the total vote,
// formatted to two decimal places. Only computed when the election has
// votes.
type CandidateResult struct {
	Candidate
	Percentage string `json:"percentage"`
}

// ElectionResults is the derived, read-only tally view: candidates
// ordered by vote count descending (ties by ascending candidate id).
type ElectionResults struct {
	ElectionID uint              `json:"electionId"`
	Candidates []CandidateResult `json:"candidates"`
	TotalVotes uint64            `json:"totalVotes"`
	HasVotes   bool              `json:"hasVotes"`
}
