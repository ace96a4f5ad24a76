package models

// VoterKey identifies a registration record by its compound key. The
// voter address is an opaque, externally authenticated identifier; the
// engine never interprets it.
type VoterKey struct {
	ElectionID uint
	Address    string
}

// Voter is a registration record. A distinct student id may register at
// most once per election, under any address. HasVoted only ever moves
// false to true, and VotedCandidateID is set at the same transition
// (0 means none).
type Voter struct {
	ElectionID       uint   `gorm:"primaryKey;autoIncrement:false;column:election_id;uniqueIndex:idx_voters_election_student,priority:1" json:"electionId"`
	Address          string `gorm:"primaryKey;column:address;size:128" json:"address"`
	StudentID        string `gorm:"column:student_id;size:16;not null;uniqueIndex:idx_voters_election_student,priority:2" json:"studentId"`
	IsRegistered     bool   `gorm:"column:is_registered;not null;default:true" json:"isRegistered"`
	HasVoted         bool   `gorm:"column:has_voted;not null;default:false" json:"hasVoted"`
	VotedCandidateID uint   `gorm:"column:voted_candidate_id;not null;default:0" json:"votedCandidateId"`
	RegistrationTime int64  `gorm:"column:registration_time;not null" json:"registrationTime"`
}

// TableName specifies the table name for Voter
func (Voter) TableName() string {
	return "voters"
}

// Key returns the compound registration key for this record.
func (v *Voter) Key() VoterKey {
	return VoterKey{ElectionID: v.ElectionID, Address: v.Address}
}

// RegisterVoterRequest defines the input for registering a voter. The
// voter address comes from the transport layer, not the body.
type RegisterVoterRequest struct {
	ElectionID uint   `json:"electionId" binding:"required"`
	StudentID  string `json:"studentId" binding:"required"`
}
