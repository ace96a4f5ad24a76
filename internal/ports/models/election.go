package models

// ElectionStatus is the derived four-way lifecycle status of an election.
type ElectionStatus string

const (
	StatusUpcoming ElectionStatus = "Upcoming"
	StatusActive   ElectionStatus = "Active"
	StatusExpired  ElectionStatus = "Expired"
	StatusEnded    ElectionStatus = "Ended"
)

// Election is a time-boxed ballot with candidates and a vote tally.
// TotalVotes is a denormalized counter maintained alongside vote-ledger
// appends; the ledger stays the source of truth.
type Election struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"column:title;size:255;not null" json:"title"`
	Description string `gorm:"column:description;type:text;not null" json:"description"`
	StartTime   int64  `gorm:"column:start_time;not null" json:"startTime"`
	EndTime     int64  `gorm:"column:end_time;not null" json:"endTime"`
	IsActive    bool   `gorm:"column:is_active;not null;default:true" json:"isActive"`
	TotalVotes  uint64 `gorm:"column:total_votes;not null;default:0" json:"totalVotes"`
}

// TableName specifies the table name for Election
func (Election) TableName() string {
	return "elections"
}

// StatusAt derives the presentational status of the election at the
// given unix time. "Active" is the only status in which votes are
// accepted. An ended election stays Ended regardless of time.
func (e *Election) StatusAt(now int64) ElectionStatus {
	if !e.IsActive {
		return StatusEnded
	}
	if now < e.StartTime {
		return StatusUpcoming
	}
	if now > e.EndTime {
		return StatusExpired
	}
	return StatusActive
}

// CreateElectionRequest defines the input for creating an election
type CreateElectionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	StartTime   int64  `json:"startTime" binding:"required"`
	EndTime     int64  `json:"endTime" binding:"required"`
}

// ElectionWithStats is the list view of an election: the record plus
// its derived status and candidate count.
type ElectionWithStats struct {
	Election
	Status         ElectionStatus `json:"status"`
	CandidateCount int            `json:"candidateCount"`
}
