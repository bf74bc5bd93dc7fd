package models

import "time"

// Vote is one ballot. The composite unique index on (UserID, ElectionID)
// is what enforces one vote per voter per election; a concurrent double
// cast loses the insert race at the database and surfaces as a duplicate
// key error.
type Vote struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UserID      uint      `json:"userId" gorm:"not null;uniqueIndex:idx_votes_user_election"`
	ElectionID  uint      `json:"electionId" gorm:"not null;uniqueIndex:idx_votes_user_election"`
	CandidateID uint      `json:"candidateId" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	User      *User      `json:"user,omitempty"`
	Election  *Election  `json:"election,omitempty"`
	Candidate *Candidate `json:"candidate,omitempty"`
}
