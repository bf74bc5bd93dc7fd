package models

import "time"

type ElectionStatus string

const (
	ElectionUpcoming  ElectionStatus = "Upcoming"
	ElectionActive    ElectionStatus = "Active"
	ElectionCompleted ElectionStatus = "Completed"
)

type Election struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Name      string         `json:"name" gorm:"not null"`
	Position  string         `json:"position" gorm:"not null"`
	StartDate time.Time      `json:"startDate" gorm:"not null"`
	EndDate   time.Time      `json:"endDate" gorm:"not null"`
	Status    ElectionStatus `json:"status" gorm:"type:varchar(10);default:Upcoming"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`

	Candidates []Candidate `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Votes      []Vote      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// StatusAt derives the election status from its date range. The stored
// column is never authoritative; it is recomputed on every read. Both
// boundary instants count as Active.
func (e *Election) StatusAt(now time.Time) ElectionStatus {
	switch {
	case now.After(e.EndDate):
		return ElectionCompleted
	case !now.Before(e.StartDate):
		return ElectionActive
	default:
		return ElectionUpcoming
	}
}

// ActiveAt reports whether votes may be cast at the given instant.
func (e *Election) ActiveAt(now time.Time) bool {
	return e.StatusAt(now) == ElectionActive
}
