package models

import "time"

type Candidate struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	FullName   string    `json:"fullName" gorm:"not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Photo      string    `json:"photo" gorm:"default:no-photo.jpg"`
	Bio        string    `json:"bio" gorm:"type:text"`
	ElectionID uint      `json:"electionId" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Election *Election `json:"election,omitempty"`
	Votes    []Vote    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
