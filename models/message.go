package models

import "time"

// Message is a contact-form submission. Write-once: nothing ever updates
// or deletes one through the API.
type Message struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Subject   string    `json:"subject" gorm:"not null"`
	Body      string    `json:"message" gorm:"column:message;type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
