// Description: Defines the User model and password helpers.
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPhoto is the placeholder photo reference used when no image has
// been uploaded. It is never deleted from disk.
const DefaultPhoto = "no-photo.jpg"

type Role string

const (
	RoleVoter Role = "voter"
	RoleAdmin Role = "admin"
)

type UserStatus string

const (
	StatusPending  UserStatus = "Pending"
	StatusVerified UserStatus = "Verified"
)

type User struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	Username   string     `json:"username" gorm:"uniqueIndex;not null"`
	Email      string     `json:"email" gorm:"uniqueIndex;not null"`
	Password   string     `json:"-" gorm:"not null"`
	Mobile     string     `json:"mobile" gorm:"not null"`
	NationalID string     `json:"nationalId" gorm:"uniqueIndex;not null"`
	DOB        string     `json:"dob" gorm:"not null"`
	Photo      string     `json:"photo" gorm:"default:no-photo.jpg"`
	Role       Role       `json:"role" gorm:"type:varchar(10);default:voter"`
	Status     UserStatus `json:"status" gorm:"type:varchar(10);default:Pending"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	Votes []Vote `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// HashPassword bcrypt-hashes a plaintext password for storage. Passwords
// are always rehashed on write, never stored or compared in plaintext.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// MatchPassword reports whether the supplied plaintext password matches
// the stored hash.
func (u *User) MatchPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
