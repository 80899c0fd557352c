package models

import "time"

// User represents an account holder of the notes application.
type User struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	FullName  string    `json:"fullName" gorm:"type:varchar(255);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	CreatedOn time.Time `json:"createdOn" gorm:"autoCreateTime"`
}

// Profile is the public projection of a user returned by the profile route.
type Profile struct {
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	ID        string    `json:"_id"`
	CreatedOn time.Time `json:"createdOn"`
}

// Profile returns the user's public fields.
func (u *User) Profile() Profile {
	return Profile{
		FullName:  u.FullName,
		Email:     u.Email,
		ID:        u.ID,
		CreatedOn: u.CreatedOn,
	}
}
