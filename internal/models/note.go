package models

import "time"

// Note is a personal text note owned by exactly one user.
type Note struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Title     string    `json:"title" gorm:"type:text;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	IsPinned  bool      `json:"isPinned" gorm:"not null;default:false"`
	UserID    string    `json:"userId" gorm:"index;type:varchar(36);not null"`
	CreatedOn time.Time `json:"createdOn" gorm:"autoCreateTime"`
	// Seq orders notes created within the same timestamp precision.
	Seq       int64     `json:"-" gorm:"index;not null;default:0"`
}
