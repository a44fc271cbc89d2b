package model

import "time"

// User represents a registered account. Users are never deleted; after
// creation the only mutation is replacing the password hash.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:20;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:60;not null"`
	PasswordHash string    `json:"-" gorm:"size:60;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Contacts []Contact `json:"contacts,omitempty" gorm:"foreignKey:UserID"`
}
