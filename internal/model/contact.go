package model

import (
	"time"

	"gorm.io/gorm"
)

// Contact is an address-book entry owned by exactly one user.
// UserID is set at creation and never changes afterwards.
type Contact struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"size:30;not null"`
	LastName  string    `json:"last_name" gorm:"size:30"`
	Email     string    `json:"email" gorm:"size:60;not null"`
	Number    int64     `json:"number" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`

	Owner User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate pins the creation timestamp to UTC.
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return nil
}
