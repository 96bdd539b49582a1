package models

import "time"

// Subscriber is a landing-page email signup.
type Subscriber struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the GORM table name.
func (Subscriber) TableName() string {
	return "subscribers"
}
