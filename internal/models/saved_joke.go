package models

import (
	"time"
)

// SavedJoke is a user's saved-for-later joke, toggled the same way as Like.
type SavedJoke struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_saved_user_joke" json:"user_id"`
	JokeID    uint      `gorm:"not null;index;uniqueIndex:idx_saved_user_joke" json:"joke_id"`
	Joke      Joke      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"joke"`
	CreatedAt time.Time `json:"created_at"`
}
