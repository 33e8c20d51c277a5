package models

import (
	"time"
)

// Like marks that a user liked a joke. Presence of the row is the
// relation; the unique index makes racing double-inserts fail cleanly.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_like_user_joke" json:"user_id"`
	JokeID    uint      `gorm:"not null;index;uniqueIndex:idx_like_user_joke" json:"joke_id"`
	Joke      Joke      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"joke"`
	CreatedAt time.Time `json:"created_at"`
}
