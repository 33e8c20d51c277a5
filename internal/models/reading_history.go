package models

import (
	"time"
)

// ReadingHistory records when a signed-in user last opened a joke.
// Upserted on the (user_id, joke_id) key, so one row per pair.
type ReadingHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_read_user_joke" json:"user_id"`
	JokeID     uint      `gorm:"not null;index;uniqueIndex:idx_read_user_joke" json:"joke_id"`
	LastReadAt time.Time `gorm:"not null" json:"last_read_at"`
}
