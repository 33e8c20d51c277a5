package models

import (
	"time"
)

const (
	ReportStatusPending  = "pending"
	ReportStatusResolved = "resolved"
)

type Report struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	JokeID      uint       `gorm:"not null;index" json:"joke_id"`
	Joke        Joke       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"joke"`
	UserID      uint       `gorm:"not null;index" json:"user_id"` // Reporter
	User        User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Reason      string     `gorm:"size:200;not null" json:"reason"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:20;default:'pending';index" json:"status"`
	ReviewedBy  *uint      `json:"reviewed_by"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
