package models

import (
	"html/template"
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JokeID    uint      `gorm:"not null;index" json:"joke_id"`
	Joke      Joke      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ParentID  *uint     `gorm:"index" json:"parent_id"` // nil for top-level comments; replies never nest further
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsEdited  bool      `gorm:"default:false" json:"is_edited"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Not stored; filled by the listing query
	Replies     []Comment     `gorm:"-" json:"replies,omitempty"`
	ContentHTML template.HTML `gorm:"-" json:"content_html,omitempty"`
}
