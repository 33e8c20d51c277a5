package models

import (
	"html/template"
	"time"
)

// Joke statuses. A joke is created pending and becomes publicly visible
// only once a reviewer approves it.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Joke struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`
	AuthorID   *uint     `gorm:"index" json:"author_id"` // nil means the author account is gone; render as anonymous
	Author     *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"author,omitempty"`

	Status          string     `gorm:"size:10;default:'pending';not null;index" json:"status"`
	ReviewedBy      *uint      `json:"reviewed_by"`
	Reviewer        *User      `gorm:"foreignKey:ReviewedBy;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"reviewer,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	RejectionReason string     `json:"rejection_reason"`

	ViewCount    int  `gorm:"default:0" json:"view_count"`
	LikeCount    int  `gorm:"default:0" json:"like_count"`
	CommentCount int  `gorm:"default:0" json:"comment_count"`
	SaveCount    int  `gorm:"default:0" json:"save_count"`
	IsFeatured   bool `gorm:"default:false;index" json:"is_featured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Not stored; filled per request for the current viewer
	IsLiked     bool          `gorm:"-" json:"is_liked,omitempty"`
	IsSaved     bool          `gorm:"-" json:"is_saved,omitempty"`
	ContentHTML template.HTML `gorm:"-" json:"content_html,omitempty"`
}
