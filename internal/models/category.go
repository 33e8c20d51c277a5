package models

import (
	"time"
)

type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Slug         string    `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"` // emoji
	DisplayOrder int       `gorm:"default:0;index" json:"display_order"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
