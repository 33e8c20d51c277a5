package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeJokeApproved NotificationType = "joke_approved"
	NotificationTypeJokeRejected NotificationType = "joke_rejected"
	NotificationTypeJokeRemoved  NotificationType = "joke_removed"
	NotificationTypeCommentJoke  NotificationType = "comment_joke"
	NotificationTypeReplyComment NotificationType = "reply_comment"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"` // Receiver
	User      User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ActorID   *uint            `gorm:"index" json:"actor_id"` // Sender, nil for system notices
	Actor     *User            `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"actor,omitempty"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message   string           `gorm:"type:text" json:"message"`
	Link      string           `json:"link"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
