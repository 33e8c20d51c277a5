package services

import (
	"fmt"
	"log"

	"jokehub/internal/db"
	"jokehub/internal/models"
)

// Notifications are best-effort: a failure to record one never fails
// the operation that triggered it.

func notifyReview(joke *models.Joke, reviewer *models.User, status, reason string) {
	if joke.AuthorID == nil || *joke.AuthorID == reviewer.ID {
		return
	}

	notification := models.Notification{
		UserID:  *joke.AuthorID,
		ActorID: &reviewer.ID,
		Link:    fmt.Sprintf("/jokes/%d", joke.ID),
	}
	switch status {
	case models.StatusApproved:
		notification.Type = models.NotificationTypeJokeApproved
		notification.Message = "Truyện \"" + joke.Title + "\" của bạn đã được duyệt."
	case models.StatusRejected:
		notification.Type = models.NotificationTypeJokeRejected
		notification.Message = "Truyện \"" + joke.Title + "\" của bạn đã bị từ chối: " + reason
	default:
		return
	}

	if err := db.DB.Create(&notification).Error; err != nil {
		log.Printf("Failed to create review notification for joke %d: %v", joke.ID, err)
	}
}

func notifyComment(joke *models.Joke, comment *models.Comment) {
	link := fmt.Sprintf("/jokes/%d#comment-%d", joke.ID, comment.ID)

	if comment.ParentID != nil {
		// Reply: tell the parent comment's author, nobody else.
		var parent models.Comment
		if err := db.DB.First(&parent, *comment.ParentID).Error; err != nil {
			return
		}
		if parent.UserID == comment.UserID {
			return
		}
		notification := models.Notification{
			UserID:  parent.UserID,
			ActorID: &comment.UserID,
			Type:    models.NotificationTypeReplyComment,
			Message: "Có người trả lời bình luận của bạn trong \"" + joke.Title + "\".",
			Link:    link,
		}
		if err := db.DB.Create(&notification).Error; err != nil {
			log.Printf("Failed to create reply notification for comment %d: %v", comment.ID, err)
		}
		return
	}

	if joke.AuthorID == nil || *joke.AuthorID == comment.UserID {
		return
	}
	notification := models.Notification{
		UserID:  *joke.AuthorID,
		ActorID: &comment.UserID,
		Type:    models.NotificationTypeCommentJoke,
		Message: "Có bình luận mới trong truyện \"" + joke.Title + "\" của bạn.",
		Link:    link,
	}
	if err := db.DB.Create(&notification).Error; err != nil {
		log.Printf("Failed to create comment notification for joke %d: %v", joke.ID, err)
	}
}
