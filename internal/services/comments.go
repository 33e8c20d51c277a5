package services

import (
	"errors"
	"strings"

	"jokehub/internal/db"
	"jokehub/internal/models"

	"gorm.io/gorm"
)

// ListComments returns the top-level comments of a joke, newest first,
// each carrying its replies oldest first. Nesting is exactly one level
// deep, so the replies are fetched with a single batched query.
func ListComments(jokeID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.DB.Preload("User").
		Where("joke_id = ? AND parent_id IS NULL", jokeID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return comments, nil
	}

	parentIDs := make([]uint, len(comments))
	for i, comment := range comments {
		parentIDs[i] = comment.ID
	}

	var replies []models.Comment
	err = db.DB.Preload("User").
		Where("parent_id IN ?", parentIDs).
		Order("created_at ASC, id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}

	byParent := make(map[uint][]models.Comment)
	for _, reply := range replies {
		byParent[*reply.ParentID] = append(byParent[*reply.ParentID], reply)
	}
	for i := range comments {
		comments[i].Replies = byParent[comments[i].ID]
	}

	return comments, nil
}

// CreateComment adds a comment or a one-level reply and bumps the
// joke's comment counter.
func CreateComment(jokeID, userID uint, content string, parentID *uint) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{Field: "content", Message: "content is required"}
	}

	var joke models.Joke
	err := db.DB.First(&joke, jokeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "joke", ID: jokeID}
	}
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		var parent models.Comment
		err := db.DB.First(&parent, *parentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Field: "parent_id", Message: "unknown parent comment"}
		}
		if err != nil {
			return nil, err
		}
		if parent.JokeID != jokeID {
			return nil, &ValidationError{Field: "parent_id", Message: "parent comment belongs to another joke"}
		}
		if parent.ParentID != nil {
			return nil, &ValidationError{Field: "parent_id", Message: "replies cannot be nested further"}
		}
	}

	comment := models.Comment{
		JokeID:   jokeID,
		UserID:   userID,
		Content:  content,
		ParentID: parentID,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := adjustJokeCounter(jokeID, "comment_count", 1); err != nil {
		return nil, err
	}

	notifyComment(&joke, &comment)

	if err := db.DB.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment lets the author revise their comment. The edit is
// flagged so readers can tell the content changed.
func UpdateComment(commentID, userID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{Field: "content", Message: "content is required"}
	}

	var comment models.Comment
	err := db.DB.First(&comment, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "comment", ID: commentID}
	}
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrNotAuthorized
	}

	updates := map[string]interface{}{
		"content":   content,
		"is_edited": true,
	}
	if err := db.DB.Model(&comment).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := db.DB.Preload("User").First(&comment, commentID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment and its direct replies. Authors may
// delete their own comments; admins may delete any.
func DeleteComment(commentID uint, actor *models.User) error {
	var comment models.Comment
	err := db.DB.First(&comment, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: "comment", ID: commentID}
	}
	if err != nil {
		return err
	}

	if actor == nil || (comment.UserID != actor.ID && !actor.IsAdmin) {
		return ErrNotAuthorized
	}

	removed := int64(1)
	if comment.ParentID == nil {
		result := db.DB.Where("parent_id = ?", commentID).Delete(&models.Comment{})
		if result.Error != nil {
			return result.Error
		}
		removed += result.RowsAffected
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		return err
	}

	return adjustJokeCounter(comment.JokeID, "comment_count", -int(removed))
}
