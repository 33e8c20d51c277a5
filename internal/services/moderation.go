package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"jokehub/internal/db"
	"jokehub/internal/models"

	"gorm.io/gorm"
)

const (
	minTitleLen   = 5
	minContentLen = 20

	defaultRejectionReason = "Nội dung không phù hợp với quy định của cộng đồng."
)

// SubmitJoke validates input and creates a pending joke. Validation
// failures surface as ValidationError and write nothing.
func SubmitJoke(title, content string, categoryID, authorID uint) (*models.Joke, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if utf8.RuneCountInString(title) < minTitleLen {
		return nil, &ValidationError{Field: "title", Message: "title must be at least 5 characters"}
	}
	if utf8.RuneCountInString(content) < minContentLen {
		return nil, &ValidationError{Field: "content", Message: "content must be at least 20 characters"}
	}
	if categoryID == 0 {
		return nil, &ValidationError{Field: "category_id", Message: "category is required"}
	}

	var category models.Category
	err := db.DB.First(&category, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &ValidationError{Field: "category_id", Message: "unknown category"}
	}
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, &ValidationError{Field: "category_id", Message: "category is not accepting submissions"}
	}

	joke := models.Joke{
		Title:      title,
		Content:    content,
		CategoryID: &categoryID,
		AuthorID:   &authorID,
		Status:     models.StatusPending,
	}
	if err := db.DB.Create(&joke).Error; err != nil {
		return nil, err
	}

	return reloadJoke(joke.ID)
}

// ApproveJoke moves a joke to approved and stamps the review metadata.
// Re-approving is a state no-op but still refreshes reviewer and time.
func ApproveJoke(jokeID uint, reviewer *models.User) (*models.Joke, error) {
	return review(jokeID, reviewer, models.StatusApproved, "")
}

// RejectJoke moves a joke to rejected. An empty reason gets the generic
// default so the author always sees something.
func RejectJoke(jokeID uint, reviewer *models.User, reason string) (*models.Joke, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultRejectionReason
	}
	return review(jokeID, reviewer, models.StatusRejected, reason)
}

func review(jokeID uint, reviewer *models.User, status, reason string) (*models.Joke, error) {
	if reviewer == nil || !reviewer.IsAdmin {
		return nil, ErrNotAuthorized
	}

	var joke models.Joke
	err := db.DB.First(&joke, jokeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "joke", ID: jokeID}
	}
	if err != nil {
		return nil, err
	}

	// Review metadata is replaced wholesale: approving after a reject
	// clears the old reason, rejecting after an approve overwrites the
	// reviewer and timestamp.
	updates := map[string]interface{}{
		"status":           status,
		"reviewed_by":      reviewer.ID,
		"reviewed_at":      time.Now(),
		"rejection_reason": reason,
	}
	if err := db.DB.Model(&joke).Updates(updates).Error; err != nil {
		return nil, err
	}

	notifyReview(&joke, reviewer, status, reason)

	return reloadJoke(jokeID)
}

// JokeUpdate lists exactly the fields an admin edit may change. Status
// and review metadata are deliberately not here: correcting content
// does not reset moderation state.
type JokeUpdate struct {
	Title      *string
	Content    *string
	CategoryID *uint
}

// EditJoke applies an admin content correction without touching the
// moderation state.
func EditJoke(jokeID uint, reviewer *models.User, upd JokeUpdate) (*models.Joke, error) {
	if reviewer == nil || !reviewer.IsAdmin {
		return nil, ErrNotAuthorized
	}

	updates := map[string]interface{}{}
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if utf8.RuneCountInString(title) < minTitleLen {
			return nil, &ValidationError{Field: "title", Message: "title must be at least 5 characters"}
		}
		updates["title"] = title
	}
	if upd.Content != nil {
		content := strings.TrimSpace(*upd.Content)
		if utf8.RuneCountInString(content) < minContentLen {
			return nil, &ValidationError{Field: "content", Message: "content must be at least 20 characters"}
		}
		updates["content"] = content
	}
	if upd.CategoryID != nil {
		var category models.Category
		err := db.DB.First(&category, *upd.CategoryID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Field: "category_id", Message: "unknown category"}
		}
		if err != nil {
			return nil, err
		}
		updates["category_id"] = *upd.CategoryID
	}

	var joke models.Joke
	err := db.DB.First(&joke, jokeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "joke", ID: jokeID}
	}
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&joke).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return reloadJoke(jokeID)
}

// DeleteJoke removes a joke entirely. Admin only; the author gets a
// notice so the disappearance is not silent.
func DeleteJoke(jokeID uint, reviewer *models.User) error {
	if reviewer == nil || !reviewer.IsAdmin {
		return ErrNotAuthorized
	}

	var joke models.Joke
	err := db.DB.First(&joke, jokeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: "joke", ID: jokeID}
	}
	if err != nil {
		return err
	}

	if joke.AuthorID != nil && *joke.AuthorID != reviewer.ID {
		notification := models.Notification{
			UserID:  *joke.AuthorID,
			Type:    models.NotificationTypeJokeRemoved,
			Message: "Truyện \"" + joke.Title + "\" đã bị quản trị viên gỡ bỏ.",
		}
		db.DB.Create(&notification)
	}

	return db.DB.Unscoped().Delete(&joke).Error
}

func reloadJoke(id uint) (*models.Joke, error) {
	var joke models.Joke
	err := db.DB.Preload("Category").Preload("Author").Preload("Reviewer").First(&joke, id).Error
	if err != nil {
		return nil, err
	}
	return &joke, nil
}
