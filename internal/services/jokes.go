package services

import (
	"errors"
	"strings"
	"time"

	"jokehub/internal/db"
	"jokehub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JokeFilters narrows a joke listing. Nil/zero fields are ignored.
// An empty Status means the public-visibility default: approved only.
type JokeFilters struct {
	CategoryID *uint
	Status     string
	AuthorID   *uint
	IsFeatured *bool
	Search     string
}

func applyJokeFilters(tx *gorm.DB, f JokeFilters) *gorm.DB {
	if f.CategoryID != nil {
		tx = tx.Where("category_id = ?", *f.CategoryID)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	} else {
		tx = tx.Where("status = ?", models.StatusApproved)
	}
	if f.AuthorID != nil {
		tx = tx.Where("author_id = ?", *f.AuthorID)
	}
	if f.IsFeatured != nil {
		tx = tx.Where("is_featured = ?", *f.IsFeatured)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}
	return tx
}

// ListJokes returns one page of matching jokes, newest first, plus the
// total match count across all pages. Page numbers are 1-based; a page
// past the end yields an empty slice, not an error.
func ListJokes(f JokeFilters, page, limit int) ([]models.Joke, int64, error) {
	if limit <= 0 {
		return nil, 0, &ValidationError{Field: "limit", Message: "page size must be positive"}
	}
	if page < 1 {
		return nil, 0, &ValidationError{Field: "page", Message: "pages are numbered from 1"}
	}

	var total int64
	if err := applyJokeFilters(db.DB.Model(&models.Joke{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jokes []models.Joke
	err := applyJokeFilters(db.DB, f).
		Preload("Category").Preload("Author").Preload("Reviewer").
		Order("created_at DESC, id DESC"). // id breaks timestamp ties so pagination stays stable
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&jokes).Error
	if err != nil {
		return nil, 0, err
	}
	return jokes, total, nil
}

// GetJoke fetches one joke with its relations and counts the visit.
// Non-approved jokes are visible only to their author and to admins;
// everyone else gets the same not-found as for a missing id, so the
// response does not leak that a submission exists. The view counter is
// bumped with a single atomic UPDATE expression so concurrent viewers
// never lose increments; only approved jokes count visits. When a
// viewer is supplied their like/save state is resolved as well.
func GetJoke(id uint, viewer *models.User) (*models.Joke, error) {
	var joke models.Joke
	err := db.DB.Preload("Category").Preload("Author").Preload("Reviewer").First(&joke, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "joke", ID: id}
	}
	if err != nil {
		return nil, err
	}

	if joke.Status != models.StatusApproved && !canSeeUnapproved(&joke, viewer) {
		return nil, &NotFoundError{Entity: "joke", ID: id}
	}

	if joke.Status == models.StatusApproved {
		if err := db.DB.Model(&models.Joke{}).Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
			return nil, err
		}
		joke.ViewCount++
	}

	if viewer != nil {
		var like models.Like
		if err := db.DB.Where("user_id = ? AND joke_id = ?", viewer.ID, id).First(&like).Error; err == nil {
			joke.IsLiked = true
		}
		var saved models.SavedJoke
		if err := db.DB.Where("user_id = ? AND joke_id = ?", viewer.ID, id).First(&saved).Error; err == nil {
			joke.IsSaved = true
		}
	}

	return &joke, nil
}

func canSeeUnapproved(joke *models.Joke, viewer *models.User) bool {
	if viewer == nil {
		return false
	}
	if viewer.IsAdmin {
		return true
	}
	return joke.AuthorID != nil && *joke.AuthorID == viewer.ID
}

// TrackReading upserts the reader's last-read marker for a joke.
func TrackReading(jokeID, userID uint) error {
	entry := models.ReadingHistory{
		UserID:     userID,
		JokeID:     jokeID,
		LastReadAt: time.Now(),
	}
	return db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "joke_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_read_at"}),
	}).Create(&entry).Error
}
