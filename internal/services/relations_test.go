package services

import (
	"errors"
	"testing"

	"jokehub/internal/db"
	"jokehub/internal/models"

	"gorm.io/gorm"
)

func TestToggleLike(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, false)
	fan := createTestUser(t, false)
	admin := createTestUser(t, true)
	category := createTestCategory(t, "Học đường", "hoc-duong")
	joke := approveTestJoke(t, "Chuyện lớp học", category.ID, author.ID, admin)

	liked, err := ToggleLike(joke.ID, fan.ID)
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if !liked {
		t.Error("Expected first toggle to like")
	}

	var stored models.Joke
	db.DB.First(&stored, joke.ID)
	if stored.LikeCount != 1 {
		t.Errorf("Expected like count 1, got %d", stored.LikeCount)
	}
	if n := countRows(t, &models.Like{}); n != 1 {
		t.Errorf("Expected 1 like row, got %d", n)
	}

	liked, err = ToggleLike(joke.ID, fan.ID)
	if err != nil {
		t.Fatalf("Second ToggleLike failed: %v", err)
	}
	if liked {
		t.Error("Expected second toggle to unlike")
	}

	db.DB.First(&stored, joke.ID)
	if stored.LikeCount != 0 {
		t.Errorf("Expected like count back to 0, got %d", stored.LikeCount)
	}
	if n := countRows(t, &models.Like{}); n != 0 {
		t.Errorf("Expected no like rows, got %d", n)
	}
}

func TestToggleLikeMissingJoke(t *testing.T) {
	setupTestDB(t)
	fan := createTestUser(t, false)

	if _, err := ToggleLike(9999, fan.ID); !IsNotFound(err) {
		t.Errorf("Expected not-found, got %v", err)
	}
}

func TestToggleSave(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, false)
	fan := createTestUser(t, false)
	admin := createTestUser(t, true)
	category := createTestCategory(t, "Học đường", "hoc-duong")
	joke := approveTestJoke(t, "Chuyện lớp học", category.ID, author.ID, admin)

	saved, err := ToggleSave(joke.ID, fan.ID)
	if err != nil {
		t.Fatalf("ToggleSave failed: %v", err)
	}
	if !saved {
		t.Error("Expected first toggle to save")
	}

	var stored models.Joke
	db.DB.First(&stored, joke.ID)
	if stored.SaveCount != 1 {
		t.Errorf("Expected save count 1, got %d", stored.SaveCount)
	}

	saved, err = ToggleSave(joke.ID, fan.ID)
	if err != nil {
		t.Fatalf("Second ToggleSave failed: %v", err)
	}
	if saved {
		t.Error("Expected second toggle to unsave")
	}
	if n := countRows(t, &models.SavedJoke{}); n != 0 {
		t.Errorf("Expected no saved rows, got %d", n)
	}
}

// The toggles rely on the unique index to serialize concurrent inserts
// of the same (user, joke) pair; the driver must surface the violation
// as gorm.ErrDuplicatedKey.
func TestRelationUniqueIndexes(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, false)
	fan := createTestUser(t, false)
	admin := createTestUser(t, true)
	category := createTestCategory(t, "Học đường", "hoc-duong")
	joke := approveTestJoke(t, "Chuyện lớp học", category.ID, author.ID, admin)

	if err := db.DB.Create(&models.Like{UserID: fan.ID, JokeID: joke.ID}).Error; err != nil {
		t.Fatalf("First like insert failed: %v", err)
	}
	err := db.DB.Create(&models.Like{UserID: fan.ID, JokeID: joke.ID}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("Expected ErrDuplicatedKey for duplicate like, got %v", err)
	}

	if err := db.DB.Create(&models.SavedJoke{UserID: fan.ID, JokeID: joke.ID}).Error; err != nil {
		t.Fatalf("First save insert failed: %v", err)
	}
	err = db.DB.Create(&models.SavedJoke{UserID: fan.ID, JokeID: joke.ID}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("Expected ErrDuplicatedKey for duplicate save, got %v", err)
	}
}

func TestCounterFloorsAtZero(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, false)
	admin := createTestUser(t, true)
	category := createTestCategory(t, "Học đường", "hoc-duong")
	joke := approveTestJoke(t, "Chuyện lớp học", category.ID, author.ID, admin)

	if err := adjustJokeCounter(joke.ID, "like_count", -1); err != nil {
		t.Fatalf("adjustJokeCounter failed: %v", err)
	}

	var stored models.Joke
	db.DB.First(&stored, joke.ID)
	if stored.LikeCount != 0 {
		t.Errorf("Expected counter to stay at 0, got %d", stored.LikeCount)
	}
}
