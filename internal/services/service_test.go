package services

import (
	"fmt"
	"testing"

	"jokehub/internal/db"
	"jokehub/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global connection at a fresh in-memory
// database migrated with the production model list.
func setupTestDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// :memory: is per-connection; keep the pool at one so every query
	// sees the same database.
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db.DB = gdb
}

var testSeq int

func createTestUser(t *testing.T, isAdmin bool) *models.User {
	t.Helper()
	testSeq++
	user := models.User{
		Username: fmt.Sprintf("user%d", testSeq),
		Email:    fmt.Sprintf("user%d@example.com", testSeq),
		Password: "not-a-real-hash",
		IsAdmin:  isAdmin,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

func createTestCategory(t *testing.T, name, slug string) *models.Category {
	t.Helper()
	category := models.Category{Name: name, Slug: slug, IsActive: true}
	if err := db.DB.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return &category
}

func submitTestJoke(t *testing.T, title string, categoryID, authorID uint) *models.Joke {
	t.Helper()
	joke, err := SubmitJoke(title, "Nội dung truyện cười dài hơn hai mươi ký tự.", categoryID, authorID)
	if err != nil {
		t.Fatalf("SubmitJoke failed: %v", err)
	}
	return joke
}

func countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.DB.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	return count
}
