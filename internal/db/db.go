package db

import (
	"log"
	"os"

	"jokehub/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=jokehub port=5432 sslmode=disable TimeZone=Asia/Ho_Chi_Minh"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedCategories()
}

// Migrate runs the schema migration. Exported so tests can migrate
// their own database with the production model list.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Joke{},
		&models.Comment{},
		&models.Like{},
		&models.SavedJoke{},
		&models.ReadingHistory{},
		&models.Notification{},
		&models.Report{},
	)
}

func seedCategories() {
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		log.Println("Categories already seeded, skipping")
		return
	}

	categories := []models.Category{
		{Name: "Học đường", Slug: "hoc-duong", Icon: "🎓", Description: "Chuyện cười trường lớp, thầy trò", DisplayOrder: 1},
		{Name: "Công sở", Slug: "cong-so", Icon: "💼", Description: "Chuyện cười nơi làm việc", DisplayOrder: 2},
		{Name: "Gia đình", Slug: "gia-dinh", Icon: "🏠", Description: "Chuyện cười vợ chồng, con cái", DisplayOrder: 3},
		{Name: "Dân gian", Slug: "dan-gian", Icon: "🌾", Description: "Truyện cười dân gian, trạng", DisplayOrder: 4},
		{Name: "Linh tinh", Slug: "linh-tinh", Icon: "😂", Description: "Đủ thứ chuyện trên đời", DisplayOrder: 5},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			log.Printf("Failed to create category %s: %v", category.Name, err)
		}
	}
	log.Println("Initial categories created successfully")
}
