package services

import (
	"jokehub/internal/db"
	"jokehub/internal/models"
)

// AdminStats is a point-in-time snapshot for the moderation dashboard.
// The four counts are independent queries; they may each reflect a
// slightly different instant.
type AdminStats struct {
	TotalJokes   int64 `json:"total_jokes"`
	PendingJokes int64 `json:"pending_jokes"`
	TotalUsers   int64 `json:"total_users"`
	TotalLikes   int64 `json:"total_likes"`
}

func GetStats() (*AdminStats, error) {
	var stats AdminStats

	if err := db.DB.Model(&models.Joke{}).Count(&stats.TotalJokes).Error; err != nil {
		return nil, err
	}
	if err := db.DB.Model(&models.Joke{}).Where("status = ?", models.StatusPending).Count(&stats.PendingJokes).Error; err != nil {
		return nil, err
	}
	if err := db.DB.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.DB.Model(&models.Like{}).Count(&stats.TotalLikes).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
