package services

import (
	"errors"

	"jokehub/internal/db"
	"jokehub/internal/models"

	"gorm.io/gorm"
)

// ToggleLike flips the (user, joke) like relation and returns whether
// it is now present. Two users racing on the same pair are separated by
// the unique index; a duplicate insert from the same user just means
// someone else's request won, so it reports "present" instead of failing.
func ToggleLike(jokeID, userID uint) (bool, error) {
	var joke models.Joke
	err := db.DB.First(&joke, jokeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, &NotFoundError{Entity: "joke", ID: jokeID}
	}
	if err != nil {
		return false, err
	}

	var existing models.Like
	err = db.DB.Where("user_id = ? AND joke_id = ?", userID, jokeID).First(&existing).Error
	if err == nil {
		if err := db.DB.Delete(&existing).Error; err != nil {
			return false, err
		}
		if err := adjustJokeCounter(jokeID, "like_count", -1); err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like := models.Like{UserID: userID, JokeID: jokeID}
	if err := db.DB.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	if err := adjustJokeCounter(jokeID, "like_count", 1); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleSave is ToggleLike for the saved-jokes list.
func ToggleSave(jokeID, userID uint) (bool, error) {
	var joke models.Joke
	err := db.DB.First(&joke, jokeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, &NotFoundError{Entity: "joke", ID: jokeID}
	}
	if err != nil {
		return false, err
	}

	var existing models.SavedJoke
	err = db.DB.Where("user_id = ? AND joke_id = ?", userID, jokeID).First(&existing).Error
	if err == nil {
		if err := db.DB.Delete(&existing).Error; err != nil {
			return false, err
		}
		if err := adjustJokeCounter(jokeID, "save_count", -1); err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	saved := models.SavedJoke{UserID: userID, JokeID: jokeID}
	if err := db.DB.Create(&saved).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	if err := adjustJokeCounter(jokeID, "save_count", 1); err != nil {
		return false, err
	}
	return true, nil
}

// adjustJokeCounter applies a single atomic increment/decrement so
// concurrent toggles never read-modify-write a stale value. Decrements
// are floored at zero.
func adjustJokeCounter(jokeID uint, column string, delta int) error {
	tx := db.DB.Model(&models.Joke{}).Where("id = ?", jokeID)
	if delta < 0 {
		tx = tx.Where(column+" > 0")
	}
	return tx.UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}
