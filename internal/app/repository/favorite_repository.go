package repository

import (
	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(favorite *model.Favorite) error
	FindByUserAndBook(userID, bookID uint) (*model.Favorite, error)
	FindByUserID(userID uint) ([]model.Favorite, error)
	Delete(id uint) error
	CountByBookID(bookID uint) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(favorite *model.Favorite) error {
	logger.Debug("Creating favorite in database", map[string]interface{}{
		"user_id": favorite.UserID,
		"book_id": favorite.BookID,
	})

	if err := r.db.Create(favorite).Error; err != nil {
		logger.Error("Failed to create favorite in database", err, map[string]interface{}{
			"user_id": favorite.UserID,
			"book_id": favorite.BookID,
		})
		return err
	}
	return nil
}

func (r *favoriteRepository) FindByUserAndBook(userID, bookID uint) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) FindByUserID(userID uint) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		logger.Error("Failed to find favorites in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return favorites, nil
}

// Delete removes the row permanently. Favorites are not soft deleted so
// the (user_id, book_id) unique index can be reused after a toggle off.
func (r *favoriteRepository) Delete(id uint) error {
	if err := r.db.Unscoped().Delete(&model.Favorite{}, id).Error; err != nil {
		logger.Error("Failed to delete favorite from database", err, map[string]interface{}{
			"favorite_id": id,
		})
		return err
	}
	return nil
}

func (r *favoriteRepository) CountByBookID(bookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).Where("book_id = ?", bookID).Count(&count).Error
	if err != nil {
		logger.Error("Failed to count favorites in database", err, map[string]interface{}{
			"book_id": bookID,
		})
		return 0, err
	}
	return count, nil
}
