package repository

import (
	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	FindByBookID(bookID uint, limit, offset int) ([]model.Review, int64, error)
	Update(review *model.Review) error
	Delete(id uint) error
	AverageRating(bookID uint) (float64, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"user_id": review.UserID,
		"book_id": review.BookID,
		"rating":  review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"user_id": review.UserID,
			"book_id": review.BookID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Preload("User").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByBookID(bookID uint, limit, offset int) ([]model.Review, int64, error) {
	query := r.db.Model(&model.Review{}).Where("book_id = ?", bookID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count reviews in database", err, map[string]interface{}{
			"book_id": bookID,
		})
		return nil, 0, err
	}

	var reviews []model.Review
	err := query.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find reviews in database", err, map[string]interface{}{
			"book_id": bookID,
		})
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) Update(review *model.Review) error {
	logger.Debug("Updating review in database", map[string]interface{}{
		"review_id": review.ID,
	})

	if err := r.db.Save(review).Error; err != nil {
		logger.Error("Failed to update review in database", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) Delete(id uint) error {
	logger.Debug("Deleting review from database", map[string]interface{}{
		"review_id": id,
	})

	if err := r.db.Delete(&model.Review{}, id).Error; err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": id,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) AverageRating(bookID uint) (float64, int64, error) {
	var result struct {
		Average float64
		Count   int64
	}
	err := r.db.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("book_id = ?", bookID).
		Scan(&result).Error
	if err != nil {
		logger.Error("Failed to compute average rating", err, map[string]interface{}{
			"book_id": bookID,
		})
		return 0, 0, err
	}
	return result.Average, result.Count, nil
}
