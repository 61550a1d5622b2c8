package service

import (
	"errors"

	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrNotReviewAuthor = errors.New("not the review author")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

type ReviewService interface {
	CreateReview(userID, bookID uint, rating int, content string) (*model.Review, error)
	GetBookReviews(bookID uint, page, size int) ([]model.Review, int64, error)
	UpdateReview(userID, reviewID uint, rating *int, content *string) (*model.Review, error)
	DeleteReview(userID, reviewID uint, isAdmin bool) error
	GetBookRating(bookID uint) (float64, int64, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookRepo repository.BookRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
	}
}

func (s *reviewService) CreateReview(userID, bookID uint, rating int, content string) (*model.Review, error) {
	logger.Info("Creating review", map[string]interface{}{
		"user_id": userID,
		"book_id": bookID,
		"rating":  rating,
	})

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.bookRepo.FindByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create review: book not found", map[string]interface{}{
				"book_id": bookID,
			})
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	review := &model.Review{
		UserID:  userID,
		BookID:  bookID,
		Rating:  rating,
		Content: content,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	created, err := s.reviewRepo.FindByID(review.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Review created successfully", map[string]interface{}{
		"review_id": created.ID,
	})
	return created, nil
}

func (s *reviewService) GetBookReviews(bookID uint, page, size int) ([]model.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	if _, err := s.bookRepo.FindByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrBookNotFound
		}
		return nil, 0, err
	}

	return s.reviewRepo.FindByBookID(bookID, size, (page-1)*size)
}

func (s *reviewService) UpdateReview(userID, reviewID uint, rating *int, content *string) (*model.Review, error) {
	logger.Info("Updating review", map[string]interface{}{
		"user_id":   userID,
		"review_id": reviewID,
	})

	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	// Only the author can edit, admins included.
	if review.UserID != userID {
		logger.Warn("Review update denied: not the author", map[string]interface{}{
			"user_id":   userID,
			"review_id": reviewID,
		})
		return nil, ErrNotReviewAuthor
	}

	if rating != nil {
		if *rating < 1 || *rating > 5 {
			return nil, ErrInvalidRating
		}
		review.Rating = *rating
	}
	if content != nil {
		review.Content = *content
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewService) DeleteReview(userID, reviewID uint, isAdmin bool) error {
	logger.Info("Deleting review", map[string]interface{}{
		"user_id":   userID,
		"review_id": reviewID,
	})

	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if review.UserID != userID && !isAdmin {
		logger.Warn("Review deletion denied", map[string]interface{}{
			"user_id":   userID,
			"review_id": reviewID,
		})
		return ErrNotReviewAuthor
	}

	return s.reviewRepo.Delete(review.ID)
}

func (s *reviewService) GetBookRating(bookID uint) (float64, int64, error) {
	if _, err := s.bookRepo.FindByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrBookNotFound
		}
		return 0, 0, err
	}
	return s.reviewRepo.AverageRating(bookID)
}
