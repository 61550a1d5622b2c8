package service

import (
	"errors"

	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteService interface {
	// ToggleFavorite flips the favorite state and reports the new state.
	ToggleFavorite(userID, bookID uint) (bool, error)
	GetUserFavorites(userID uint) ([]model.Favorite, error)
	CountBookFavorites(bookID uint) (int64, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	bookRepo     repository.BookRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, bookRepo repository.BookRepository) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		bookRepo:     bookRepo,
	}
}

func (s *favoriteService) ToggleFavorite(userID, bookID uint) (bool, error) {
	logger.Info("Toggling favorite", map[string]interface{}{
		"user_id": userID,
		"book_id": bookID,
	})

	if _, err := s.bookRepo.FindByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot toggle favorite: book not found", map[string]interface{}{
				"book_id": bookID,
			})
			return false, ErrBookNotFound
		}
		return false, err
	}

	existing, err := s.favoriteRepo.FindByUserAndBook(userID, bookID)
	if err == nil {
		if err := s.favoriteRepo.Delete(existing.ID); err != nil {
			return false, err
		}
		logger.Info("Favorite removed", map[string]interface{}{
			"user_id": userID,
			"book_id": bookID,
		})
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing favorite", err, map[string]interface{}{
			"user_id": userID,
			"book_id": bookID,
		})
		return false, err
	}

	favorite := &model.Favorite{
		UserID: userID,
		BookID: bookID,
	}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		// A concurrent toggle may have won the unique index race.
		// Treat the duplicate as already favorited.
		if _, findErr := s.favoriteRepo.FindByUserAndBook(userID, bookID); findErr == nil {
			return true, nil
		}
		return false, err
	}

	logger.Info("Favorite added", map[string]interface{}{
		"user_id": userID,
		"book_id": bookID,
	})
	return true, nil
}

func (s *favoriteService) GetUserFavorites(userID uint) ([]model.Favorite, error) {
	favorites, err := s.favoriteRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user favorites", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return favorites, nil
}

func (s *favoriteService) CountBookFavorites(bookID uint) (int64, error) {
	if _, err := s.bookRepo.FindByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrBookNotFound
		}
		return 0, err
	}
	return s.favoriteRepo.CountByBookID(bookID)
}
