package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jcloud/bookstore-backend/internal/app/service"
	apperrors "github.com/jcloud/bookstore-backend/internal/errors"
	"github.com/jcloud/bookstore-backend/internal/middleware"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{
		favoriteService: favoriteService,
	}
}

// ToggleFavorite flips the favorite state for a book
// POST /api/v1/books/:id/favorites
func (ctrl *FavoriteController) ToggleFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	bookID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, "올바르지 않은 도서 ID입니다")
		return
	}

	favorited, err := ctrl.favoriteService.ToggleFavorite(userID, uint(bookID))
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			apperrors.NotFound(c, "도서를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to toggle favorite", err, map[string]interface{}{
			"user_id": userID,
			"book_id": bookID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book_id": uint(bookID),
		"liked":   favorited,
	})
}

// ListFavorites returns the user's favorite books
// GET /api/v1/favorites
func (ctrl *FavoriteController) ListFavorites(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	favorites, err := ctrl.favoriteService.GetUserFavorites(userID)
	if err != nil {
		log.Error("Failed to fetch favorites", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// CountBookFavorites returns how many users favorited a book
// GET /api/v1/books/:id/favorites/count
func (ctrl *FavoriteController) CountBookFavorites(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	bookID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, "올바르지 않은 도서 ID입니다")
		return
	}

	count, err := ctrl.favoriteService.CountBookFavorites(uint(bookID))
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			apperrors.NotFound(c, "도서를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to count favorites", err, map[string]interface{}{
			"book_id": bookID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book_id": uint(bookID),
		"count":   count,
	})
}
