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

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Content string `json:"content"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Content *string `json:"content"`
}

// CreateReview posts a review on a book
// POST /api/v1/books/:id/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
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

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid review request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.RespondWithDetails(c, http.StatusBadRequest, "입력값이 올바르지 않습니다", err.Error())
		return
	}

	review, err := ctrl.reviewService.CreateReview(userID, uint(bookID), req.Rating, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			apperrors.NotFound(c, "도서를 찾을 수 없습니다")
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, "평점은 1에서 5 사이여야 합니다")
		default:
			log.Error("Failed to create review", err, map[string]interface{}{
				"user_id": userID,
				"book_id": bookID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListBookReviews returns a book's reviews with its aggregate rating
// GET /api/v1/books/:id/reviews
func (ctrl *ReviewController) ListBookReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	bookID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, "올바르지 않은 도서 ID입니다")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	reviews, total, err := ctrl.reviewService.GetBookReviews(uint(bookID), page, size)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			apperrors.NotFound(c, "도서를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to fetch reviews", err, map[string]interface{}{
			"book_id": bookID,
		})
		apperrors.InternalError(c, "")
		return
	}

	average, count, err := ctrl.reviewService.GetBookRating(uint(bookID))
	if err != nil {
		log.Error("Failed to fetch book rating", err, map[string]interface{}{
			"book_id": bookID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":        reviews,
		"total":          total,
		"page":           page,
		"size":           size,
		"average_rating": average,
		"review_count":   count,
	})
}

// UpdateReview edits the caller's own review
// PATCH /api/v1/reviews/:id
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, "올바르지 않은 리뷰 ID입니다")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithDetails(c, http.StatusBadRequest, "입력값이 올바르지 않습니다", err.Error())
		return
	}

	review, err := ctrl.reviewService.UpdateReview(userID, uint(reviewID), req.Rating, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, "리뷰를 찾을 수 없습니다")
		case errors.Is(err, service.ErrNotReviewAuthor):
			apperrors.Forbidden(c, "본인의 리뷰만 수정할 수 있습니다")
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, "평점은 1에서 5 사이여야 합니다")
		default:
			log.Error("Failed to update review", err, map[string]interface{}{
				"user_id":   userID,
				"review_id": reviewID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview removes a review, authors and admins only
// DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, "올바르지 않은 리뷰 ID입니다")
		return
	}

	if err := ctrl.reviewService.DeleteReview(userID, uint(reviewID), middleware.IsAdmin(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperrors.NotFound(c, "리뷰를 찾을 수 없습니다")
		case errors.Is(err, service.ErrNotReviewAuthor):
			apperrors.Forbidden(c, "본인의 리뷰만 삭제할 수 있습니다")
		default:
			log.Error("Failed to delete review", err, map[string]interface{}{
				"user_id":   userID,
				"review_id": reviewID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "리뷰가 삭제되었습니다",
	})
}
