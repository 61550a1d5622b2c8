package service

import (
	"testing"

	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewServiceTest(t *testing.T) (ReviewService, *model.User, *model.Book, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	reviewRepo := repository.NewReviewRepository(testDB)
	bookRepo := repository.NewBookRepository(testDB)
	reviewService := NewReviewService(reviewRepo, bookRepo)

	user := &model.User{
		Email:        "reviewer@example.com",
		PasswordHash: "hash",
		Name:         "Reviewer",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(user)

	book := &model.Book{
		Title:         "리뷰 테스트 도서",
		Authors:       "김작가",
		Price:         15000,
		StockQuantity: 5,
	}
	testDB.Create(book)

	return reviewService, user, book, testDB
}

func TestReviewService_CreateReview(t *testing.T) {
	reviewService, user, book, _ := setupReviewServiceTest(t)

	review, err := reviewService.CreateReview(user.ID, book.ID, 5, "인생 책입니다")
	require.NoError(t, err)
	assert.NotZero(t, review.ID)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewService_CreateReview_InvalidRating(t *testing.T) {
	reviewService, user, book, _ := setupReviewServiceTest(t)

	_, err := reviewService.CreateReview(user.ID, book.ID, 0, "")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = reviewService.CreateReview(user.ID, book.ID, 6, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestReviewService_CreateReview_BookNotFound(t *testing.T) {
	reviewService, user, _, _ := setupReviewServiceTest(t)

	_, err := reviewService.CreateReview(user.ID, 9999, 4, "")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestReviewService_CreateReview_DuplicatesAllowed(t *testing.T) {
	reviewService, user, book, _ := setupReviewServiceTest(t)

	_, err := reviewService.CreateReview(user.ID, book.ID, 5, "첫 리뷰")
	require.NoError(t, err)
	_, err = reviewService.CreateReview(user.ID, book.ID, 3, "다시 읽어보니")
	require.NoError(t, err)

	_, total, err := reviewService.GetBookReviews(book.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestReviewService_UpdateReview_AuthorOnly(t *testing.T) {
	reviewService, user, book, testDB := setupReviewServiceTest(t)

	other := &model.User{
		Email:        "other-reviewer@example.com",
		PasswordHash: "hash",
		Name:         "Other",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(other)

	review, err := reviewService.CreateReview(user.ID, book.ID, 4, "좋아요")
	require.NoError(t, err)

	newRating := 2
	_, err = reviewService.UpdateReview(other.ID, review.ID, &newRating, nil)
	assert.ErrorIs(t, err, ErrNotReviewAuthor)

	updated, err := reviewService.UpdateReview(user.ID, review.ID, &newRating, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
}

func TestReviewService_DeleteReview_AdminOverride(t *testing.T) {
	reviewService, user, book, testDB := setupReviewServiceTest(t)

	admin := &model.User{
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Name:         "Admin",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	testDB.Create(admin)

	review, err := reviewService.CreateReview(user.ID, book.ID, 1, "스포일러 포함")
	require.NoError(t, err)

	// A regular non-author cannot delete
	err = reviewService.DeleteReview(admin.ID, review.ID, false)
	assert.ErrorIs(t, err, ErrNotReviewAuthor)

	// Admins can delete any review
	err = reviewService.DeleteReview(admin.ID, review.ID, true)
	assert.NoError(t, err)

	_, total, err := reviewService.GetBookReviews(book.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestReviewService_GetBookRating(t *testing.T) {
	reviewService, user, book, testDB := setupReviewServiceTest(t)

	other := &model.User{
		Email:        "second@example.com",
		PasswordHash: "hash",
		Name:         "Second",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(other)

	_, err := reviewService.CreateReview(user.ID, book.ID, 5, "")
	require.NoError(t, err)
	_, err = reviewService.CreateReview(other.ID, book.ID, 3, "")
	require.NoError(t, err)

	average, count, err := reviewService.GetBookRating(book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.InDelta(t, 4.0, average, 0.001)
}

func TestReviewService_GetBookRating_NoReviews(t *testing.T) {
	reviewService, _, book, _ := setupReviewServiceTest(t)

	average, count, err := reviewService.GetBookRating(book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, float64(0), average)
}
