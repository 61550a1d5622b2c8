package service

import (
	"fmt"
	"testing"

	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBookServiceTest(t *testing.T) (BookService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	bookRepo := repository.NewBookRepository(testDB)
	return NewBookService(bookRepo), testDB
}

func createTestBooks(t *testing.T, svc BookService, count int) {
	t.Helper()
	for i := 1; i <= count; i++ {
		_, err := svc.CreateBook(BookInput{
			Title:         fmt.Sprintf("테스트 도서 %02d", i),
			Authors:       "김작가",
			Price:         float64(10000 + i*1000),
			ISBN:          fmt.Sprintf("978-89-0000-%04d", i),
			Categories:    "소설",
			StockQuantity: 10,
		})
		require.NoError(t, err)
	}
}

func TestBookService_CreateBook(t *testing.T) {
	bookService, _ := setupBookServiceTest(t)

	book, err := bookService.CreateBook(BookInput{
		Title:         "고독한 미식가",
		Authors:       "쿠스미 마사유키",
		Publisher:     "이봄",
		ISBN:          "978-89-1234-567-0",
		Price:         15000,
		Categories:    "만화,에세이",
		StockQuantity: 5,
	})
	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, "고독한 미식가", book.Title)
}

func TestBookService_CreateBook_DuplicateISBN(t *testing.T) {
	bookService, _ := setupBookServiceTest(t)

	_, err := bookService.CreateBook(BookInput{
		Title:   "First",
		Authors: "A",
		ISBN:    "978-89-1111-111-1",
		Price:   10000,
	})
	require.NoError(t, err)

	_, err = bookService.CreateBook(BookInput{
		Title:   "Second",
		Authors: "B",
		ISBN:    "978-89-1111-111-1",
		Price:   12000,
	})
	assert.ErrorIs(t, err, ErrISBNAlreadyExists)
}

func TestBookService_GetBookByID_NotFound(t *testing.T) {
	bookService, _ := setupBookServiceTest(t)

	_, err := bookService.GetBookByID(9999)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestBookService_ListBooks_Pagination(t *testing.T) {
	bookService, _ := setupBookServiceTest(t)
	createTestBooks(t, bookService, 25)

	page, err := bookService.ListBooks(repository.BookFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Books, 10)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)

	lastPage, err := bookService.ListBooks(repository.BookFilter{}, 3, 10)
	require.NoError(t, err)
	assert.Len(t, lastPage.Books, 5)
}

func TestBookService_ListBooks_KeywordFilter(t *testing.T) {
	bookService, _ := setupBookServiceTest(t)

	_, err := bookService.CreateBook(BookInput{
		Title: "Go 프로그래밍", Authors: "박개발", Price: 30000,
	})
	require.NoError(t, err)
	_, err = bookService.CreateBook(BookInput{
		Title: "요리의 기초", Authors: "Go요리사", Price: 20000,
	})
	require.NoError(t, err)
	_, err = bookService.CreateBook(BookInput{
		Title: "역사 이야기", Authors: "최교수", Price: 25000,
	})
	require.NoError(t, err)

	// Keyword matches title or authors
	page, err := bookService.ListBooks(repository.BookFilter{Keyword: "Go"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
}

func TestBookService_ListBooks_SortByPrice(t *testing.T) {
	bookService, _ := setupBookServiceTest(t)
	createTestBooks(t, bookService, 5)

	page, err := bookService.ListBooks(repository.BookFilter{
		SortBy:        repository.BookSortPrice,
		SortAscending: true,
	}, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Books, 5)

	for i := 1; i < len(page.Books); i++ {
		assert.LessOrEqual(t, page.Books[i-1].Price, page.Books[i].Price)
	}
}

func TestBookService_ListBooks_UnknownSortFallsBack(t *testing.T) {
	bookService, _ := setupBookServiceTest(t)
	createTestBooks(t, bookService, 3)

	// An unrecognized sort column must not leak into the query
	page, err := bookService.ListBooks(repository.BookFilter{
		SortBy: repository.BookSort("password_hash"),
	}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
}

func TestBookService_UpdateBook(t *testing.T) {
	bookService, _ := setupBookServiceTest(t)

	book, err := bookService.CreateBook(BookInput{
		Title: "초판", Authors: "저자", Price: 10000, StockQuantity: 3,
	})
	require.NoError(t, err)

	newTitle := "개정판"
	newStock := 20
	updated, err := bookService.UpdateBook(book.ID, BookUpdateInput{
		Title:         &newTitle,
		StockQuantity: &newStock,
	})
	require.NoError(t, err)
	assert.Equal(t, "개정판", updated.Title)
	assert.Equal(t, 20, updated.StockQuantity)
	// Untouched fields keep their values
	assert.Equal(t, float64(10000), updated.Price)
}

func TestBookService_DeleteBook(t *testing.T) {
	bookService, _ := setupBookServiceTest(t)

	book, err := bookService.CreateBook(BookInput{
		Title: "삭제될 책", Authors: "저자", Price: 10000,
	})
	require.NoError(t, err)

	err = bookService.DeleteBook(book.ID)
	require.NoError(t, err)

	_, err = bookService.GetBookByID(book.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)

	err = bookService.DeleteBook(book.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)
}
