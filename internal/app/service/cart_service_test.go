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

func setupCartServiceTest(t *testing.T) (CartService, *model.User, *model.Book, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	bookRepo := repository.NewBookRepository(testDB)
	cartService := NewCartService(cartRepo, bookRepo)

	user := &model.User{
		Email:        "cart@example.com",
		PasswordHash: "hash",
		Name:         "Cart User",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(user)

	book := &model.Book{
		Title:         "장바구니 테스트 도서",
		Authors:       "김작가",
		Price:         18000,
		StockQuantity: 10,
	}
	testDB.Create(book)

	return cartService, user, book, testDB
}

func TestCartService_GetUserCart(t *testing.T) {
	cartService, user, book, _ := setupCartServiceTest(t)

	// Initially empty
	items, err := cartService.GetUserCart(user.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 0)

	_, err = cartService.AddToCart(user.ID, book.ID, 2)
	require.NoError(t, err)

	items, err = cartService.GetUserCart(user.ID)
	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	// Book is preloaded for price display
	assert.Equal(t, book.Title, items[0].Book.Title)
}

func TestCartService_AddToCart_BookNotFound(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestCartService_AddToCart_MergesDuplicates(t *testing.T) {
	cartService, user, book, _ := setupCartServiceTest(t)

	first, err := cartService.AddToCart(user.ID, book.ID, 2)
	require.NoError(t, err)

	second, err := cartService.AddToCart(user.ID, book.ID, 3)
	require.NoError(t, err)

	// Same row, merged quantity
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	items, _ := cartService.GetUserCart(user.ID)
	assert.Len(t, items, 1)
}

func TestCartService_UpdateCartItem(t *testing.T) {
	cartService, user, book, _ := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, book.ID, 2)
	require.NoError(t, err)

	updated, deleted, err := cartService.UpdateCartItem(user.ID, item.ID, 7)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 7, updated.Quantity)
}

func TestCartService_UpdateCartItem_ZeroQuantityDeletes(t *testing.T) {
	cartService, user, book, _ := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, book.ID, 2)
	require.NoError(t, err)

	updated, deleted, err := cartService.UpdateCartItem(user.ID, item.ID, 0)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Nil(t, updated)

	items, _ := cartService.GetUserCart(user.ID)
	assert.Len(t, items, 0)
}

func TestCartService_UpdateCartItem_OtherUsersItem(t *testing.T) {
	cartService, user, book, testDB := setupCartServiceTest(t)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Name:         "Other",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(other)

	item, err := cartService.AddToCart(user.ID, book.ID, 2)
	require.NoError(t, err)

	// Another user's row looks like a missing row
	_, _, err = cartService.UpdateCartItem(other.ID, item.ID, 5)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	cartService, user, book, _ := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, book.ID, 1)
	require.NoError(t, err)

	err = cartService.RemoveFromCart(user.ID, item.ID)
	require.NoError(t, err)

	err = cartService.RemoveFromCart(user.ID, item.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	cartService, user, book, testDB := setupCartServiceTest(t)

	book2 := &model.Book{Title: "두번째 책", Authors: "이작가", Price: 12000, StockQuantity: 5}
	testDB.Create(book2)

	_, err := cartService.AddToCart(user.ID, book.ID, 1)
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, book2.ID, 2)
	require.NoError(t, err)

	err = cartService.ClearCart(user.ID)
	require.NoError(t, err)

	items, _ := cartService.GetUserCart(user.ID)
	assert.Len(t, items, 0)
}
