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

func setupOrderServiceTest(t *testing.T) (OrderService, CartService, *model.User, *model.Book, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	bookRepo := repository.NewBookRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	cartService := NewCartService(cartRepo, bookRepo)
	orderService := NewOrderService(orderRepo, cartRepo, testDB)

	user := &model.User{
		Email:        "order@example.com",
		PasswordHash: "hash",
		Name:         "Order User",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(user)

	book := &model.Book{
		Title:         "주문 테스트 도서",
		Authors:       "김작가",
		Price:         20000,
		StockQuantity: 10,
	}
	testDB.Create(book)

	return orderService, cartService, user, book, testDB
}

var testRecipient = CreateOrderInput{
	RecipientName:   "홍길동",
	RecipientPhone:  "010-1234-5678",
	ShippingAddress: "서울특별시 강남구 테스트로 1",
}

func TestOrderService_CreateOrderFromCart(t *testing.T) {
	orderService, cartService, user, book, testDB := setupOrderServiceTest(t)

	_, err := cartService.AddToCart(user.ID, book.ID, 3)
	require.NoError(t, err)

	order, err := orderService.CreateOrderFromCart(user.ID, testRecipient)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCreated, order.Status)
	assert.Equal(t, float64(60000), order.TotalPrice)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, 3, order.OrderItems[0].Quantity)
	// Price is snapshotted at purchase time
	assert.Equal(t, float64(20000), order.OrderItems[0].PriceAtPurchase)

	// Stock is decremented
	var updated model.Book
	testDB.First(&updated, book.ID)
	assert.Equal(t, 7, updated.StockQuantity)

	// Cart is emptied
	items, _ := cartService.GetUserCart(user.ID)
	assert.Len(t, items, 0)
}

func TestOrderService_CreateOrderFromCart_EmptyCart(t *testing.T) {
	orderService, _, user, _, _ := setupOrderServiceTest(t)

	_, err := orderService.CreateOrderFromCart(user.ID, testRecipient)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_CreateOrderFromCart_InsufficientStock(t *testing.T) {
	orderService, cartService, user, book, testDB := setupOrderServiceTest(t)

	_, err := cartService.AddToCart(user.ID, book.ID, 11)
	require.NoError(t, err)

	_, err = orderService.CreateOrderFromCart(user.ID, testRecipient)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing changed: stock intact, cart intact
	var unchanged model.Book
	testDB.First(&unchanged, book.ID)
	assert.Equal(t, 10, unchanged.StockQuantity)

	items, _ := cartService.GetUserCart(user.ID)
	assert.Len(t, items, 1)
}

func TestOrderService_CreateOrderFromCart_MissingRecipient(t *testing.T) {
	orderService, cartService, user, book, _ := setupOrderServiceTest(t)

	_, err := cartService.AddToCart(user.ID, book.ID, 1)
	require.NoError(t, err)

	_, err = orderService.CreateOrderFromCart(user.ID, CreateOrderInput{})
	assert.ErrorIs(t, err, ErrMissingRecipient)
}

func TestOrderService_PriceSnapshotSurvivesPriceChange(t *testing.T) {
	orderService, cartService, user, book, testDB := setupOrderServiceTest(t)

	_, err := cartService.AddToCart(user.ID, book.ID, 1)
	require.NoError(t, err)

	order, err := orderService.CreateOrderFromCart(user.ID, testRecipient)
	require.NoError(t, err)

	// Price change after ordering must not rewrite history
	testDB.Model(&model.Book{}).Where("id = ?", book.ID).Update("price", 99000)

	fetched, err := orderService.GetOrderByID(user.ID, order.ID, false)
	require.NoError(t, err)
	assert.Equal(t, float64(20000), fetched.OrderItems[0].PriceAtPurchase)
	assert.Equal(t, float64(20000), fetched.TotalPrice)
}

func TestOrderService_GetOrderByID_Ownership(t *testing.T) {
	orderService, cartService, user, book, testDB := setupOrderServiceTest(t)

	other := &model.User{
		Email:        "stranger@example.com",
		PasswordHash: "hash",
		Name:         "Stranger",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(other)

	_, err := cartService.AddToCart(user.ID, book.ID, 1)
	require.NoError(t, err)
	order, err := orderService.CreateOrderFromCart(user.ID, testRecipient)
	require.NoError(t, err)

	// The owner can read it
	_, err = orderService.GetOrderByID(user.ID, order.ID, false)
	assert.NoError(t, err)

	// A stranger gets not found, not forbidden
	_, err = orderService.GetOrderByID(other.ID, order.ID, false)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// An admin can read any order
	_, err = orderService.GetOrderByID(other.ID, order.ID, true)
	assert.NoError(t, err)
}

func TestOrderService_CancelOrder_RestoresStock(t *testing.T) {
	orderService, cartService, user, book, testDB := setupOrderServiceTest(t)

	_, err := cartService.AddToCart(user.ID, book.ID, 4)
	require.NoError(t, err)
	order, err := orderService.CreateOrderFromCart(user.ID, testRecipient)
	require.NoError(t, err)

	canceled, err := orderService.CancelOrder(user.ID, order.ID, false)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCanceled, canceled.Status)

	var restored model.Book
	testDB.First(&restored, book.ID)
	assert.Equal(t, 10, restored.StockQuantity)
}

func TestOrderService_CancelOrder_OnlyFromCreated(t *testing.T) {
	orderService, cartService, user, book, _ := setupOrderServiceTest(t)

	_, err := cartService.AddToCart(user.ID, book.ID, 1)
	require.NoError(t, err)
	order, err := orderService.CreateOrderFromCart(user.ID, testRecipient)
	require.NoError(t, err)

	_, err = orderService.UpdateOrderStatus(order.ID, model.OrderStatusPaid)
	require.NoError(t, err)

	_, err = orderService.CancelOrder(user.ID, order.ID, false)
	assert.ErrorIs(t, err, ErrOrderNotCancelable)
}

func TestOrderService_GetUserOrders(t *testing.T) {
	orderService, cartService, user, book, _ := setupOrderServiceTest(t)

	for i := 0; i < 3; i++ {
		_, err := cartService.AddToCart(user.ID, book.ID, 1)
		require.NoError(t, err)
		_, err = orderService.CreateOrderFromCart(user.ID, testRecipient)
		require.NoError(t, err)
	}

	orders, total, err := orderService.GetUserOrders(user.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 2)
}
