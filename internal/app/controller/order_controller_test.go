package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/internal/app/service"
	"github.com/jcloud/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderControllerTest(t *testing.T) (*OrderController, *gin.Engine, *gorm.DB, *model.User, *model.Book) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	_ = repository.NewBookRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	orderService := service.NewOrderService(orderRepo, cartRepo, testDB)
	orderController := NewOrderController(orderService)

	user := &model.User{
		Email:        "order-test@example.com",
		PasswordHash: "hash",
		Name:         "Order User",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(user)

	book := &model.Book{
		Title:         "주문 도서",
		Authors:       "김작가",
		Price:         20000,
		StockQuantity: 10,
	}
	testDB.Create(book)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return orderController, router, testDB, user, book
}

func validOrderBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(CreateOrderRequest{
		RecipientName:   "홍길동",
		RecipientPhone:  "010-1234-5678",
		ShippingAddress: "서울특별시 강남구 테스트로 1",
	})
	require.NoError(t, err)
	return body
}

func TestOrderController_CreateOrder_Success(t *testing.T) {
	controller, router, testDB, user, book := setupOrderControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, BookID: book.ID, Quantity: 2})

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(validOrderBody(t)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var order model.Order
	err := json.Unmarshal(w.Body.Bytes(), &order)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCreated, order.Status)
	assert.Equal(t, float64(40000), order.TotalPrice)
	require.Len(t, order.OrderItems, 1)
}

func TestOrderController_CreateOrder_EmptyCart(t *testing.T) {
	controller, router, _, user, _ := setupOrderControllerTest(t)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(validOrderBody(t)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_CreateOrder_InsufficientStock(t *testing.T) {
	controller, router, testDB, user, book := setupOrderControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, BookID: book.ID, Quantity: 99})

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(validOrderBody(t)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderController_CreateOrder_MissingRecipient(t *testing.T) {
	controller, router, testDB, user, book := setupOrderControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, BookID: book.ID, Quantity: 1})

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_GetOrder_OtherUsersOrderHidden(t *testing.T) {
	controller, router, testDB, user, book := setupOrderControllerTest(t)

	other := &model.User{
		Email:        "other-order@example.com",
		PasswordHash: "hash",
		Name:         "Other",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(other)

	order := &model.Order{
		UserID:          user.ID,
		TotalPrice:      20000,
		Status:          model.OrderStatusCreated,
		RecipientName:   "홍길동",
		ShippingAddress: "서울",
		OrderItems: []model.OrderItem{
			{BookID: book.ID, Quantity: 1, PriceAtPurchase: 20000},
		},
	}
	testDB.Create(order)

	router.GET("/orders/:id", func(c *gin.Context) {
		setUserIDInContext(c, other.ID)
		controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Not 403: ownership mismatches read as missing orders
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderController_CancelOrder(t *testing.T) {
	controller, router, testDB, user, book := setupOrderControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, BookID: book.ID, Quantity: 2})

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})
	router.POST("/orders/:id/cancel", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CancelOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(validOrderBody(t)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var order model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))

	req = httptest.NewRequest(http.MethodPost, "/orders/1/cancel", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var canceled model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &canceled))
	assert.Equal(t, model.OrderStatusCanceled, canceled.Status)

	// Second cancel is rejected
	req = httptest.NewRequest(http.MethodPost, "/orders/1/cancel", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}
