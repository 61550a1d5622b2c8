package service

import (
	"errors"
	"fmt"

	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrOrderNotCancelable = errors.New("order can no longer be canceled")
	ErrMissingRecipient   = errors.New("recipient information is required")
)

type CreateOrderInput struct {
	RecipientName   string
	RecipientPhone  string
	ShippingAddress string
}

type OrderService interface {
	CreateOrderFromCart(userID uint, input CreateOrderInput) (*model.Order, error)
	GetUserOrders(userID uint, page, size int) ([]model.Order, int64, error)
	GetOrderByID(userID uint, orderID uint, isAdmin bool) (*model.Order, error)
	CancelOrder(userID uint, orderID uint, isAdmin bool) (*model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	db        *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		db:        db,
	}
}

func (s *orderService) CreateOrderFromCart(userID uint, input CreateOrderInput) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id": userID,
	})

	if input.RecipientName == "" || input.ShippingAddress == "" {
		logger.Warn("Order requires recipient name and shipping address", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrMissingRecipient
	}

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if len(cartItems) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var (
		totalPrice float64
		orderItems []model.OrderItem
	)

	for _, cartItem := range cartItems {
		// Row lock holds the stock level until commit.
		var book model.Book
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, cartItem.BookID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Book not found during order creation", map[string]interface{}{
					"user_id": userID,
					"book_id": cartItem.BookID,
				})
				return nil, ErrBookNotFound
			}
			logger.Error("Failed to fetch book during order creation", err, map[string]interface{}{
				"user_id": userID,
				"book_id": cartItem.BookID,
			})
			return nil, err
		}

		if book.StockQuantity < cartItem.Quantity {
			tx.Rollback()
			logger.Warn("Insufficient stock for order", map[string]interface{}{
				"user_id":   userID,
				"book_id":   book.ID,
				"stock":     book.StockQuantity,
				"requested": cartItem.Quantity,
			})
			return nil, ErrInsufficientStock
		}

		book.StockQuantity -= cartItem.Quantity
		if err := tx.Save(&book).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to decrement stock", err, map[string]interface{}{
				"book_id": book.ID,
			})
			return nil, err
		}

		totalPrice += book.Price * float64(cartItem.Quantity)
		orderItems = append(orderItems, model.OrderItem{
			BookID:          book.ID,
			Quantity:        cartItem.Quantity,
			PriceAtPurchase: book.Price,
		})
	}

	order := &model.Order{
		UserID:          userID,
		TotalPrice:      totalPrice,
		Status:          model.OrderStatusCreated,
		RecipientName:   input.RecipientName,
		RecipientPhone:  input.RecipientPhone,
		ShippingAddress: input.ShippingAddress,
		OrderItems:      orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart after order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	created, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"user_id":     userID,
		"order_id":    created.ID,
		"total_price": created.TotalPrice,
		"item_count":  len(created.OrderItems),
	})
	return created, nil
}

func (s *orderService) GetUserOrders(userID uint, page, size int) ([]model.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	orders, total, err := s.orderRepo.FindByUserID(userID, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *orderService) GetOrderByID(userID uint, orderID uint, isAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	// Someone else's order looks like a missing order to the caller.
	if order.UserID != userID && !isAdmin {
		logger.Warn("Order ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, ErrOrderNotFound
	}

	return order, nil
}

func (s *orderService) CancelOrder(userID uint, orderID uint, isAdmin bool) (*model.Order, error) {
	logger.Info("Canceling order", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	})

	order, err := s.GetOrderByID(userID, orderID, isAdmin)
	if err != nil {
		return nil, err
	}

	if !order.Cancellable() {
		logger.Warn("Order not cancelable in current status", map[string]interface{}{
			"order_id": orderID,
			"status":   order.Status,
		})
		return nil, ErrOrderNotCancelable
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Cancellation restores the stock taken at purchase time.
	for _, item := range order.OrderItems {
		var book model.Book
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, item.BookID).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to fetch book during cancellation", err, map[string]interface{}{
				"book_id": item.BookID,
			})
			return nil, err
		}

		book.StockQuantity += item.Quantity
		if err := tx.Save(&book).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to restore stock", err, map[string]interface{}{
				"book_id": item.BookID,
			})
			return nil, err
		}
	}

	if err := tx.Model(&model.Order{}).
		Where("id = ?", order.ID).
		Update("status", model.OrderStatusCanceled).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit cancellation", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	canceled, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Order canceled", map[string]interface{}{
		"order_id": orderID,
	})
	return canceled, nil
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	return order, nil
}
