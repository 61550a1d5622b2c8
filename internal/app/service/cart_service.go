package service

import (
	"errors"

	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

type CartService interface {
	GetUserCart(userID uint) ([]model.CartItem, error)
	AddToCart(userID, bookID uint, quantity int) (*model.CartItem, error)
	// UpdateCartItem sets the quantity. A non-positive quantity removes
	// the row and reports deleted=true.
	UpdateCartItem(userID, cartItemID uint, quantity int) (*model.CartItem, bool, error)
	RemoveFromCart(userID, cartItemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo repository.CartRepository
	bookRepo repository.BookRepository
}

func NewCartService(cartRepo repository.CartRepository, bookRepo repository.BookRepository) CartService {
	return &cartService{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

func (s *cartService) GetUserCart(userID uint) ([]model.CartItem, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})
	return items, nil
}

func (s *cartService) AddToCart(userID, bookID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":  userID,
		"book_id":  bookID,
		"quantity": quantity,
	})

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.bookRepo.FindByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: book not found", map[string]interface{}{
				"user_id": userID,
				"book_id": bookID,
			})
			return nil, ErrBookNotFound
		}
		logger.Error("Failed to fetch book", err, map[string]interface{}{
			"book_id": bookID,
		})
		return nil, err
	}

	// Adding a book already in the cart merges into the existing row.
	existing, err := s.cartRepo.FindByUserAndBook(userID, bookID)
	if err == nil {
		existing.Quantity += quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		merged, err := s.cartRepo.FindByID(existing.ID)
		if err != nil {
			return nil, err
		}
		logger.Info("Cart item quantity merged", map[string]interface{}{
			"cart_item_id": merged.ID,
			"quantity":     merged.Quantity,
		})
		return merged, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id": userID,
			"book_id": bookID,
		})
		return nil, err
	}

	item := &model.CartItem{
		UserID:   userID,
		BookID:   bookID,
		Quantity: quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}

	created, err := s.cartRepo.FindByID(item.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"cart_item_id": created.ID,
	})
	return created, nil
}

func (s *cartService) UpdateCartItem(userID, cartItemID uint, quantity int) (*model.CartItem, bool, error) {
	logger.Info("Updating cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})

	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrCartItemNotFound
		}
		return nil, false, err
	}

	// Another user's cart row is reported as missing, not forbidden.
	if item.UserID != userID {
		logger.Warn("Cart item ownership mismatch", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		return nil, false, ErrCartItemNotFound
	}

	if quantity <= 0 {
		if err := s.cartRepo.Delete(item.ID); err != nil {
			return nil, false, err
		}
		logger.Info("Cart item removed by zero quantity", map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return nil, true, nil
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, false, err
	}

	return item, false, nil
}

func (s *cartService) RemoveFromCart(userID, cartItemID uint) error {
	logger.Info("Removing item from cart", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	if item.UserID != userID {
		return ErrCartItemNotFound
	}

	return s.cartRepo.Delete(item.ID)
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})
	return s.cartRepo.DeleteByUserID(userID)
}
