package repository

import (
	"time"

	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

// DailySalesRow aggregates one day of non-canceled orders.
type DailySalesRow struct {
	Date       string  `json:"date"`
	OrderCount int64   `json:"order_count"`
	TotalSales float64 `json:"total_sales"`
}

// TopSellerRow aggregates units sold per book across non-canceled orders.
type TopSellerRow struct {
	BookID    uint    `json:"book_id"`
	Title     string  `json:"title"`
	UnitsSold int64   `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

type StatsRepository interface {
	DailySales(from, to time.Time) ([]DailySalesRow, error)
	TopSellers(limit int) ([]TopSellerRow, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) DailySales(from, to time.Time) ([]DailySalesRow, error) {
	logger.Debug("Aggregating daily sales", map[string]interface{}{
		"from": from.Format("2006-01-02"),
		"to":   to.Format("2006-01-02"),
	})

	var rows []DailySalesRow
	err := r.db.Model(&model.Order{}).
		Select("DATE(orders.created_at) AS date, COUNT(*) AS order_count, COALESCE(SUM(orders.total_price), 0) AS total_sales").
		Where("orders.status <> ?", model.OrderStatusCanceled).
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Group("DATE(orders.created_at)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate daily sales", err)
		return nil, err
	}

	return rows, nil
}

func (r *statsRepository) TopSellers(limit int) ([]TopSellerRow, error) {
	logger.Debug("Aggregating top sellers", map[string]interface{}{
		"limit": limit,
	})

	var rows []TopSellerRow
	err := r.db.Model(&model.OrderItem{}).
		Select("order_items.book_id AS book_id, books.title AS title, SUM(order_items.quantity) AS units_sold, SUM(order_items.quantity * order_items.price_at_purchase) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.status <> ? AND orders.deleted_at IS NULL", model.OrderStatusCanceled).
		Joins("JOIN books ON books.id = order_items.book_id").
		Group("order_items.book_id, books.title").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate top sellers", err)
		return nil, err
	}

	return rows, nil
}
