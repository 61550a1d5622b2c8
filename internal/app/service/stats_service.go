package service

import (
	"errors"
	"time"

	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/pkg/logger"
)

var ErrInvalidDateRange = errors.New("invalid date range")

const (
	defaultStatsDays     = 30
	defaultTopSellerSize = 5
	maxTopSellerSize     = 50
)

type StatsService interface {
	DailySales(from, to *time.Time) ([]repository.DailySalesRow, error)
	TopSellers(limit int) ([]repository.TopSellerRow, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

// DailySales aggregates per-day revenue. Missing bounds default to the
// last 30 days ending today. The upper bound is inclusive by date.
func (s *statsService) DailySales(from, to *time.Time) ([]repository.DailySalesRow, error) {
	now := time.Now()

	end := now
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -defaultStatsDays)
	if from != nil {
		start = *from
	}

	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1)

	if !startDay.Before(endDay) {
		logger.Warn("Rejecting daily sales query with inverted range", map[string]interface{}{
			"from": startDay.Format("2006-01-02"),
			"to":   endDay.Format("2006-01-02"),
		})
		return nil, ErrInvalidDateRange
	}

	return s.statsRepo.DailySales(startDay, endDay)
}

func (s *statsService) TopSellers(limit int) ([]repository.TopSellerRow, error) {
	if limit < 1 {
		limit = defaultTopSellerSize
	}
	if limit > maxTopSellerSize {
		limit = maxTopSellerSize
	}
	return s.statsRepo.TopSellers(limit)
}
