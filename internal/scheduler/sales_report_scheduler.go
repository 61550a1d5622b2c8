package scheduler

import (
	"time"

	"github.com/jcloud/bookstore-backend/internal/app/service"
	"github.com/jcloud/bookstore-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SalesReportScheduler 일일 매출 집계 스케줄러
type SalesReportScheduler struct {
	cron         *cron.Cron
	statsService service.StatsService
}

// NewSalesReportScheduler 매출 리포트 스케줄러 생성
func NewSalesReportScheduler(statsService service.StatsService) *SalesReportScheduler {
	return &SalesReportScheduler{
		cron:         cron.New(),
		statsService: statsService,
	}
}

// Start 스케줄러 시작
func (s *SalesReportScheduler) Start() error {
	// 매일 0시 5분에 전날 매출을 집계해서 로그로 남긴다
	_, err := s.cron.AddFunc("5 0 * * *", s.runDailyReport)
	if err != nil {
		logger.Error("Failed to add cron job for sales report", err)
		return err
	}

	s.cron.Start()
	logger.Info("Sales report scheduler started successfully (daily at 00:05)", nil)

	return nil
}

func (s *SalesReportScheduler) runDailyReport() {
	logger.Info("Starting scheduled daily sales report", nil)

	yesterday := time.Now().AddDate(0, 0, -1)
	rows, err := s.statsService.DailySales(&yesterday, &yesterday)
	if err != nil {
		logger.Error("Failed to build daily sales report", err)
		return
	}

	if len(rows) == 0 {
		logger.Info("Daily sales report: no orders yesterday", map[string]interface{}{
			"date": yesterday.Format("2006-01-02"),
		})
		return
	}

	for _, row := range rows {
		logger.Info("Daily sales report", map[string]interface{}{
			"date":        row.Date,
			"order_count": row.OrderCount,
			"total_sales": row.TotalSales,
		})
	}
}

// Stop 스케줄러 중지
func (s *SalesReportScheduler) Stop() {
	logger.Info("Stopping sales report scheduler...", nil)
	s.cron.Stop()
	logger.Info("Sales report scheduler stopped", nil)
}
