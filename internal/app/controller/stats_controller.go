package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcloud/bookstore-backend/internal/app/service"
	apperrors "github.com/jcloud/bookstore-backend/internal/errors"
	"github.com/jcloud/bookstore-backend/internal/middleware"
)

type StatsController struct {
	statsService service.StatsService
}

func NewStatsController(statsService service.StatsService) *StatsController {
	return &StatsController{
		statsService: statsService,
	}
}

const statsDateLayout = "2006-01-02"

// DailySales returns per-day order counts and revenue (admin only)
// GET /api/v1/stats/daily
func (ctrl *StatsController) DailySales(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(statsDateLayout, v)
		if err != nil {
			apperrors.BadRequest(c, "날짜 형식은 YYYY-MM-DD 입니다")
			return
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(statsDateLayout, v)
		if err != nil {
			apperrors.BadRequest(c, "날짜 형식은 YYYY-MM-DD 입니다")
			return
		}
		to = &t
	}

	rows, err := ctrl.statsService.DailySales(from, to)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			apperrors.BadRequest(c, "시작일이 종료일보다 늦을 수 없습니다")
			return
		}
		log.Error("Failed to fetch daily sales", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"daily_sales": rows,
	})
}

// TopSellers returns the best selling books (admin only)
// GET /api/v1/stats/top-sellers
func (ctrl *StatsController) TopSellers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	rows, err := ctrl.statsService.TopSellers(limit)
	if err != nil {
		log.Error("Failed to fetch top sellers", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"top_sellers": rows,
	})
}
