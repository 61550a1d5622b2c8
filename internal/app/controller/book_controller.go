package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/internal/app/service"
	apperrors "github.com/jcloud/bookstore-backend/internal/errors"
	"github.com/jcloud/bookstore-backend/internal/middleware"
)

type BookController struct {
	bookService service.BookService
}

func NewBookController(bookService service.BookService) *BookController {
	return &BookController{
		bookService: bookService,
	}
}

type CreateBookRequest struct {
	Title           string  `json:"title" binding:"required"`
	Authors         string  `json:"authors" binding:"required"`
	Publisher       string  `json:"publisher"`
	PublicationDate string  `json:"publication_date"`
	ISBN            string  `json:"isbn"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	Description     string  `json:"description"`
	Categories      string  `json:"categories"`
	StockQuantity   int     `json:"stock_quantity" binding:"gte=0"`
	CoverImageURL   string  `json:"cover_image_url"`
}

type UpdateBookRequest struct {
	Title           *string  `json:"title"`
	Authors         *string  `json:"authors"`
	Publisher       *string  `json:"publisher"`
	PublicationDate *string  `json:"publication_date"`
	Price           *float64 `json:"price" binding:"omitempty,gt=0"`
	Description     *string  `json:"description"`
	Categories      *string  `json:"categories"`
	StockQuantity   *int     `json:"stock_quantity" binding:"omitempty,gte=0"`
	CoverImageURL   *string  `json:"cover_image_url"`
}

// ListBooks returns a filtered, paginated book list
// GET /api/v1/books
func (ctrl *BookController) ListBooks(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	// sort accepts "field" or "field,desc"
	sortParam := c.DefaultQuery("sort", "created_at,desc")
	sortField := sortParam
	ascending := true
	if idx := strings.IndexByte(sortParam, ','); idx >= 0 {
		sortField = sortParam[:idx]
		ascending = sortParam[idx+1:] != "desc"
	}

	filter := repository.BookFilter{
		Keyword:       c.Query("keyword"),
		Category:      c.Query("category"),
		SortBy:        repository.BookSort(sortField),
		SortAscending: ascending,
	}

	result, err := ctrl.bookService.ListBooks(filter, page, size)
	if err != nil {
		log.Error("Failed to list books", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books":       result.Books,
		"total":       result.Total,
		"page":        result.Page,
		"size":        result.Size,
		"total_pages": result.TotalPages,
	})
}

// GetBook returns a single book
// GET /api/v1/books/:id
func (ctrl *BookController) GetBook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	bookID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, "올바르지 않은 도서 ID입니다")
		return
	}

	book, err := ctrl.bookService.GetBookByID(uint(bookID))
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			apperrors.NotFound(c, "도서를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to fetch book", err, map[string]interface{}{
			"book_id": bookID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, book)
}

// CreateBook registers a new book (admin only)
// POST /api/v1/books
func (ctrl *BookController) CreateBook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid book creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithDetails(c, http.StatusBadRequest, "입력값이 올바르지 않습니다", err.Error())
		return
	}

	book, err := ctrl.bookService.CreateBook(service.BookInput{
		Title:           req.Title,
		Authors:         req.Authors,
		Publisher:       req.Publisher,
		PublicationDate: req.PublicationDate,
		ISBN:            req.ISBN,
		Price:           req.Price,
		Description:     req.Description,
		Categories:      req.Categories,
		StockQuantity:   req.StockQuantity,
		CoverImageURL:   req.CoverImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrISBNAlreadyExists) {
			apperrors.Conflict(c, "이미 등록된 ISBN입니다")
			return
		}
		log.Error("Failed to create book", err, map[string]interface{}{
			"title": req.Title,
		})
		apperrors.ParseAndRespond(c, err, "book")
		return
	}

	c.JSON(http.StatusCreated, book)
}

// UpdateBook updates a book (admin only)
// PATCH /api/v1/books/:id
func (ctrl *BookController) UpdateBook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	bookID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, "올바르지 않은 도서 ID입니다")
		return
	}

	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithDetails(c, http.StatusBadRequest, "입력값이 올바르지 않습니다", err.Error())
		return
	}

	book, err := ctrl.bookService.UpdateBook(uint(bookID), service.BookUpdateInput{
		Title:           req.Title,
		Authors:         req.Authors,
		Publisher:       req.Publisher,
		PublicationDate: req.PublicationDate,
		Price:           req.Price,
		Description:     req.Description,
		Categories:      req.Categories,
		StockQuantity:   req.StockQuantity,
		CoverImageURL:   req.CoverImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			apperrors.NotFound(c, "도서를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to update book", err, map[string]interface{}{
			"book_id": bookID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book (admin only)
// DELETE /api/v1/books/:id
func (ctrl *BookController) DeleteBook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	bookID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, "올바르지 않은 도서 ID입니다")
		return
	}

	if err := ctrl.bookService.DeleteBook(uint(bookID)); err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			apperrors.NotFound(c, "도서를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete book", err, map[string]interface{}{
			"book_id": bookID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "도서가 삭제되었습니다",
	})
}
