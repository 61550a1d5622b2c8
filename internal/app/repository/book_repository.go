package repository

import (
	"fmt"

	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type BookSort string

const (
	BookSortPrice     BookSort = "price"
	BookSortTitle     BookSort = "title"
	BookSortCreatedAt BookSort = "created_at"
	BookSortID        BookSort = "id"
)

// BookFilter describes the list query: substring filters, allow-listed
// sorting and offset pagination.
type BookFilter struct {
	Keyword       string // 제목/저자 통합 검색
	Category      string // 카테고리 부분 일치
	SortBy        BookSort
	SortAscending bool
	Limit         int
	Offset        int
}

type BookRepository interface {
	Create(book *model.Book) error
	BulkCreate(books []model.Book, batchSize int) error
	FindByID(id uint) (*model.Book, error)
	FindByISBN(isbn string) (*model.Book, error)
	FindWithFilter(filter BookFilter) ([]model.Book, int64, error)
	Update(book *model.Book) error
	Delete(id uint) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(book *model.Book) error {
	logger.Debug("Creating book in database", map[string]interface{}{
		"title": book.Title,
		"isbn":  book.ISBN,
	})

	if err := r.db.Create(book).Error; err != nil {
		logger.Error("Failed to create book in database", err, map[string]interface{}{
			"title": book.Title,
			"isbn":  book.ISBN,
		})
		return err
	}

	logger.Debug("Book created in database", map[string]interface{}{
		"book_id": book.ID,
		"title":   book.Title,
	})
	return nil
}

func (r *bookRepository) BulkCreate(books []model.Book, batchSize int) error {
	logger.Info("Bulk creating books in database", map[string]interface{}{
		"count":      len(books),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(books, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create books in database", err, map[string]interface{}{
			"count": len(books),
		})
		return err
	}
	return nil
}

func (r *bookRepository) FindByID(id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) FindByISBN(isbn string) (*model.Book, error) {
	var book model.Book
	if err := r.db.Where("isbn = ?", isbn).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) FindWithFilter(filter BookFilter) ([]model.Book, int64, error) {
	logger.Debug("Finding books with filter", map[string]interface{}{
		"keyword":   filter.Keyword,
		"category":  filter.Category,
		"sort_by":   filter.SortBy,
		"ascending": filter.SortAscending,
		"limit":     filter.Limit,
		"offset":    filter.Offset,
	})

	query := r.db.Model(&model.Book{})

	if filter.Keyword != "" {
		like := fmt.Sprintf("%%%s%%", filter.Keyword)
		query = query.Where("books.title LIKE ? OR books.authors LIKE ?", like, like)
	}

	if filter.Category != "" {
		query = query.Where("books.categories LIKE ?", fmt.Sprintf("%%%s%%", filter.Category))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count books in database", err)
		return nil, 0, err
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}

	// 허용된 컬럼만 정렬 가능, 그 외에는 최신순으로 떨어진다
	switch filter.SortBy {
	case BookSortPrice:
		query = query.Order("books.price " + direction)
	case BookSortTitle:
		query = query.Order("books.title " + direction)
	case BookSortID:
		query = query.Order("books.id " + direction)
	case BookSortCreatedAt:
		query = query.Order("books.created_at " + direction)
	default:
		query = query.Order("books.created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var books []model.Book
	if err := query.Find(&books).Error; err != nil {
		logger.Error("Failed to find books in database", err)
		return nil, 0, err
	}

	logger.Debug("Books found in database", map[string]interface{}{
		"count": len(books),
		"total": total,
	})
	return books, total, nil
}

func (r *bookRepository) Update(book *model.Book) error {
	logger.Debug("Updating book in database", map[string]interface{}{
		"book_id": book.ID,
	})

	if err := r.db.Save(book).Error; err != nil {
		logger.Error("Failed to update book in database", err, map[string]interface{}{
			"book_id": book.ID,
		})
		return err
	}
	return nil
}

func (r *bookRepository) Delete(id uint) error {
	logger.Debug("Deleting book from database", map[string]interface{}{
		"book_id": id,
	})

	if err := r.db.Delete(&model.Book{}, id).Error; err != nil {
		logger.Error("Failed to delete book from database", err, map[string]interface{}{
			"book_id": id,
		})
		return err
	}
	return nil
}
