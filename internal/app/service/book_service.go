package service

import (
	"errors"
	"math"

	"github.com/jcloud/bookstore-backend/internal/app/model"
	"github.com/jcloud/bookstore-backend/internal/app/repository"
	"github.com/jcloud/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrISBNAlreadyExists = errors.New("isbn already exists")
)

type BookInput struct {
	Title           string
	Authors         string
	Publisher       string
	PublicationDate string
	ISBN            string
	Price           float64
	Description     string
	Categories      string
	StockQuantity   int
	CoverImageURL   string
}

type BookUpdateInput struct {
	Title           *string
	Authors         *string
	Publisher       *string
	PublicationDate *string
	Price           *float64
	Description     *string
	Categories      *string
	StockQuantity   *int
	CoverImageURL   *string
}

// BookPage is an offset-paginated list result.
type BookPage struct {
	Books      []model.Book
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

type BookService interface {
	CreateBook(input BookInput) (*model.Book, error)
	GetBookByID(id uint) (*model.Book, error)
	ListBooks(filter repository.BookFilter, page, size int) (*BookPage, error)
	UpdateBook(id uint, input BookUpdateInput) (*model.Book, error)
	DeleteBook(id uint) error
}

type bookService struct {
	bookRepo repository.BookRepository
}

func NewBookService(bookRepo repository.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

func (s *bookService) CreateBook(input BookInput) (*model.Book, error) {
	logger.Info("Creating book", map[string]interface{}{
		"title": input.Title,
		"isbn":  input.ISBN,
	})

	if input.ISBN != "" {
		if _, err := s.bookRepo.FindByISBN(input.ISBN); err == nil {
			logger.Warn("Book creation failed: duplicate ISBN", map[string]interface{}{
				"isbn": input.ISBN,
			})
			return nil, ErrISBNAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	book := &model.Book{
		Title:           input.Title,
		Authors:         input.Authors,
		Publisher:       input.Publisher,
		PublicationDate: input.PublicationDate,
		ISBN:            input.ISBN,
		Price:           input.Price,
		Description:     input.Description,
		Categories:      input.Categories,
		StockQuantity:   input.StockQuantity,
		CoverImageURL:   input.CoverImageURL,
	}

	if err := s.bookRepo.Create(book); err != nil {
		logger.Error("Failed to create book", err, map[string]interface{}{
			"title": input.Title,
		})
		return nil, err
	}

	logger.Info("Book created successfully", map[string]interface{}{
		"book_id": book.ID,
	})
	return book, nil
}

func (s *bookService) GetBookByID(id uint) (*model.Book, error) {
	book, err := s.bookRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		logger.Error("Failed to fetch book", err, map[string]interface{}{
			"book_id": id,
		})
		return nil, err
	}
	return book, nil
}

func (s *bookService) ListBooks(filter repository.BookFilter, page, size int) (*BookPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	filter.Limit = size
	filter.Offset = (page - 1) * size

	books, total, err := s.bookRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(size)))

	return &BookPage{
		Books:      books,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}, nil
}

func (s *bookService) UpdateBook(id uint, input BookUpdateInput) (*model.Book, error) {
	logger.Info("Updating book", map[string]interface{}{
		"book_id": id,
	})

	book, err := s.bookRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Authors != nil {
		book.Authors = *input.Authors
	}
	if input.Publisher != nil {
		book.Publisher = *input.Publisher
	}
	if input.PublicationDate != nil {
		book.PublicationDate = *input.PublicationDate
	}
	if input.Price != nil {
		book.Price = *input.Price
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.Categories != nil {
		book.Categories = *input.Categories
	}
	if input.StockQuantity != nil {
		book.StockQuantity = *input.StockQuantity
	}
	if input.CoverImageURL != nil {
		book.CoverImageURL = *input.CoverImageURL
	}

	if err := s.bookRepo.Update(book); err != nil {
		logger.Error("Failed to update book", err, map[string]interface{}{
			"book_id": id,
		})
		return nil, err
	}

	return book, nil
}

func (s *bookService) DeleteBook(id uint) error {
	logger.Info("Deleting book", map[string]interface{}{
		"book_id": id,
	})

	if _, err := s.bookRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	if err := s.bookRepo.Delete(id); err != nil {
		logger.Error("Failed to delete book", err, map[string]interface{}{
			"book_id": id,
		})
		return err
	}

	logger.Info("Book deleted", map[string]interface{}{
		"book_id": id,
	})
	return nil
}
