package model

import (
	"time"

	"gorm.io/gorm"
)

type Book struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Title           string         `gorm:"not null;index" json:"title"`
	Authors         string         `gorm:"type:text" json:"authors"`    // 쉼표 구분 (예: "홍길동,김철수")
	Categories      string         `gorm:"type:text" json:"categories"` // 쉼표 구분 (예: "IT,컴퓨터")
	Publisher       string         `gorm:"type:varchar(100)" json:"publisher"`
	PublicationDate string         `gorm:"type:varchar(20)" json:"publication_date"`
	ISBN            string         `gorm:"type:varchar(20);uniqueIndex" json:"isbn"`
	Price           float64        `gorm:"not null" json:"price"`
	Description     string         `gorm:"type:text" json:"description"`
	StockQuantity   int            `gorm:"default:0" json:"stock_quantity"`
	CoverImageURL   string         `json:"cover_image_url"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	CartItems  []CartItem  `gorm:"foreignKey:BookID" json:"-"`
	OrderItems []OrderItem `gorm:"foreignKey:BookID" json:"-"`
	Reviews    []Review    `gorm:"foreignKey:BookID" json:"-"`
}

func (Book) TableName() string {
	return "books"
}
