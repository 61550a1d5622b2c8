package model

import (
	"time"

	"gorm.io/gorm"
)

// Review 도서 리뷰 모델
// 같은 사용자가 같은 책에 여러 리뷰를 남길 수 있다 (중복 제약 없음).
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`     // 작성자 ID
	BookID    uint           `gorm:"not null;index" json:"book_id"`     // 도서 ID
	Rating    int            `gorm:"not null" json:"rating"`            // 평점 (1-5)
	Content   string         `gorm:"type:text;not null" json:"content"` // 리뷰 내용
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 작성자 정보
	Book Book `gorm:"foreignKey:BookID" json:"-"`              // 도서 정보
}

func (Review) TableName() string {
	return "reviews"
}
