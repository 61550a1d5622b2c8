package model

import "time"

// Favorite 도서 찜 모델
// (user_id, book_id) 복합 유니크 인덱스가 토글의 동시성 안전을 보장한다.
// 토글이 실제 row 삭제/생성이어야 하므로 소프트 삭제를 쓰지 않는다.
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_user_book_favorite,unique" json:"user_id"` // 사용자 ID
	BookID    uint      `gorm:"not null;index:idx_user_book_favorite,unique" json:"book_id"` // 도서 ID
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Book Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
