package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string // 주문 상태 코드

const (
	OrderStatusCreated   OrderStatus = "CREATED"   // 주문 생성됨
	OrderStatusPaid      OrderStatus = "PAID"      // 결제 완료
	OrderStatusCanceled  OrderStatus = "CANCELED"  // 주문 취소
	OrderStatusShipped   OrderStatus = "SHIPPED"   // 배송 중
	OrderStatusDelivered OrderStatus = "DELIVERED" // 배송 완료
)

type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                               // 주문 ID
	UserID          uint           `gorm:"not null;index" json:"user_id"`                      // 주문자 ID
	TotalPrice      float64        `gorm:"not null" json:"total_price"`                        // 총 결제 금액 (주문 시점 고정)
	Status          OrderStatus    `gorm:"type:varchar(20);default:'CREATED'" json:"status"`   // 주문 상태
	RecipientName   string         `gorm:"type:varchar(100)" json:"recipient_name"`            // 받는 사람 이름
	RecipientPhone  string         `gorm:"type:varchar(20)" json:"recipient_phone"`            // 받는 사람 전화번호
	ShippingAddress string         `gorm:"type:varchar(255)" json:"shipping_address"`          // 배송지 주소
	CreatedAt       time.Time      `json:"created_at"`                                         // 생성 시각
	UpdatedAt       time.Time      `json:"updated_at"`                                         // 수정 시각
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                     // 삭제 시각(소프트 삭제)

	User       User        `gorm:"foreignKey:UserID" json:"-"`                                                  // 주문자 정보
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"` // 주문 항목 목록
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID              uint      `gorm:"primarykey" json:"id"`            // 주문 항목 ID
	OrderID         uint      `gorm:"not null;index" json:"order_id"`  // 주문 ID
	BookID          uint      `gorm:"not null;index" json:"book_id"`   // 도서 ID
	Quantity        int       `gorm:"not null" json:"quantity"`        // 수량
	PriceAtPurchase float64   `gorm:"not null" json:"price_at_purchase"` // 구매 당시 단가 (이후 가격 변동과 무관)
	CreatedAt       time.Time `json:"created_at"`                      // 생성 시각

	Order Order `gorm:"foreignKey:OrderID" json:"-"`            // 주문 정보
	Book  Book  `gorm:"foreignKey:BookID" json:"book,omitempty"` // 도서 정보
}

func (OrderItem) TableName() string {
	return "order_items"
}

// Cancellable reports whether the order may still be canceled by the buyer.
// Once any downstream processing has begun the transition is closed.
func (o *Order) Cancellable() bool {
	return o.Status == OrderStatusCreated
}
