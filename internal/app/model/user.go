package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string // 사용자 권한 타입

const (
	RoleUser  UserRole = "USER"  // 일반 사용자 권한
	RoleAdmin UserRole = "ADMIN" // 관리자 권한
)

type Gender string // 성별

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                        // 사용자 ID
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`           // 이메일 (로그인 ID)
	PasswordHash string         `gorm:"not null" json:"-"`                           // 비밀번호 해시
	Name         string         `gorm:"not null" json:"name"`                        // 이름
	BirthDate    string         `gorm:"type:varchar(20)" json:"birth_date"`          // 생년월일
	Gender       *Gender        `gorm:"type:varchar(10)" json:"gender,omitempty"`    // 성별
	Address      string         `json:"address"`                                     // 주소
	PhoneNumber  string         `gorm:"type:varchar(20)" json:"phone_number"`        // 연락처
	Role         UserRole       `gorm:"type:varchar(20);default:'USER'" json:"role"` // 권한
	IsActive     bool           `gorm:"default:true" json:"is_active"`               // 계정 활성 여부
	CreatedAt    time.Time      `json:"created_at"`                                  // 가입 시각
	UpdatedAt    time.Time      `json:"updated_at"`                                  // 수정 시각
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                              // 삭제 시각(소프트 삭제)
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
