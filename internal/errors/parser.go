package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// PostgreSQL error classes (lib/pq Code values)
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqNotNullViolation    = "23502"
	pqCheckViolation      = "23514"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Status  int    // HTTP 상태 코드
	Message string // 사용자 친화적 메시지
}

// ParseError 에러를 파싱하여 상태 코드와 사용자 친화적 메시지로 변환
// 보안상 민감한 정보는 숨기되, 사용자가 문제를 해결할 수 있는 정보 제공
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Message: "서버 오류가 발생했습니다",
		}
	}

	// 1. GORM 기본 에러
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL 에러
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return parseDuplicateKeyError(pqErr)
		case pqForeignKeyViolation:
			return ErrorInfo{
				Status:  http.StatusBadRequest,
				Message: "참조하는 데이터가 존재하지 않습니다",
			}
		case pqNotNullViolation:
			return ErrorInfo{
				Status:  http.StatusBadRequest,
				Message: "필수 항목이 누락되었습니다",
			}
		case pqCheckViolation:
			return ErrorInfo{
				Status:  http.StatusBadRequest,
				Message: "입력값이 허용 범위를 벗어났습니다",
			}
		}
	}

	// SQLite (테스트 환경) unique violation은 타입이 없으므로 문자열로 판별
	errStrLower := strings.ToLower(err.Error())
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Message: "이미 존재하는 데이터입니다",
		}
	}

	// 3. 네트워크/연결 에러
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Status:  http.StatusServiceUnavailable,
			Message: "외부 서비스 연결에 실패했습니다. 잠시 후 다시 시도해주세요",
		}
	}

	// 4. 기본 내부 서버 오류
	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// parseDuplicateKeyError Unique constraint 위반 에러 파싱
func parseDuplicateKeyError(pqErr *pq.Error) ErrorInfo {
	constraint := strings.ToLower(pqErr.Constraint)

	// 이메일 중복
	if strings.Contains(constraint, "email") {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Message: "이미 사용 중인 이메일입니다",
		}
	}

	// ISBN 중복
	if strings.Contains(constraint, "isbn") {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Message: "이미 등록된 ISBN입니다",
		}
	}

	// 찜 중복 (동시 토글)
	if strings.Contains(constraint, "favorite") {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Message: "이미 찜한 도서입니다",
		}
	}

	return ErrorInfo{
		Status:  http.StatusConflict,
		Message: "이미 존재하는 데이터입니다",
	}
}

func getNotFoundMessage(context string) string {
	switch context {
	case "user":
		return "사용자를 찾을 수 없습니다"
	case "book":
		return "책을 찾을 수 없습니다"
	case "cart":
		return "장바구니 아이템을 찾을 수 없습니다"
	case "order":
		return "주문을 찾을 수 없습니다"
	case "review":
		return "리뷰를 찾을 수 없습니다"
	default:
		return "리소스를 찾을 수 없습니다"
	}
}

func getDefaultErrorMessage(context string) string {
	if context == "" {
		return "서버 오류가 발생했습니다"
	}
	return "요청을 처리하지 못했습니다 (" + context + ")"
}

// ParseAndRespond 에러를 파싱해서 표준 엔벨로프로 응답
func ParseAndRespond(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, info.Status, info.Message)
}
