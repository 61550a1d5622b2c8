package errors

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 표준 에러 응답 구조
type ErrorResponse struct {
	Timestamp string      `json:"timestamp"`         // 에러 발생 시각 (RFC3339)
	Path      string      `json:"path"`              // 요청 경로
	Status    int         `json:"status"`            // HTTP 상태 코드
	Code      string      `json:"code"`              // 에러 코드 (상태 코드와 1:1 매핑)
	Message   string      `json:"message"`           // 사용자 친화적 메시지 (한글)
	Details   interface{} `json:"details,omitempty"` // 필드별 상세 (검증 실패 시)
}

// RespondWithError 에러 응답 헬퍼
func RespondWithError(c *gin.Context, statusCode int, message string) {
	RespondWithDetails(c, statusCode, message, nil)
}

// RespondWithDetails 상세 정보를 포함한 에러 응답 헬퍼
func RespondWithDetails(c *gin.Context, statusCode int, message string, details interface{}) {
	c.JSON(statusCode, ErrorResponse{
		Timestamp: time.Now().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
		Status:    statusCode,
		Code:      CodeForStatus(statusCode),
		Message:   message,
		Details:   details,
	})
}

// 자주 사용하는 에러 응답 단축 함수들

func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "요청이 올바르지 않습니다"
	}
	RespondWithError(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "로그인이 필요합니다"
	}
	RespondWithError(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "접근 권한이 없습니다"
	}
	RespondWithError(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "리소스를 찾을 수 없습니다"
	}
	RespondWithError(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	RespondWithError(c, http.StatusConflict, message)
}

func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "요청 횟수 제한을 초과했습니다. 잠시 후 다시 시도해주세요"
	}
	RespondWithError(c, http.StatusTooManyRequests, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요"
	}
	RespondWithError(c, http.StatusInternalServerError, message)
}

// RespondWithValidationError 검증 에러 (필드별 오류 메시지 포함)
func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	RespondWithDetails(c, http.StatusBadRequest, "입력값이 올바르지 않습니다", fields)
}
