package errors

import "net/http"

// 에러 코드 상수 정의
// HTTP 상태 코드와 1:1 매핑되는 고정 열거형
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	CodeBadRequest          = "BAD_REQUEST"            // 잘못된 요청
	CodeUnauthorized        = "UNAUTHORIZED"           // 인증 필요/실패
	CodeForbidden           = "FORBIDDEN"              // 권한 없음
	CodeNotFound            = "NOT_FOUND"              // 리소스 없음
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"     // 허용되지 않은 메소드
	CodeNotAcceptable       = "NOT_ACCEPTABLE"         // 수용 불가 포맷
	CodeRequestTimeout      = "REQUEST_TIMEOUT"        // 요청 시간 초과
	CodeConflict            = "CONFLICT"               // 유니크 제약 충돌
	CodeUnsupportedMedia    = "UNSUPPORTED_MEDIA_TYPE" // 지원하지 않는 미디어 타입
	CodeUnprocessableEntity = "UNPROCESSABLE_ENTITY"   // 처리 불가 데이터
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"      // 요청 횟수 제한 초과
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"  // 서버 내부 오류
	CodeBadGateway          = "BAD_GATEWAY"            // 게이트웨이 오류
	CodeServiceUnavailable  = "SERVICE_UNAVAILABLE"    // 서버 과부하/점검
)

var statusCodes = map[int]string{
	http.StatusBadRequest:           CodeBadRequest,
	http.StatusUnauthorized:         CodeUnauthorized,
	http.StatusForbidden:            CodeForbidden,
	http.StatusNotFound:             CodeNotFound,
	http.StatusMethodNotAllowed:     CodeMethodNotAllowed,
	http.StatusNotAcceptable:        CodeNotAcceptable,
	http.StatusRequestTimeout:       CodeRequestTimeout,
	http.StatusConflict:             CodeConflict,
	http.StatusUnsupportedMediaType: CodeUnsupportedMedia,
	http.StatusUnprocessableEntity:  CodeUnprocessableEntity,
	http.StatusTooManyRequests:      CodeTooManyRequests,
	http.StatusInternalServerError:  CodeInternalServerError,
	http.StatusBadGateway:           CodeBadGateway,
	http.StatusServiceUnavailable:   CodeServiceUnavailable,
}

// CodeForStatus maps an HTTP status to its error code constant.
func CodeForStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return "HTTP_ERROR"
}
