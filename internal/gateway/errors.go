package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTimeout      = errors.New("gateway: request timed out")
	ErrNetwork      = errors.New("gateway: network error")
	ErrUnauthorized = errors.New("gateway: unauthorized")
)

const (
	MsgTimeout       = "요청 시간이 초과되었습니다."
	MsgNetwork       = "네트워크 오류가 발생했습니다."
	MsgServer        = "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	MsgLoginRequired = "로그인이 필요합니다."
)

// APIError 는 백엔드가 2xx 가 아닌 응답을 돌려준 경우다.
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway: %s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("gateway: %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// StatusOf 는 err 가 APIError 면 상태 코드를, 아니면 0 을 돌려준다.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf 는 백엔드가 내려준 메시지가 있으면 그것을 돌려준다.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return ""
}
