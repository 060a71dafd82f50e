package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoAccessToken 登录跳转地址中没有 access_token
var ErrNoAccessToken = errors.New("access_token missing from redirect url")

// APIError 后端返回的非 2xx 响应
type APIError struct {
	StatusCode   int    `json:"-"`
	FieldName    string `json:"field_name"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	Body         []byte `json:"-"`
}

func (e *APIError) Error() string {
	if e.ErrorMessage != "" {
		if e.FieldName != "" {
			return fmt.Sprintf("api error %d: %s: %s", e.StatusCode, e.FieldName, e.ErrorMessage)
		}
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.ErrorMessage)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Payload 原样返回后端的错误内容，无法解析为 JSON 时包装成 error_message
func (e *APIError) Payload() any {
	var raw any
	if len(e.Body) > 0 && json.Unmarshal(e.Body, &raw) == nil {
		return raw
	}
	return map[string]string{
		"field_name":    e.FieldName,
		"error_code":    e.ErrorCode,
		"error_message": e.Error(),
	}
}

// IsUnauthorized 后端拒绝了 token
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: body}
	// 后端的错误体可能不是 JSON
	_ = json.Unmarshal(body, apiErr)
	return apiErr
}
