package utils

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// SessionIDLength 会话ID长度
const SessionIDLength = 32

// GenerateSessionID 生成会话ID
func GenerateSessionID() (string, error) {
	id, err := gonanoid.Generate(idAlphabet, SessionIDLength)
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return id, nil
}

// GenerateState 生成登录请求的 state 参数
func GenerateState() (string, error) {
	return gonanoid.Generate(idAlphabet, 16)
}

// ValidateSessionID 验证会话ID格式
func ValidateSessionID(id string) bool {
	if len(id) != SessionIDLength {
		return false
	}
	for _, char := range id {
		if !strings.ContainsRune(idAlphabet, char) {
			return false
		}
	}
	return true
}
