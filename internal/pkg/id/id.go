package id

import (
	"github.com/google/uuid"
)

// New 生成新的UUID（string格式），用于 request_id 和 TTS reqid
func New() string {
	return uuid.New().String()
}

// Normalize 校验外部传入的请求ID，不合法时重新生成
func Normalize(raw string) string {
	if _, err := uuid.Parse(raw); err != nil {
		return New()
	}
	return raw
}
