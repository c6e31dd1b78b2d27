package middleware

import (
	"github.com/gin-gonic/gin"

	"storymaker/internal/pkg/id"
)

// 请求ID的 header 与 context key
const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID 透传或生成请求ID，非法的客户端ID会被替换
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := id.Normalize(c.GetHeader(RequestIDHeader))
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
