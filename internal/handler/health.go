package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "storymaker/internal/pkg/http"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	ready func() bool
}

// NewHealthHandler 创建健康检查处理器，ready 为 nil 时总是就绪
func NewHealthHandler(ready func() bool) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// Health 健康检查
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready 就绪检查
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ready != nil && !h.ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// NoRoute 未注册路由的兜底处理
// 默认返回 200 "OK" 兼容已有客户端；strict 为 true 时返回 404
func NoRoute(strict bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strict {
			c.JSON(http.StatusNotFound, httputil.NewErrorResponse(httputil.CodeNotFound, "Not Found"))
			return
		}
		c.Data(http.StatusOK, "application/json", []byte("OK"))
	}
}
