package story

import "github.com/gin-gonic/gin"

// RegisterRoutes 注册故事生成路由
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/generate-story", h.GenerateStoryLegacy)

	api := r.Group("/api")
	{
		api.POST("/generate-story", h.GenerateStory)
		api.POST("/generate-story-outline", h.GenerateOutline)
		api.POST("/generate-image", h.GenerateImage)
		api.POST("/generate/image", h.GenerateImage)
		api.POST("/generate/images", h.GenerateImages)
		api.POST("/generate/content", h.GenerateContent)
	}
}
