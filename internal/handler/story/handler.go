package story

import (
	storyService "storymaker/internal/service/story"
)

// Handler 故事生成处理器
// 所有生成接口都通过这个结构体访问 Service
type Handler struct {
	storyService storyService.StoryService
}

// NewHandler 创建故事生成处理器
func NewHandler(svc storyService.StoryService) *Handler {
	return &Handler{
		storyService: svc,
	}
}
