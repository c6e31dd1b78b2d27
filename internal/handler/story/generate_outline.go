package story

import (
	"github.com/gin-gonic/gin"

	"storymaker/internal/model/story"
)

// GenerateOutline 只生成大纲与场景文案
// @Summary      生成故事大纲
// @Description  生成角色与场景（解说、图片描述），不出图，images 为空数组。
// @Tags         故事生成
// @Accept       json
// @Produce      json
// @Param        request  body      story.StoryRequest   true  "故事生成请求"
// @Success      200      {object}  story.StoryResponse  "不含图片的故事包"
// @Failure      400      {object}  ErrorResponse        "请求参数错误"
// @Failure      500      {object}  ErrorResponse        "模型调用失败"
// @Router       /api/generate-story-outline [post]
func (h *Handler) GenerateOutline(c *gin.Context) {
	var req story.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.storyService.GenerateOutline(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	writeAttachment(c, "story-outline-output.json", resp)
}
