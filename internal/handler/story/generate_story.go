package story

import (
	"github.com/gin-gonic/gin"

	"storymaker/internal/model/story"
)

// GenerateStory 生成完整故事
// @Summary      生成完整故事
// @Description  根据提示词生成角色、场景解说、场景图片描述，并为每个场景出图。images[i] 对应 story.scenes[i]。
// @Tags         故事生成
// @Accept       json
// @Produce      json
// @Param        request  body      story.StoryRequest   true  "故事生成请求"
// @Success      200      {object}  story.StoryResponse  "故事包"
// @Failure      400      {object}  ErrorResponse        "请求参数错误"
// @Failure      500      {object}  ErrorResponse        "模型调用失败"
// @Router       /api/generate-story [post]
func (h *Handler) GenerateStory(c *gin.Context) {
	var req story.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.storyService.GenerateStory(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	writeAttachment(c, "story-output.json", resp)
}
