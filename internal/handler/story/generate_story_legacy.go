package story

import (
	"github.com/gin-gonic/gin"

	"storymaker/internal/model/story"
)

// GenerateStoryLegacy 第一代生成接口，返回 {metadata, images}
// @Summary      生成完整故事（旧版结构）
// @Description  与 /api/generate-story 相同的流程，响应为第一代结构：metadata.scenes 只含 narration 与 imageDescription，角色以 name→description 映射返回。
// @Tags         故事生成
// @Accept       json
// @Produce      json
// @Param        request  body      story.StoryRequest         true  "故事生成请求"
// @Success      200      {object}  story.LegacyStoryResponse  "旧版故事包"
// @Failure      400      {object}  ErrorResponse              "请求参数错误"
// @Failure      500      {object}  ErrorResponse              "模型调用失败"
// @Router       /generate-story [post]
func (h *Handler) GenerateStoryLegacy(c *gin.Context) {
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

	writeAttachment(c, "story_output.json", story.NewLegacyStoryResponse(resp))
}
