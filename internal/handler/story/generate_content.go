package story

import (
	"github.com/gin-gonic/gin"

	"storymaker/internal/model/story"
)

// GenerateContent 按主题生成内容
// @Summary      按主题生成故事内容
// @Description  以 "A <type> about <topic>" 为提示词生成故事，type 缺省为 story，不出图。
// @Tags         故事生成
// @Accept       json
// @Produce      json
// @Param        request  body      story.ContentRequest   true  "内容生成请求"
// @Success      200      {object}  story.ContentResponse  "故事"
// @Failure      400      {object}  ErrorResponse          "请求参数错误"
// @Failure      500      {object}  ErrorResponse          "模型调用失败"
// @Router       /api/generate/content [post]
func (h *Handler) GenerateContent(c *gin.Context) {
	var req story.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.storyService.GenerateContent(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	writeAttachment(c, "content-output.json", resp)
}
