package story

import (
	"github.com/gin-gonic/gin"

	"storymaker/internal/model/story"
)

// GenerateImage 单图生成
// @Summary      生成单张图片
// @Description  套用风格指令为一条描述出图，可附带角色列表保证形象一致。返回 PNG data URI。
// @Tags         图片生成
// @Accept       json
// @Produce      json
// @Param        request  body      story.ImageRequest   true  "图片生成请求"
// @Success      200      {object}  story.ImageResponse  "图片"
// @Failure      400      {object}  ErrorResponse        "请求参数错误"
// @Failure      500      {object}  ErrorResponse        "图片模型调用失败"
// @Router       /api/generate/image [post]
func (h *Handler) GenerateImage(c *gin.Context) {
	var req story.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.storyService.GenerateImage(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	writeAttachment(c, "image-output.json", resp)
}
