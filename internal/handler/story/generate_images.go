package story

import (
	"github.com/gin-gonic/gin"

	"storymaker/internal/model/story"
)

// GenerateImages 批量出图
// @Summary      批量生成场景图片
// @Description  为每个场景出图，描述依次取 imageDescription、image、description。images[i] 对应 scenes[i]。
// @Tags         图片生成
// @Accept       json
// @Produce      json
// @Param        request  body      story.ImagesRequest   true  "批量出图请求"
// @Success      200      {object}  story.ImagesResponse  "图片列表"
// @Failure      400      {object}  ErrorResponse         "请求参数错误"
// @Failure      500      {object}  ErrorResponse         "图片模型调用失败"
// @Router       /api/generate/images [post]
func (h *Handler) GenerateImages(c *gin.Context) {
	var req story.ImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.storyService.GenerateImages(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	writeAttachment(c, "images-output.json", resp)
}
