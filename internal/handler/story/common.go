package story

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "storymaker/internal/pkg/http"
	storyService "storymaker/internal/service/story"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// writeAttachment 以附件形式返回 JSON，浏览器会按 filename 下载
func writeAttachment(c *gin.Context, filename string, body any) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.JSON(http.StatusOK, body)
}

// bindError 请求体无法绑定
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(
		httputil.CodeInvalidRequest,
		"Invalid request body",
		err.Error(),
	))
}

// serviceError 校验错误返回 400，其余按上游错误返回 500
func serviceError(c *gin.Context, err error) {
	if errors.Is(err, storyService.ErrInvalidRequest) {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(httputil.CodeInvalidRequest, err.Error()))
		return
	}
	c.JSON(http.StatusInternalServerError, httputil.NewErrorResponse(httputil.CodeUpstream, err.Error()))
}
