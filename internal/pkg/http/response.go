package http

// 错误码
const (
	CodeInvalidRequest = 40001 // 请求参数错误
	CodeNotFound       = 40400 // 路由不存在（strict_routes）
	CodeInternal       = 50000 // 未捕获异常
	CodeUpstream       = 50001 // 上游模型调用或解析失败
)

// ErrorResponse 错误响应（所有API共用）
// error 字段保持客户端已依赖的格式 {"error": "..."}
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   int    `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:  code,
		Error: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}
