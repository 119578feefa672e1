package http

// 业务错误码，前三位与 HTTP 状态码一致
const (
	CodeInvalidRequest     = 40001 // 请求体或参数不合法
	CodeUnknownFeature     = 40002 // 不存在的伙伴、角色或成就
	CodeNotFound           = 40401
	CodeInternal           = 50001
	CodeServiceUnavailable = 50301 // 依赖的存储未配置
)

// ErrorResponse 错误响应（所有API共用）
// 只用于请求校验和基础设施错误；生成失败会以降级文案正常返回
type ErrorResponse struct {
	Code    int    `json:"code"`             // 错误码（非0表示错误）
	Message string `json:"message"`          // 错误消息
	Detail  string `json:"detail,omitempty"` // 错误详情（可选）
}

// SuccessResponse 成功响应（所有API共用）
type SuccessResponse struct {
	Code    int    `json:"code"`           // 状态码（0表示成功）
	Message string `json:"message"`        // 响应消息
	Data    any    `json:"data,omitempty"` // 响应数据（可选）
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(message string, data any) *SuccessResponse {
	return &SuccessResponse{
		Code:    0,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}
