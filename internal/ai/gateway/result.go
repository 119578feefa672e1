package gateway

import (
	"cosmoconnect/internal/model"
)

// ErrorKind 失败分类
type ErrorKind string

const (
	KindNone        ErrorKind = ""             // 成功时为空
	KindRateLimited ErrorKind = "rate_limited" // RESOURCE_EXHAUSTED / 429
	KindNetwork     ErrorKind = "network"      // 连接、超时等传输错误
	KindUnknown     ErrorKind = "unknown"
)

// String 返回分类字符串
func (k ErrorKind) String() string {
	if k == KindNone {
		return "none"
	}
	return string(k)
}

// Status 结果状态
type Status int

const (
	StatusSuccess Status = iota
	StatusDegraded
)

// GenerationRequest 一次生成请求，发出后不可变
type GenerationRequest struct {
	Feature           string           // 功能名，仅用于日志
	Prompt            string           // 提示词或下一条消息
	SystemInstruction string           // 可选系统指令
	History           model.Transcript // 可选历史记录
	Chat              bool             // 以会话方式发送（即使没有历史）
}

// Result 生成结果：Success 或 Degraded，二者必居其一
type Result struct {
	Text   string
	Status Status
	Reason ErrorKind
}

// Success 成功结果，文本原样返回
func Success(text string) Result {
	return Result{Text: text, Status: StatusSuccess}
}

// Degraded 降级结果，文本为兜底文案
func Degraded(fallbackText string, reason ErrorKind) Result {
	return Result{Text: fallbackText, Status: StatusDegraded, Reason: reason}
}

// IsDegraded 是否为降级结果
func (r Result) IsDegraded() bool {
	return r.Status == StatusDegraded
}

// Response 转换为接口响应
func (r Result) Response() model.TextResponse {
	resp := model.TextResponse{Text: r.Text, Degraded: r.IsDegraded()}
	if r.IsDegraded() {
		resp.Reason = r.Reason.String()
	}
	return resp
}

const (
	DefaultRateLimitedText = "So many explorers are asking questions right now! Please try again shortly. ✨"
	DefaultGenericText     = "Oops! Something got lost in space. Please try again! 🚀"
)

// Fallback 某个功能的兜底文案
// RateLimited 用于限流，Generic 用于其它失败；为空时使用网关默认文案
type Fallback struct {
	RateLimited string
	Generic     string
}

// For 按失败分类选择兜底文案
func (f Fallback) For(kind ErrorKind) string {
	if kind == KindRateLimited {
		if f.RateLimited != "" {
			return f.RateLimited
		}
		return DefaultRateLimitedText
	}
	if f.Generic != "" {
		return f.Generic
	}
	return DefaultGenericText
}
