package model

// ChatRequest 对话请求
// SessionID 非空时使用服务端保存的对话记录，否则使用请求中携带的 History
type ChatRequest struct {
	Message    string     `json:"message" binding:"required"`
	SessionID  string     `json:"session_id,omitempty"`
	ExplorerID string     `json:"explorer_id,omitempty"`
	History    Transcript `json:"history,omitempty"`
}

// StoryRequest 互动故事请求
// Message 为空时开始一个新故事
type StoryRequest struct {
	Message    string     `json:"message,omitempty"`
	SessionID  string     `json:"session_id,omitempty"`
	ExplorerID string     `json:"explorer_id,omitempty"`
	History    Transcript `json:"history,omitempty"`
}

// AwardRequest 授予成就请求
type AwardRequest struct {
	AchievementID string `json:"achievement_id" binding:"required"`
}
