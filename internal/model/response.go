package model

// TextResponse 单次生成的响应
// Degraded 为 true 时 Text 是预先编写的兜底文案
type TextResponse struct {
	Text     string `json:"text"`
	Degraded bool   `json:"degraded"`
	Reason   string `json:"reason,omitempty"`
}

// ChatResponse 对话响应
type ChatResponse struct {
	Message    string     `json:"message"`
	Degraded   bool       `json:"degraded"`
	Reason     string     `json:"reason,omitempty"`
	SessionID  string     `json:"session_id,omitempty"`
	Transcript Transcript `json:"transcript"`
	Awarded    []string   `json:"awarded,omitempty"`
}

// AchievementView 成就及是否已获得
type AchievementView struct {
	Achievement
	Earned bool `json:"earned"`
}

// SpaceOverview 探索首页数据
type SpaceOverview struct {
	APOD APOD         `json:"apod"`
	CMEs []CME        `json:"cmes"`
	Mood TextResponse `json:"mood"`
}
