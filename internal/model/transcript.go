package model

import "fmt"

// Role 对话角色
type Role string

const (
	RoleUser      Role = "user"      // 小朋友发出的消息
	RoleAssistant Role = "assistant" // 生成式后端的回复
)

// IsValid 检查角色是否有效
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn 对话中的一轮发言
type Turn struct {
	Role Role   `bson:"role" json:"role"`
	Text string `bson:"text" json:"text"`
}

// Transcript 有序的对话记录
// 顺序即上下文：下一次调用按此顺序回放给后端。
// 除显式重置外只追加，网关从不修改调用方持有的 Transcript。
type Transcript []Turn

// Clone 返回一份独立副本（非 nil）
func (t Transcript) Clone() Transcript {
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

// Append 追加一次完整的问答，返回新的 Transcript，原值不变
func (t Transcript) Append(userText, assistantText string) Transcript {
	out := make(Transcript, len(t), len(t)+2)
	copy(out, t)
	return append(out,
		Turn{Role: RoleUser, Text: userText},
		Turn{Role: RoleAssistant, Text: assistantText},
	)
}

// UserTurns 统计用户发言数
func (t Transcript) UserTurns() int {
	n := 0
	for _, turn := range t {
		if turn.Role == RoleUser {
			n++
		}
	}
	return n
}

// Validate 校验每一轮的角色
func (t Transcript) Validate() error {
	for i, turn := range t {
		if !turn.Role.IsValid() {
			return fmt.Errorf("turn %d: invalid role %q", i, turn.Role)
		}
	}
	return nil
}
