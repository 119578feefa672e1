package id

import (
	"github.com/google/uuid"
)

// New 生成按时间有序的 UUIDv7（string格式），用作会话 ID 和请求 ID
func New() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return u.String()
}

// IsValid 验证是否为规范格式的 UUID
// 会话 ID 直接拼进存储 key，只接受 36 位小写带连字符的形式，拒绝全零 UUID
func IsValid(id string) bool {
	u, err := uuid.Parse(id)
	if err != nil || u == uuid.Nil {
		return false
	}
	return u.String() == id
}
