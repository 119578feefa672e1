package ctxutil

import (
	"context"
	"strings"
)

// explorerIDKeyType 使用私有类型避免与其他 context key 冲突
type explorerIDKeyType struct{}

var explorerIDKey = explorerIDKeyType{}

// WithExplorerID 将 explorerID 注入到 context 中
// 空白 ID 不注入
func WithExplorerID(ctx context.Context, explorerID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	explorerID = strings.TrimSpace(explorerID)
	if explorerID == "" {
		return ctx
	}
	return context.WithValue(ctx, explorerIDKey, explorerID)
}

// GetExplorerID 从 context 中解析 explorerID
// 返回值：
//   - string: 解析到的 explorerID
//   - bool  : 是否存在有效的 explorerID
func GetExplorerID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(explorerIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// ResolveExplorerID 优先使用请求体中的 ID，否则取 context 中的
func ResolveExplorerID(ctx context.Context, explicit string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}
	id, _ := GetExplorerID(ctx)
	return id
}
