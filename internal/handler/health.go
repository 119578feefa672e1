package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger 就绪检查依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	provider string
	deps     map[string]Pinger
}

// NewHealthHandler 创建健康检查处理器；deps 中为 nil 的依赖视为未配置
func NewHealthHandler(provider string, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{provider: provider, deps: deps}
}

// Health 健康检查
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready 就绪检查
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}
	for name, dep := range h.deps {
		switch {
		case dep == nil:
			checks[name] = "disabled"
		case dep.Ping(ctx) != nil:
			checks[name] = "down"
			status = http.StatusServiceUnavailable
		default:
			checks[name] = "up"
		}
	}

	state := "ready"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{
		"status":      state,
		"ai_provider": h.provider,
		"checks":      checks,
	})
}
