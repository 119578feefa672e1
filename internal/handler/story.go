package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"cosmoconnect/internal/model"
	"cosmoconnect/internal/service"
)

// StoryHandler 互动故事处理器
type StoryHandler struct {
	story service.StoryService
}

// NewStoryHandler 创建互动故事处理器
func NewStoryHandler(story service.StoryService) *StoryHandler {
	return &StoryHandler{story: story}
}

// Stream 互动故事流式接口 (SSE)
// @Summary      互动故事
// @Description  每个 chunk 事件是到目前为止的完整快照；最后一个事件为 done，degraded 为 true 时是兜底文案
// @Tags         故事
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body      model.StoryRequest  false  "为空时开始新故事"
// @Success      200      {object}  service.StoryUpdate
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/story/stream [post]
func (h *StoryHandler) Stream(c *gin.Context) {
	var req model.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Invalid request body", err)
		return
	}

	updates, err := h.story.Stream(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	// 设置 SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		update, open := <-updates
		if !open {
			return false
		}
		if update.Final {
			c.SSEvent("done", update)
			return false
		}
		c.SSEvent("chunk", update)
		return true
	})
}
