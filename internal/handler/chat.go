package handler

import (
	"github.com/gin-gonic/gin"

	"cosmoconnect/internal/model"
	"cosmoconnect/internal/service"
)

// ChatHandler 对话处理器
type ChatHandler struct {
	chat service.ChatService
}

// NewChatHandler 创建对话处理器
func NewChatHandler(chat service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat 对话接口
// @Summary      与伙伴对话
// @Description  companion: sunny-ar / cosmo-buddy / planet-designer。生成失败时返回兜底文案且不写入记录
// @Tags         对话
// @Accept       json
// @Produce      json
// @Param        companion  path      string             true  "伙伴"
// @Param        request    body      model.ChatRequest  true  "对话请求"
// @Success      200        {object}  map[string]interface{}
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse  "未知伙伴"
// @Router       /api/v1/chat/{companion} [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	resp, err := h.chat.Chat(c.Request.Context(), c.Param("companion"), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// ResetSession 清空会话
// @Summary      清空会话
// @Description  丢弃该会话下所有伙伴和故事的对话记录
// @Tags         对话
// @Produce      json
// @Param        id   path      string  true  "会话ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse  "会话不存在或已过期"
// @Failure      503  {object}  ErrorResponse  "未配置 Redis"
// @Router       /api/v1/sessions/{id} [delete]
func (h *ChatHandler) ResetSession(c *gin.Context) {
	sessionID := c.Param("id")
	if err := h.chat.ResetSession(c.Request.Context(), sessionID); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"session_id": sessionID})
}
