package handler

import (
	"github.com/gin-gonic/gin"

	"cosmoconnect/internal/model"
	"cosmoconnect/internal/service"
)

// AchievementHandler 成就处理器
type AchievementHandler struct {
	achievements service.AchievementService
}

// NewAchievementHandler 创建成就处理器
func NewAchievementHandler(achievements service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievements: achievements}
}

// List 成就列表
// @Summary      成就列表
// @Tags         成就
// @Produce      json
// @Param        id   path      string  true  "探险家ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  ErrorResponse  "未配置 MongoDB"
// @Router       /api/v1/explorers/{id}/achievements [get]
func (h *AchievementHandler) List(c *gin.Context) {
	views, err := h.achievements.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, views)
}

// Award 授予成就
// @Summary      授予成就
// @Description  重复授予不会报错，awarded 为 false
// @Tags         成就
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "探险家ID"
// @Param        request  body      model.AwardRequest  true  "成就"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse  "未知成就"
// @Router       /api/v1/explorers/{id}/achievements [post]
func (h *AchievementHandler) Award(c *gin.Context) {
	var req model.AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	awarded, err := h.achievements.Award(c.Request.Context(), c.Param("id"), req.AchievementID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"achievement_id": req.AchievementID, "awarded": awarded})
}
