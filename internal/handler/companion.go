package handler

import (
	"github.com/gin-gonic/gin"

	"cosmoconnect/internal/service"
)

// CompanionHandler 一次性生成功能处理器
type CompanionHandler struct {
	companion service.CompanionService
}

// NewCompanionHandler 创建处理器
func NewCompanionHandler(companion service.CompanionService) *CompanionHandler {
	return &CompanionHandler{companion: companion}
}

// SunnyMood Sunny 的心情
// @Summary      Sunny 的心情
// @Description  根据最近 7 天的 CME 数据生成一句 Sunny 的心情；生成失败时 degraded 为 true
// @Tags         伙伴
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "{\"code\": 0, \"message\": \"success\", \"data\": {\"text\": \"...\", \"degraded\": false}}"
// @Router       /api/v1/sunny/mood [get]
func (h *CompanionHandler) SunnyMood(c *gin.Context) {
	ok(c, h.companion.SunnyMood(c.Request.Context()))
}

// Perspective 角色视角
// @Summary      角色视角
// @Description  Astronaut / Pilot / Farmer / Photographer 讲述太空天气如何影响自己的工作
// @Tags         伙伴
// @Produce      json
// @Param        character  path      string  true  "角色"
// @Success      200        {object}  map[string]interface{}
// @Failure      404        {object}  ErrorResponse  "未知角色"
// @Router       /api/v1/perspectives/{character} [get]
func (h *CompanionHandler) Perspective(c *gin.Context) {
	resp, err := h.companion.Perspective(c.Request.Context(), c.Param("character"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// AuroraStory 极光小故事
// @Summary      极光小故事
// @Tags         伙伴
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/aurora/story [get]
func (h *CompanionHandler) AuroraStory(c *gin.Context) {
	ok(c, h.companion.AuroraStory(c.Request.Context()))
}

// PlanetFact 行星趣闻
// @Summary      行星趣闻
// @Tags         趣闻
// @Produce      json
// @Param        name  path      string  true  "行星名"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/v1/facts/planets/{name} [get]
func (h *CompanionHandler) PlanetFact(c *gin.Context) {
	resp, err := h.companion.PlanetFact(c.Request.Context(), c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// JWSTFact 韦布望远镜部件说明
// @Summary      韦布望远镜部件说明
// @Tags         趣闻
// @Produce      json
// @Param        part  path      string  true  "部件名"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/v1/facts/jwst/{part} [get]
func (h *CompanionHandler) JWSTFact(c *gin.Context) {
	resp, err := h.companion.JWSTFact(c.Request.Context(), c.Param("part"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, resp)
}

// ParkerFact 帕克太阳探测器趣闻
// @Summary      帕克太阳探测器趣闻
// @Tags         趣闻
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/facts/parker [get]
func (h *CompanionHandler) ParkerFact(c *gin.Context) {
	ok(c, h.companion.ParkerFact(c.Request.Context()))
}
