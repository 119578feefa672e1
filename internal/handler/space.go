package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"cosmoconnect/internal/service"
)

// SpaceHandler NASA 数据处理器
type SpaceHandler struct {
	space service.SpaceService
}

// NewSpaceHandler 创建 NASA 数据处理器
func NewSpaceHandler(space service.SpaceService) *SpaceHandler {
	return &SpaceHandler{space: space}
}

// APOD 每日天文图
// @Summary      每日天文图
// @Description  接口失败或限流时返回 fallback 为 true 的兜底图片
// @Tags         NASA
// @Produce      json
// @Param        random  query     bool  false  "随机日期"
// @Success      200     {object}  map[string]interface{}
// @Router       /api/v1/space/apod [get]
func (h *SpaceHandler) APOD(c *gin.Context) {
	random, _ := strconv.ParseBool(c.Query("random"))
	ok(c, h.space.APOD(c.Request.Context(), random))
}

// CMEs 最近 7 天的日冕物质抛射
// @Summary      最近的日冕物质抛射
// @Tags         NASA
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/space/cme [get]
func (h *SpaceHandler) CMEs(c *gin.Context) {
	ok(c, h.space.RecentCMEs(c.Request.Context()))
}

// Overview 探索首页
// @Summary      探索首页
// @Description  APOD、CME 和 Sunny 的心情
// @Tags         NASA
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/space/overview [get]
func (h *SpaceHandler) Overview(c *gin.Context) {
	ok(c, h.space.Overview(c.Request.Context()))
}
