package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	httputil "cosmoconnect/internal/pkg/http"
	"cosmoconnect/internal/service"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// ok 统一成功响应
func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, httputil.NewSuccessResponse("success", data))
}

// badRequest 请求体或参数不合法
func badRequest(c *gin.Context, message string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(httputil.CodeInvalidRequest, message, detail))
}

// fail 根据 service 错误设置状态码和错误码
// 生成失败不会走到这里，它们以降级文案正常返回
func fail(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	errorCode := httputil.CodeInternal

	switch {
	case errors.Is(err, service.ErrUnknownCompanion),
		errors.Is(err, service.ErrUnknownCharacter),
		errors.Is(err, service.ErrUnknownAchievement):
		code = http.StatusNotFound
		errorCode = httputil.CodeUnknownFeature
	case errors.Is(err, service.ErrSessionNotFound):
		code = http.StatusNotFound
		errorCode = httputil.CodeNotFound
	case errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrEmptySubject),
		errors.Is(err, service.ErrInvalidSession),
		errors.Is(err, service.ErrInvalidExplorer),
		errors.Is(err, service.ErrInvalidHistory):
		code = http.StatusBadRequest
		errorCode = httputil.CodeInvalidRequest
	case errors.Is(err, service.ErrStoreUnavailable):
		code = http.StatusServiceUnavailable
		errorCode = httputil.CodeServiceUnavailable
	}

	if code >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}

	c.JSON(code, httputil.NewErrorResponse(errorCode, err.Error()))
}
