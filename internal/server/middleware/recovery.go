package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httputil "cosmoconnect/internal/pkg/http"
)

// Recovery 异常恢复中间件
// 流式响应已经写出时只能中断连接，不再写 JSON
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			if err == http.ErrAbortHandler {
				panic(err)
			}

			l := zerolog.Ctx(c.Request.Context())
			if l.GetLevel() == zerolog.Disabled {
				l = &log.Logger
			}
			l.Error().
				Interface("error", err).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Bool("written", c.Writer.Written()).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				httputil.NewErrorResponse(httputil.CodeInternal, "Internal Server Error"))
		}()
		c.Next()
	}
}
