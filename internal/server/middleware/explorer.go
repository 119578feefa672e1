package middleware

import (
	"github.com/gin-gonic/gin"

	"cosmoconnect/internal/pkg/ctxutil"
)

const ExplorerIDHeader = "X-Explorer-ID"

// Explorer 把 X-Explorer-ID 放进请求 context，请求体未携带 explorer_id 时使用
func Explorer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if explorerID := c.GetHeader(ExplorerIDHeader); explorerID != "" {
			c.Request = c.Request.WithContext(ctxutil.WithExplorerID(c.Request.Context(), explorerID))
		}
		c.Next()
	}
}
