package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/molekadoces/dashboard_backend/appctx"
)

// CorrelationMiddleware generates (or propagates) one correlation id per
// request and attaches it to the request context for log correlation.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(appctx.Set(c.Request.Context(), appctx.ContextKeyCorrelationId, cid))
		c.Header("x-correlation-id", cid)
		c.Next()
	}
}
