package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReadOnlyGuard rejects unsafe methods when the board is served read-only.
func ReadOnlyGuard(readOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if readOnly {
			switch c.Request.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				// ok
			default:
				log.Printf("[guard][deny] read-only %s %s", c.Request.Method, c.Request.URL.Path)
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "read-only mode"})
				return
			}
		}
		c.Next()
	}
}
