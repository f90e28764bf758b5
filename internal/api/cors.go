package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tweetforge/internal/config"
)

// CORSMiddleware enforces the origin allowlist. Requests without an Origin
// header (curl, server-to-server) pass through untouched. In debug mode any
// origin is allowed; in production an unlisted origin is rejected with 403
// and an empty body before the handler runs.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.CORS.AllowedOrigins))
	for _, o := range cfg.CORS.AllowedOrigins {
		allowed[o] = true
	}
	production := cfg.Production()

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if production && !allowed[origin] {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			// Echo the origin verbatim rather than "*" so responses stay
			// cacheable per-origin.
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
