package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tweetforge/internal/config"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields. Provider API keys and
		// the news key never leave the process.
		providers := make([]gin.H, 0, len(cfg.Providers))
		for _, p := range cfg.Providers {
			providers = append(providers, gin.H{
				"name":  p.Name,
				"model": p.Model,
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host":    cfg.Server.Host,
				"port":    cfg.Server.Port,
				"subpath": cfg.Server.Subpath,
				"mode":    cfg.Server.Mode,
			},
			"providers": providers,
			"styles":    cfg.Styles,
		})
	}
}
