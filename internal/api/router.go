package api

import (
	"github.com/gin-gonic/gin"

	"tweetforge/internal/config"
	"tweetforge/internal/generate"
	"tweetforge/internal/news"
)

// Deps collects the collaborators the handlers need. Everything is built
// once in main and passed down; handlers never reach for package state.
type Deps struct {
	Orchestrator *generate.Orchestrator
	News         *news.Client
	Hub          *news.HubScraper
	Articles     *news.ArticleFetcher
	Cache        *news.Cache
}

func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(CORSMiddleware(cfg))

	group := r.Group(cfg.Server.Subpath)
	{
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg))

		group.POST("/generate", GenerateHandler(cfg, deps.Orchestrator, deps.Articles))

		group.GET("/news", NewsHandler(deps.News, deps.Cache))
		group.GET("/news/hub", HubNewsHandler(deps.Hub, deps.Cache))
		group.POST("/search", SearchHandler(deps.News, deps.Orchestrator))
	}
	return r
}
