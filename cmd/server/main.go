package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"tweetforge/internal/api"
	"tweetforge/internal/config"
	"tweetforge/internal/generate"
	"tweetforge/internal/news"
	redisdb "tweetforge/internal/redis"
)

func main() {
	cfg, err := config.Load("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	rdb := redisdb.NewClient(cfg)
	if rdb == nil {
		log.Printf("[Main] Redis not configured, running without news cache")
	}

	providers := generate.BuildProviders(cfg)
	orch := generate.NewOrchestrator(providers, cfg.Styles)

	deps := api.Deps{
		Orchestrator: orch,
		News:         news.NewClient(cfg),
		Hub:          news.NewHubScraper(cfg),
		Articles:     news.NewArticleFetcher(time.Duration(cfg.Generate.TimeoutSeconds) * time.Second),
		Cache:        news.NewCache(rdb, time.Duration(cfg.News.CacheTTLMinutes)*time.Minute),
	}

	r := api.SetupRouter(cfg, deps)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s%s\n", addr, cfg.Server.Subpath)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
