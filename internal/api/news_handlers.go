package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tweetforge/internal/generate"
	"tweetforge/internal/news"
)

const (
	headlinesCacheKey = "news:headlines"
	hubCacheKey       = "news:hub"
)

// GET /news
func NewsHandler(client *news.Client, cache *news.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if items, ok := cache.Get(ctx, headlinesCacheKey); ok {
			c.JSON(http.StatusOK, gin.H{"articles": items})
			return
		}

		items, err := client.TopHeadlines(ctx)
		if err != nil {
			if errors.Is(err, news.ErrKeyMissing) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "News API key not configured"})
				return
			}
			log.Printf("[News] headlines fetch failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch news"})
			return
		}

		cache.Set(ctx, headlinesCacheKey, items)
		c.JSON(http.StatusOK, gin.H{"articles": items})
	}
}

// GET /news/hub
func HubNewsHandler(scraper *news.HubScraper, cache *news.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if items, ok := cache.Get(ctx, hubCacheKey); ok {
			c.JSON(http.StatusOK, gin.H{"articles": items})
			return
		}

		items, err := scraper.Fetch(ctx)
		if err != nil {
			log.Printf("[News] hub scrape failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch hub articles"})
			return
		}

		// Zero items is a valid scrape; cache it so a layout change does
		// not turn into a request storm against the hub.
		cache.Set(ctx, hubCacheKey, items)
		c.JSON(http.StatusOK, gin.H{"articles": items})
	}
}

type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// POST /search
func SearchHandler(client *news.Client, orch *generate.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		query := news.CleanQuery(req.SearchTerm)
		if query == "" {
			c.JSON(http.StatusOK, gin.H{"articles": []news.Item{}, "enhancement": nil})
			return
		}

		items, err := client.Search(c.Request.Context(), query)
		if err != nil {
			if errors.Is(err, news.ErrKeyMissing) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "News API key not configured"})
				return
			}
			log.Printf("[Search] news search failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to perform search"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"articles":    items,
			"enhancement": enhanceResults(c.Request.Context(), orch, query, items),
		})
	}
}

// enhanceResults asks the model for a short analysis of the search results.
// It is strictly best-effort: any failure yields nil and the articles are
// returned on their own.
func enhanceResults(ctx context.Context, orch *generate.Orchestrator, query string, items []news.Item) any {
	if orch == nil || len(items) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a search result enhancer. Analyze these search results for %q and provide key insights:\n\n", query)
	for i, item := range items {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "- %s (%s)", item.Title, item.Source.Name)
		if item.Snippet != "" {
			fmt.Fprintf(&b, ": %s", item.Snippet)
		}
		b.WriteString("\n")
	}

	text, err := orch.Complete(ctx, b.String(), generate.Params{Temperature: 0.5, MaxTokens: 500}, generate.PreferPrimary)
	if err != nil {
		log.Printf("[Search] enhancement failed: %v", err)
		return nil
	}
	return text
}
