package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tweetforge/internal/config"
	"tweetforge/internal/generate"
	"tweetforge/internal/news"
)

type GenerateRequest struct {
	Topic            string `json:"topic"`
	ReferenceContent string `json:"referenceContent"`
	ReferenceURL     string `json:"referenceUrl"`
	Style            string `json:"style"`
	UseGroq          *bool  `json:"useGroq"`
}

// POST /generate
func GenerateHandler(cfg *config.Config, orch *generate.Orchestrator, articles *news.ArticleFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		topic, err := generate.ValidateTopic(req.Topic, cfg.Generate.TopicLimit)
		if err != nil {
			switch {
			case errors.Is(err, generate.ErrEmptyTopic):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Topic is required"})
			case errors.Is(err, generate.ErrProhibitedContent):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Topic contains prohibited content"})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid topic"})
			}
			return
		}

		style, err := generate.ParseStyle(req.Style)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown style"})
			return
		}

		reference := strings.TrimSpace(req.ReferenceContent)
		if reference == "" && req.ReferenceURL != "" {
			// Reference enrichment is best-effort: a dead link degrades to
			// generating from the topic alone.
			text, err := articles.FetchReadable(c.Request.Context(), req.ReferenceURL, cfg.Generate.ReferenceLimit)
			if err != nil {
				log.Printf("[Generate] reference fetch failed for %s: %v", req.ReferenceURL, err)
			} else {
				reference = text
			}
		}
		if r := []rune(reference); len(r) > cfg.Generate.ReferenceLimit {
			reference = string(r[:cfg.Generate.ReferenceLimit])
		}

		pref := generate.PreferPrimary
		if req.UseGroq != nil && !*req.UseGroq {
			pref = generate.PreferSecondary
		}

		doc := generate.Render(generate.Request{
			Topic:            topic,
			ReferenceContent: reference,
			Style:            style,
		})

		tweet, err := orch.Generate(c.Request.Context(), doc, pref)
		if err != nil {
			var exhausted *generate.ExhaustedError
			if errors.As(err, &exhausted) {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "Failed to generate tweet",
					"details": exhausted.Detail(),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tweet"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"tweet": tweet})
	}
}
