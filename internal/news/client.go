package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tweetforge/internal/config"
)

// ErrKeyMissing signals a configuration problem, not an upstream failure.
// Callers see the concrete env var name through the wrapping message.
var ErrKeyMissing = errors.New("news API key is not set")

// Client talks to a NewsAPI-compatible endpoint.
type Client struct {
	headlinesURL  string
	everythingURL string
	pageSize      int
	apiKey        string
	keyEnv        string
	httpClient    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		headlinesURL:  cfg.News.HeadlinesURL,
		everythingURL: cfg.News.EverythingURL,
		pageSize:      cfg.News.PageSize,
		apiKey:        cfg.News.APIKey,
		keyEnv:        cfg.News.KeyEnv,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

type apiArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

type apiResponse struct {
	Status   string       `json:"status"`
	Articles []apiArticle `json:"articles"`
}

// TopHeadlines fetches the current technology headlines.
func (c *Client) TopHeadlines(ctx context.Context) ([]Item, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s is not set: %w", c.keyEnv, ErrKeyMissing)
	}

	u, err := url.Parse(c.headlinesURL)
	if err != nil {
		return nil, fmt.Errorf("invalid headlines URL: %w", err)
	}
	q := u.Query()
	q.Set("category", "technology")
	q.Set("language", "en")
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	u.RawQuery = q.Encode()

	articles, err := c.fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(articles))
	for _, a := range articles {
		items = append(items, Item{
			Source:      Source{ID: a.Source.ID, Name: a.Source.Name},
			Title:       a.Title,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Author:      a.Author,
			Snippet:     a.Description,
		})
	}
	return items, nil
}

// Search queries the everything endpoint, relevancy-sorted. Each result
// carries an assembled FullContent block suitable as generation reference
// content. An empty query returns no items without touching the network.
func (c *Client) Search(ctx context.Context, query string) ([]Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Item{}, nil
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("%s is not set: %w", c.keyEnv, ErrKeyMissing)
	}

	u, err := url.Parse(c.everythingURL)
	if err != nil {
		return nil, fmt.Errorf("invalid everything URL: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("sortBy", "relevancy")
	q.Set("language", "en")
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	u.RawQuery = q.Encode()

	articles, err := c.fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(articles))
	for _, a := range articles {
		author := a.Author
		if author == "" {
			author = a.Source.Name
		}
		items = append(items, Item{
			Source:      Source{ID: a.Source.ID, Name: a.Source.Name},
			Title:       a.Title,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Author:      author,
			Snippet:     a.Description,
			FullContent: assembleFullContent(a),
		})
	}
	return items, nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]apiArticle, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("news API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse news response: %w", err)
	}
	return parsed.Articles, nil
}

// assembleFullContent joins the usable article fields into one grounding
// block. NewsAPI truncates content with a "[+N chars]" marker; everything
// from that marker on is dropped.
func assembleFullContent(a apiArticle) string {
	content := a.Content
	if idx := strings.Index(content, "[+"); idx != -1 {
		content = strings.TrimSpace(content[:idx])
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Title, a.Description, content} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if a.Source.Name != "" {
		parts = append(parts, "Source: "+a.Source.Name)
	}
	return strings.Join(parts, "\n\n")
}
