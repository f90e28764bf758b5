package news

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"tweetforge/internal/config"
)

// HubScraper pulls article listings off the Athina AI Hub front page.
// Scraping someone else's markup is inherently brittle: selectors may rot,
// and zero results is a normal outcome, not an error.
type HubScraper struct {
	baseURL    string
	minDelay   time.Duration
	maxDelay   time.Duration
	httpClient *http.Client
}

func NewHubScraper(cfg *config.Config) *HubScraper {
	return &HubScraper{
		baseURL:  cfg.Hub.URL,
		minDelay: time.Duration(cfg.Hub.MinDelayMs) * time.Millisecond,
		maxDelay: time.Duration(cfg.Hub.MaxDelayMs) * time.Millisecond,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Hub.TimeoutSeconds) * time.Second,
		},
	}
}

// Fetch scrapes the hub page. A randomized delay runs before the outbound
// call to stay under the source's rate limits; it aborts immediately when
// the caller's context is cancelled.
func (s *HubScraper) Fetch(ctx context.Context) ([]Item, error) {
	if err := s.throttle(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hub fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hub returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read hub page: %w", err)
	}

	return s.Parse(string(body))
}

// Parse extracts article items from hub HTML. Exported so tests can feed
// fixture markup without the network.
func (s *HubScraper) Parse(html string) ([]Item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse hub HTML: %w", err)
	}

	items := []Item{}
	seen := map[string]bool{}
	sourceName := s.sourceName()

	appendItem := func(title, href, publishedAt, author string) {
		href = s.absoluteURL(href)
		if title == "" || href == "" || seen[href] {
			return
		}
		if publishedAt == "" {
			publishedAt = time.Now().UTC().Format(time.RFC3339)
		}
		if author == "" {
			author = sourceName
		}
		seen[href] = true
		items = append(items, Item{
			Source:      Source{ID: "hub", Name: sourceName},
			Title:       title,
			URL:         href,
			PublishedAt: publishedAt,
			Author:      author,
		})
	}

	// Pass 1: structured article cards inside the main content area.
	main := doc.Find(".post-feed, .content, main, #main, .site-main")
	main.Find("article, .post, .post-card").Each(func(_ int, sel *goquery.Selection) {
		titleEl := sel.Find("h2, .post-title, .title, .post-card-title").First()
		title := strings.TrimSpace(titleEl.Text())

		href := ""
		if link := titleEl.Find("a").First(); link.Length() > 0 {
			href, _ = link.Attr("href")
		}
		if href == "" {
			if link := titleEl.Closest("a"); link.Length() > 0 {
				href, _ = link.Attr("href")
			}
		}
		if href == "" {
			if link := sel.Find("a").First(); link.Length() > 0 {
				href, _ = link.Attr("href")
			}
		}

		publishedAt := ""
		if dateEl := sel.Find("time, .date, .post-date").First(); dateEl.Length() > 0 {
			if dt, ok := dateEl.Attr("datetime"); ok {
				publishedAt = dt
			} else {
				publishedAt = strings.TrimSpace(dateEl.Text())
			}
		}
		author := strings.TrimSpace(sel.Find(".author, .post-author, .byline").First().Text())

		appendItem(title, href, publishedAt, author)
	})

	// Pass 2: if the structured pass found nothing, fall back to any
	// heading wrapped in a link. Long titles filter out navigation.
	if len(items) == 0 {
		doc.Find("h1 a, h2 a, h3 a").Each(func(_ int, link *goquery.Selection) {
			title := strings.TrimSpace(link.Text())
			href, _ := link.Attr("href")
			if len(title) > 20 {
				appendItem(title, href, "", "")
			}
		})
	}

	log.Printf("[HubScraper] parsed %d articles", len(items))
	return items, nil
}

// throttle sleeps a random duration in [minDelay, maxDelay] or returns
// early with the context's error if the caller disconnects.
func (s *HubScraper) throttle(ctx context.Context) error {
	span := s.maxDelay - s.minDelay
	delay := s.minDelay
	if span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	if delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *HubScraper) absoluteURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func (s *HubScraper) sourceName() string {
	u, err := url.Parse(s.baseURL)
	if err != nil || u.Hostname() == "" {
		return "news source"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
