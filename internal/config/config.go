package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ProviderConfig describes one OpenAI-compatible completion endpoint.
// The API key is never stored in the config file; KeyEnv names the
// environment variable it is read from at load time.
type ProviderConfig struct {
	Name    string            `json:"name"`
	URL     string            `json:"url"`
	Model   string            `json:"model"`
	KeyEnv  string            `json:"key_env"`
	Headers map[string]string `json:"headers,omitempty"`
	APIKey  string            `json:"-"`
}

// StyleParams are the fixed sampling constants for one prompt style.
// They are configuration, not user input, to bound cost and output size.
type StyleParams struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type Config struct {
	Server struct {
		Host    string `json:"host"`
		Port    int    `json:"port"`
		Subpath string `json:"subpath"`
		Mode    string `json:"mode"` // "release" or "debug"
	} `json:"server"`
	CORS struct {
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"cors"`
	Providers []ProviderConfig       `json:"providers"`
	Styles    map[string]StyleParams `json:"styles"`
	Generate  struct {
		TopicLimit     int `json:"topic_limit"`
		ReferenceLimit int `json:"reference_limit"`
		TimeoutSeconds int `json:"timeout_seconds"`
	} `json:"generate"`
	News struct {
		HeadlinesURL    string `json:"headlines_url"`
		EverythingURL   string `json:"everything_url"`
		PageSize        int    `json:"page_size"`
		KeyEnv          string `json:"key_env"`
		CacheTTLMinutes int    `json:"cache_ttl_minutes"`
		APIKey          string `json:"-"`
	} `json:"news"`
	Hub struct {
		URL            string `json:"url"`
		MinDelayMs     int    `json:"min_delay_ms"`
		MaxDelayMs     int    `json:"max_delay_ms"`
		TimeoutSeconds int    `json:"timeout_seconds"`
	} `json:"hub"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
}

// Load reads the config file, applies defaults and resolves secrets from
// the environment. The returned object is constructed once at startup and
// passed by reference; there is no package-level instance.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var c Config
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("invalid config format: %w", err)
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.resolveEnv()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if len(c.Providers) == 0 {
		c.Providers = []ProviderConfig{
			{
				Name:   "groq",
				URL:    "https://api.groq.com/openai/v1/chat/completions",
				Model:  "llama-3.3-70b-versatile",
				KeyEnv: "GROQ_API_KEY",
			},
			{
				Name:   "openrouter",
				URL:    "https://openrouter.ai/api/v1/chat/completions",
				Model:  "meta-llama/llama-3.3-70b-instruct:free",
				KeyEnv: "OPENROUTER_API_KEY",
			},
		}
	}
	if c.Styles == nil {
		c.Styles = map[string]StyleParams{}
	}
	if _, ok := c.Styles["viral"]; !ok {
		c.Styles["viral"] = StyleParams{Temperature: 0.7, MaxTokens: 300}
	}
	if _, ok := c.Styles["casual"]; !ok {
		c.Styles["casual"] = StyleParams{Temperature: 0.9, MaxTokens: 100}
	}
	if _, ok := c.Styles["value"]; !ok {
		c.Styles["value"] = StyleParams{Temperature: 0.7, MaxTokens: 300}
	}
	if c.Generate.TopicLimit == 0 {
		c.Generate.TopicLimit = 200
	}
	if c.Generate.ReferenceLimit == 0 {
		c.Generate.ReferenceLimit = 4000
	}
	if c.Generate.TimeoutSeconds == 0 {
		c.Generate.TimeoutSeconds = 30
	}
	if c.News.HeadlinesURL == "" {
		c.News.HeadlinesURL = "https://newsapi.org/v2/top-headlines"
	}
	if c.News.EverythingURL == "" {
		c.News.EverythingURL = "https://newsapi.org/v2/everything"
	}
	if c.News.PageSize == 0 {
		c.News.PageSize = 10
	}
	if c.News.KeyEnv == "" {
		c.News.KeyEnv = "NEWS_API_KEY"
	}
	if c.News.CacheTTLMinutes == 0 {
		c.News.CacheTTLMinutes = 60
	}
	if c.Hub.URL == "" {
		c.Hub.URL = "https://hub.athina.ai/"
	}
	if c.Hub.MinDelayMs == 0 {
		c.Hub.MinDelayMs = 1000
	}
	if c.Hub.MaxDelayMs == 0 {
		c.Hub.MaxDelayMs = 3000
	}
	if c.Hub.TimeoutSeconds == 0 {
		c.Hub.TimeoutSeconds = 10
	}
	// The deployed frontend origin may come from the environment rather
	// than the config file.
	if appURL := os.Getenv("APP_URL"); appURL != "" {
		c.CORS.AllowedOrigins = append(c.CORS.AllowedOrigins, appURL)
	}
}

func (c *Config) validate() error {
	if len(c.Providers) < 1 {
		return errors.New("at least one provider must be configured")
	}
	for _, p := range c.Providers {
		if p.URL == "" || p.Model == "" || p.KeyEnv == "" {
			return fmt.Errorf("provider %q is missing url, model or key_env", p.Name)
		}
	}
	if c.Hub.MaxDelayMs < c.Hub.MinDelayMs {
		return errors.New("hub max_delay_ms must be >= min_delay_ms")
	}
	return nil
}

// resolveEnv copies secrets out of the environment. Empty keys are kept as
// empty strings; the orchestrator reports them as a configuration error at
// call time instead of silently skipping the provider.
func (c *Config) resolveEnv() {
	for i := range c.Providers {
		c.Providers[i].APIKey = os.Getenv(c.Providers[i].KeyEnv)
	}
	c.News.APIKey = os.Getenv(c.News.KeyEnv)
}

// Production reports whether the production CORS policy applies.
func (c *Config) Production() bool {
	return c.Server.Mode != "debug"
}
