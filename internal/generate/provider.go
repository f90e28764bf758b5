package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tweetforge/internal/config"
)

// Provider is a single completion endpoint. Adding a provider to the
// orchestrator's chain requires only this interface, not orchestration
// changes.
type Provider interface {
	Name() string
	AttemptCompletion(ctx context.Context, prompt string, params Params) CallResult
}

// HTTPProvider speaks the OpenAI chat-completions wire format used by
// Groq, OpenRouter and compatible endpoints.
type HTTPProvider struct {
	name    string
	url     string
	model   string
	keyEnv  string
	apiKey  string
	headers map[string]string
	client  *http.Client
}

// NewHTTPProvider builds a provider from its config entry.
func NewHTTPProvider(pc config.ProviderConfig, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		name:    pc.Name,
		url:     pc.URL,
		model:   pc.Model,
		keyEnv:  pc.KeyEnv,
		apiKey:  pc.APIKey,
		headers: pc.Headers,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) Name() string {
	return p.name
}

// AttemptCompletion issues one completion request. The returned result
// classifies any failure; Detail never contains the API key.
func (p *HTTPProvider) AttemptCompletion(ctx context.Context, prompt string, params Params) CallResult {
	if p.apiKey == "" {
		return CallResult{
			ErrorKind: ErrKindAuthMissing,
			Detail:    fmt.Sprintf("%s is not set", p.keyEnv),
		}
	}

	payload := map[string]interface{}{
		"model": p.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": params.Temperature,
		"max_tokens":  params.MaxTokens,
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", p.url, bytes.NewBuffer(body))
	if err != nil {
		return CallResult{ErrorKind: ErrKindNetworkFailure, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	for k, v := range p.headers {
		req.Header.Set(k, v)
	}

	res, err := p.client.Do(req)
	if err != nil {
		return CallResult{
			ErrorKind: ErrKindNetworkFailure,
			Detail:    fmt.Sprintf("request failed: %v", err),
		}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		// Drain a little of the body for context, but never echo it
		// verbatim past a sane length.
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		detail := fmt.Sprintf("status %d", res.StatusCode)
		if len(b) > 0 {
			detail = fmt.Sprintf("status %d: %s", res.StatusCode, string(b))
		}
		return CallResult{ErrorKind: ErrKindNonSuccessStatus, Detail: detail}
	}

	var respStruct struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(res.Body).Decode(&respStruct); err != nil {
		return CallResult{
			ErrorKind: ErrKindMalformedPayload,
			Detail:    fmt.Sprintf("failed to parse response: %v", err),
		}
	}
	if len(respStruct.Choices) == 0 || respStruct.Choices[0].Message.Content == "" {
		return CallResult{
			ErrorKind: ErrKindMalformedPayload,
			Detail:    "response missing completion text",
		}
	}

	return CallResult{Success: true, Text: respStruct.Choices[0].Message.Content}
}
