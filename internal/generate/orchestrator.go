package generate

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"tweetforge/internal/config"
)

// ExhaustedError is returned when every attempted provider failed. It
// carries one failure record per attempt so callers can report which
// providers were tried and why each failed.
type ExhaustedError struct {
	Attempts []AttemptFailure
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.String())
	}
	return "all providers failed: " + strings.Join(parts, "; ")
}

// Detail formats the per-provider failures for an API error body.
func (e *ExhaustedError) Detail() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, "; ")
}

// Orchestrator runs the two-state generation flow: one attempt against the
// preferred provider, then at most a single fallback hop through the rest
// of the configured chain. No backoff, no retries beyond that.
type Orchestrator struct {
	providers []Provider
	styles    map[string]config.StyleParams
}

// NewOrchestrator builds an orchestrator over an ordered provider chain.
// The first provider is the primary; the rest are fallbacks in order.
func NewOrchestrator(providers []Provider, styles map[string]config.StyleParams) *Orchestrator {
	return &Orchestrator{providers: providers, styles: styles}
}

// Generate renders nothing itself; it takes a fully rendered document and
// returns the normalized tweet text, or an ExhaustedError describing every
// failed attempt.
func (o *Orchestrator) Generate(ctx context.Context, doc PromptDocument, pref Preference) (string, error) {
	return o.Complete(ctx, doc.Text, o.paramsFor(doc.Style), pref)
}

// Complete runs the raw prompt through the provider chain with explicit
// sampling params. It backs Generate and one-off prompts such as search
// enhancement.
func (o *Orchestrator) Complete(ctx context.Context, prompt string, params Params, pref Preference) (string, error) {
	chain := o.chainFor(pref)
	if len(chain) == 0 {
		return "", &ExhaustedError{Attempts: []AttemptFailure{
			{Provider: "none", Kind: ErrKindAuthMissing, Detail: "no providers configured"},
		}}
	}

	reqID := uuid.New().String()[:8]
	var attempts []AttemptFailure
	for i, p := range chain {
		res := p.AttemptCompletion(ctx, prompt, params)
		if res.Success {
			if i > 0 {
				log.Printf("[Orchestrator] %s: fallback to %s succeeded", reqID, p.Name())
			}
			return strings.TrimSpace(res.Text), nil
		}

		log.Printf("[Orchestrator] %s: provider %s failed (%s): %s", reqID, p.Name(), res.ErrorKind, res.Detail)
		attempts = append(attempts, AttemptFailure{
			Provider: p.Name(),
			Kind:     res.ErrorKind,
			Detail:   res.Detail,
		})

		// A missing key is a configuration error; trying the next
		// provider would mask it.
		if res.ErrorKind == ErrKindAuthMissing {
			break
		}
		// The caller went away; no point in a fallback hop.
		if ctx.Err() != nil {
			break
		}
	}

	return "", &ExhaustedError{Attempts: attempts}
}

// chainFor returns the provider attempt order for a preference. Preferring
// the secondary provider yields a single-element chain: it is the last
// provider, so it gets no fallback.
func (o *Orchestrator) chainFor(pref Preference) []Provider {
	if pref == PreferSecondary {
		if len(o.providers) < 2 {
			return nil
		}
		return o.providers[1:2]
	}
	return o.providers
}

func (o *Orchestrator) paramsFor(style Style) Params {
	if sp, ok := o.styles[string(style)]; ok {
		return Params{Temperature: sp.Temperature, MaxTokens: sp.MaxTokens}
	}
	// Conservative defaults for unknown styles; ParseStyle should have
	// rejected these upstream.
	return Params{Temperature: 0.7, MaxTokens: 300}
}

// BuildProviders constructs the HTTP provider chain from configuration.
func BuildProviders(cfg *config.Config) []Provider {
	timeout := time.Duration(cfg.Generate.TimeoutSeconds) * time.Second
	providers := make([]Provider, 0, len(cfg.Providers))
	for _, pc := range cfg.Providers {
		providers = append(providers, NewHTTPProvider(pc, timeout))
	}
	return providers
}
