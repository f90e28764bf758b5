package generate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tweetforge/internal/config"
)

func completionBody(text string) string {
	return `{"choices":[{"message":{"role":"assistant","content":"` + text + `"}}]}`
}

func newStubProvider(t *testing.T, name string, handler http.HandlerFunc) (*HTTPProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p := NewHTTPProvider(config.ProviderConfig{
		Name:   name,
		URL:    srv.URL,
		Model:  "test-model",
		KeyEnv: "TEST_KEY",
		APIKey: "sk-test",
	}, 5*time.Second)
	return p, srv
}

func testStyles() map[string]config.StyleParams {
	return map[string]config.StyleParams{
		"viral":  {Temperature: 0.7, MaxTokens: 300},
		"casual": {Temperature: 0.9, MaxTokens: 100},
		"value":  {Temperature: 0.7, MaxTokens: 300},
	}
}

func TestGenerate_TrimsWhitespace(t *testing.T) {
	p, _ := newStubProvider(t, "groq", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("  hello world  ")))
	})
	o := NewOrchestrator([]Provider{p}, testStyles())

	tweet, err := o.Generate(context.Background(), PromptDocument{Style: StyleViral, Text: "prompt"}, PreferPrimary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tweet != "hello world" {
		t.Errorf("expected trimmed text, got %q", tweet)
	}
}

func TestGenerate_FallbackOnPrimaryFailure(t *testing.T) {
	primary, _ := newStubProvider(t, "groq", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	secondary, _ := newStubProvider(t, "openrouter", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("fallback tweet")))
	})
	o := NewOrchestrator([]Provider{primary, secondary}, testStyles())

	tweet, err := o.Generate(context.Background(), PromptDocument{Style: StyleViral, Text: "prompt"}, PreferPrimary)
	if err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
	if tweet != "fallback tweet" {
		t.Errorf("expected secondary provider text, got %q", tweet)
	}
}

func TestGenerate_BothProvidersFail(t *testing.T) {
	fail := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}
	primary, _ := newStubProvider(t, "groq", fail)
	secondary, _ := newStubProvider(t, "openrouter", fail)
	o := NewOrchestrator([]Provider{primary, secondary}, testStyles())

	_, err := o.Generate(context.Background(), PromptDocument{Style: StyleViral, Text: "prompt"}, PreferPrimary)
	var ex *ExhaustedError
	if !errors.As(err, &ex) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if len(ex.Attempts) != 2 {
		t.Fatalf("expected 2 attempt failures, got %d", len(ex.Attempts))
	}
	if ex.Attempts[0].Provider != "groq" || ex.Attempts[1].Provider != "openrouter" {
		t.Errorf("unexpected attempt order: %+v", ex.Attempts)
	}
	for _, a := range ex.Attempts {
		if a.Kind != ErrKindNonSuccessStatus {
			t.Errorf("expected non_success_status, got %s", a.Kind)
		}
	}
	if !strings.Contains(ex.Detail(), "groq") || !strings.Contains(ex.Detail(), "openrouter") {
		t.Errorf("detail should name both providers: %s", ex.Detail())
	}
}

func TestGenerate_PreferSecondaryNoFallback(t *testing.T) {
	primaryCalled := false
	primary, _ := newStubProvider(t, "groq", func(w http.ResponseWriter, r *http.Request) {
		primaryCalled = true
		w.Write([]byte(completionBody("primary tweet")))
	})
	secondary, _ := newStubProvider(t, "openrouter", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	o := NewOrchestrator([]Provider{primary, secondary}, testStyles())

	_, err := o.Generate(context.Background(), PromptDocument{Style: StyleViral, Text: "prompt"}, PreferSecondary)
	var ex *ExhaustedError
	if !errors.As(err, &ex) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if len(ex.Attempts) != 1 {
		t.Errorf("secondary preference must not fall back, got %d attempts", len(ex.Attempts))
	}
	if primaryCalled {
		t.Errorf("primary provider must not be called when secondary is preferred")
	}
}

func TestGenerate_AuthMissingIsFatal(t *testing.T) {
	missing := NewHTTPProvider(config.ProviderConfig{
		Name:   "groq",
		URL:    "http://localhost:1",
		Model:  "m",
		KeyEnv: "GROQ_API_KEY",
		APIKey: "",
	}, time.Second)
	secondaryCalled := false
	secondary, _ := newStubProvider(t, "openrouter", func(w http.ResponseWriter, r *http.Request) {
		secondaryCalled = true
		w.Write([]byte(completionBody("should not happen")))
	})
	o := NewOrchestrator([]Provider{missing, secondary}, testStyles())

	_, err := o.Generate(context.Background(), PromptDocument{Style: StyleViral, Text: "prompt"}, PreferPrimary)
	var ex *ExhaustedError
	if !errors.As(err, &ex) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if len(ex.Attempts) != 1 || ex.Attempts[0].Kind != ErrKindAuthMissing {
		t.Fatalf("expected single auth_missing failure, got %+v", ex.Attempts)
	}
	if !strings.Contains(ex.Attempts[0].Detail, "GROQ_API_KEY is not set") {
		t.Errorf("detail should name the missing env var: %s", ex.Attempts[0].Detail)
	}
	if secondaryCalled {
		t.Errorf("missing key must not trigger fallback")
	}
}

func TestGenerate_MalformedPayload(t *testing.T) {
	p, _ := newStubProvider(t, "groq", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})
	o := NewOrchestrator([]Provider{p}, testStyles())

	_, err := o.Generate(context.Background(), PromptDocument{Style: StyleViral, Text: "prompt"}, PreferPrimary)
	var ex *ExhaustedError
	if !errors.As(err, &ex) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if ex.Attempts[0].Kind != ErrKindMalformedPayload {
		t.Errorf("expected malformed_payload, got %s", ex.Attempts[0].Kind)
	}
}

func TestGenerate_NetworkFailure(t *testing.T) {
	p := NewHTTPProvider(config.ProviderConfig{
		Name:   "groq",
		URL:    "http://127.0.0.1:1",
		Model:  "m",
		KeyEnv: "K",
		APIKey: "sk-test",
	}, time.Second)
	o := NewOrchestrator([]Provider{p}, testStyles())

	_, err := o.Generate(context.Background(), PromptDocument{Style: StyleViral, Text: "prompt"}, PreferPrimary)
	var ex *ExhaustedError
	if !errors.As(err, &ex) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if ex.Attempts[0].Kind != ErrKindNetworkFailure {
		t.Errorf("expected network_failure, got %s", ex.Attempts[0].Kind)
	}
}

func TestGenerate_CancelledContextSkipsFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	primary, _ := newStubProvider(t, "groq", func(w http.ResponseWriter, r *http.Request) {
		cancel()
		w.WriteHeader(http.StatusInternalServerError)
	})
	secondaryCalled := false
	secondary, _ := newStubProvider(t, "openrouter", func(w http.ResponseWriter, r *http.Request) {
		secondaryCalled = true
	})
	o := NewOrchestrator([]Provider{primary, secondary}, testStyles())

	_, err := o.Generate(ctx, PromptDocument{Style: StyleViral, Text: "prompt"}, PreferPrimary)
	if err == nil {
		t.Fatalf("expected error after cancellation")
	}
	if secondaryCalled {
		t.Errorf("fallback must be skipped after the caller disconnects")
	}
}

func TestProvider_SendsAuthAndExtraHeaders(t *testing.T) {
	var gotAuth, gotReferer, gotTitle string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		w.Write([]byte(completionBody("ok")))
	}))
	defer srv.Close()

	p := NewHTTPProvider(config.ProviderConfig{
		Name:   "openrouter",
		URL:    srv.URL,
		Model:  "m",
		KeyEnv: "K",
		APIKey: "sk-secret",
		Headers: map[string]string{
			"HTTP-Referer": "https://tweets.example.com",
			"X-Title":      "Tweet Generator",
		},
	}, time.Second)

	res := p.AttemptCompletion(context.Background(), "prompt", Params{Temperature: 0.7, MaxTokens: 300})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if gotAuth != "Bearer sk-secret" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotReferer != "https://tweets.example.com" || gotTitle != "Tweet Generator" {
		t.Errorf("extra headers not sent: %q %q", gotReferer, gotTitle)
	}
}
