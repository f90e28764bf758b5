package generate

import "fmt"

// Style selects the prompt template used for a generation request.
type Style string

const (
	StyleCasual Style = "casual"
	StyleViral  Style = "viral"
	StyleValue  Style = "value"
)

// ParseStyle maps a request string onto a known style. An empty string
// falls back to the viral template.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "":
		return StyleViral, nil
	case string(StyleCasual):
		return StyleCasual, nil
	case string(StyleViral):
		return StyleViral, nil
	case string(StyleValue):
		return StyleValue, nil
	}
	return "", fmt.Errorf("unknown style %q", s)
}

// Preference selects which provider in the configured chain to try first.
type Preference int

const (
	// PreferPrimary attempts the first provider and falls back through
	// the rest of the chain on recoverable failure.
	PreferPrimary Preference = iota
	// PreferSecondary skips straight to the second provider. It is the
	// last link in the chain, so there is no further fallback.
	PreferSecondary
)

// Request is a validated generation request. Topic has already passed
// through the request gate.
type Request struct {
	Topic            string
	ReferenceContent string
	Style            Style
}

// PromptDocument is a fully rendered instruction string. Rendering is
// deterministic; the same Request always produces the same document.
type PromptDocument struct {
	Style Style
	Text  string
}

// Params are the sampling constants passed to a provider call.
type Params struct {
	Temperature float64
	MaxTokens   int
}

// ErrorKind classifies a failed provider attempt.
type ErrorKind string

const (
	ErrKindAuthMissing      ErrorKind = "auth_missing"
	ErrKindNetworkFailure   ErrorKind = "network_failure"
	ErrKindNonSuccessStatus ErrorKind = "non_success_status"
	ErrKindMalformedPayload ErrorKind = "malformed_payload"
)

// CallResult is the outcome of a single provider attempt. Detail is safe
// to surface to callers: it never contains credentials.
type CallResult struct {
	Success   bool
	Text      string
	ErrorKind ErrorKind
	Detail    string
}

// AttemptFailure records one failed provider attempt for error reporting.
type AttemptFailure struct {
	Provider string
	Kind     ErrorKind
	Detail   string
}

func (a AttemptFailure) String() string {
	return fmt.Sprintf("%s: %s (%s)", a.Provider, a.Detail, a.Kind)
}
