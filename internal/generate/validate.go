package generate

import (
	"errors"
	"strings"
)

// The request gate rejects topics touching any of these terms before a
// provider is ever called. Matching is a case-insensitive substring check.
var bannedTerms = []string{
	"harmful",
	"illegal",
	"offensive",
	"hate speech",
}

var (
	ErrEmptyTopic        = errors.New("topic is required")
	ErrProhibitedContent = errors.New("topic contains inappropriate content")
)

// ValidateTopic trims the raw topic, applies the banned-term filter and
// truncates overlong topics with an ellipsis marker. Truncation, not
// rejection, is the single length policy for the whole service: overlong
// topics become the first limit-3 characters plus "...".
//
// The banned-term check runs against the full trimmed topic, before any
// truncation, so a term cannot be smuggled past the filter by length.
func ValidateTopic(raw string, limit int) (string, error) {
	topic := strings.TrimSpace(raw)
	if topic == "" {
		return "", ErrEmptyTopic
	}

	lower := strings.ToLower(topic)
	for _, term := range bannedTerms {
		if strings.Contains(lower, term) {
			return "", ErrProhibitedContent
		}
	}

	return TruncateTopic(topic, limit), nil
}

// TruncateTopic caps a topic at limit characters, preserving meaning with
// a trailing ellipsis. It is also applied independently at render time.
// The limit counts runes, not bytes, so multi-byte topics under the limit
// pass through untouched and a cut never splits a character.
func TruncateTopic(topic string, limit int) string {
	if limit <= 3 {
		return topic
	}
	runes := []rune(topic)
	if len(runes) <= limit {
		return topic
	}
	return string(runes[:limit-3]) + "..."
}
