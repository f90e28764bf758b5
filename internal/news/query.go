package news

import (
	"regexp"
	"strings"
)

var (
	quoteRe = regexp.MustCompile(`"([^"]+)"`)
	tokenRe = regexp.MustCompile(`[\p{L}\p{N}\-_/]+`)
	junkRe  = regexp.MustCompile(`[^\p{L}\p{N}\s"']+`)

	fillerRe = regexp.MustCompile(`(?i)\b(can you|could you|please|tell me|show me|find me|search for|news about|what is|what are|latest on)\b`)

	stopwords = map[string]struct{}{
		"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {},
		"as": {}, "of": {}, "on": {}, "in": {}, "to": {}, "for": {}, "by": {},
		"with": {}, "at": {}, "from": {}, "is": {}, "are": {}, "was": {},
		"were": {}, "be": {}, "it": {}, "its": {}, "this": {}, "that": {},
		"about": {}, "into": {}, "over": {}, "some": {}, "no": {}, "not": {},
		"very": {}, "can": {}, "could": {}, "should": {}, "would": {},
		"will": {}, "do": {}, "does": {}, "did": {}, "have": {}, "has": {},
		"had": {}, "we": {}, "our": {}, "you": {}, "your": {}, "they": {},
		"their": {}, "i": {}, "me": {}, "my": {},
	}
)

// CleanQuery turns a raw search term into a concise keyword query: quoted
// phrases survive verbatim, filler and stopwords are dropped, and the
// keyword count is capped. An unusable input cleans to the empty string.
func CleanQuery(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	quoted := quoteRe.FindAllString(raw, -1)
	for i := range quoted {
		quoted[i] = strings.TrimSpace(quoted[i])
	}
	rest := quoteRe.ReplaceAllString(raw, " ")

	rest = strings.ToLower(strings.TrimSpace(rest))
	rest = fillerRe.ReplaceAllString(rest, " ")

	keywords := make([]string, 0, 12)
	seen := map[string]struct{}{}
	for _, tok := range tokenRe.FindAllString(rest, -1) {
		tok = strings.Trim(tok, "-_/")
		if tok == "" {
			continue
		}
		if _, skip := stopwords[tok]; skip {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
		if len(keywords) >= 12 {
			break
		}
	}

	parts := append(quoted, keywords...)
	if len(parts) == 0 {
		return ""
	}
	query := strings.Join(parts, " ")
	query = junkRe.ReplaceAllString(query, "")
	return strings.TrimSpace(query)
}
