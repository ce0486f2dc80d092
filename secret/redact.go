package secret

import (
	"regexp"
	"strings"
	"sync"
)

// mask replaces secret material in redacted output.
const mask = "[REDACTED]"

// credentialPatterns catch credential-shaped substrings in text we did not
// produce ourselves, such as upstream error messages echoing a header.
var credentialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(bearer\s+)[a-z0-9._~+/=-]+`),
	regexp.MustCompile(`(?i)(x-api-key["':=\s]+)[a-z0-9-]+`),
	regexp.MustCompile(`(?i)("?api[_-]?key"?\s*[:=]\s*"?)[a-z0-9-]+`),
}

var (
	mu     sync.RWMutex
	values []string
)

// AddSensitive registers a literal value to be masked by Redact.
// Short values are ignored; masking one or two characters only advertises
// where the secret was.
func AddSensitive(value string) {
	if len(value) < 4 {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	values = append(values, value)
}

// Reset clears all registered sensitive values.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	values = nil
}

// Redact masks registered secret values and credential-shaped substrings.
func Redact(s string) string {
	mu.RLock()
	registered := values
	mu.RUnlock()

	for _, v := range registered {
		s = strings.ReplaceAll(s, v, mask)
	}
	for _, p := range credentialPatterns {
		s = p.ReplaceAllString(s, "${1}"+mask)
	}
	return s
}

// RedactValue walks a decoded JSON value and redacts every string in it.
// Maps and slices are copied, never mutated in place.
func RedactValue(v any) any {
	switch val := v.(type) {
	case string:
		return Redact(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = RedactValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = RedactValue(item)
		}
		return out
	default:
		return v
	}
}
