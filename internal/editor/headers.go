package editor

import (
	"strings"

	"prefixddns-cli/internal/model"
)

// ParseHeaders reads newline-delimited "Key: Value" lines. It is deliberately lenient:
// each line splits on its first colon, both sides are trimmed, and lines without a
// colon or with an empty key are skipped without complaint.
func ParseHeaders(text string) model.Headers {
	out := model.Headers{}
	for _, line := range strings.Split(text, "\n") {
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(val)
	}
	return out
}

// FormatHeaders renders h in the form ParseHeaders reads, sorted by key.
func FormatHeaders(h model.Headers) string {
	if len(h) == 0 {
		return ""
	}
	lines := make([]string, 0, len(h))
	for _, k := range h.Keys() {
		lines = append(lines, k+": "+h[k])
	}
	return strings.Join(lines, "\n")
}
