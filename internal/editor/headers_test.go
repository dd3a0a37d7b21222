package editor

import (
	"testing"

	"prefixddns-cli/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestParseHeaders(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want model.Headers
	}{
		{
			name: "drops line without colon",
			in:   "Authorization: Bearer X\nbad-line\nContent-Type: application/json",
			want: model.Headers{"Authorization": "Bearer X", "Content-Type": "application/json"},
		},
		{
			name: "keeps extra colons in value",
			in:   "X-Url: https://example.com:8443/a",
			want: model.Headers{"X-Url": "https://example.com:8443/a"},
		},
		{
			name: "skips empty key",
			in:   "  : orphan\nA:1",
			want: model.Headers{"A": "1"},
		},
		{
			name: "empty value allowed",
			in:   "X-Empty:",
			want: model.Headers{"X-Empty": ""},
		},
		{
			name: "crlf and blank lines",
			in:   "A: 1\r\n\r\nB : 2 ",
			want: model.Headers{"A": "1", "B": "2"},
		},
		{
			name: "empty input",
			in:   "",
			want: model.Headers{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseHeaders(tc.in))
		})
	}
}

func TestFormatHeaders_RoundTrips(t *testing.T) {
	h := model.Headers{"B": "2", "A": "x: y"}
	text := FormatHeaders(h)
	assert.Equal(t, "A: x: y\nB: 2", text)
	assert.Equal(t, h, ParseHeaders(text))
	assert.Equal(t, "", FormatHeaders(nil))
}
