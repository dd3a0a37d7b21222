package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLimit(t *testing.T) {
	cases := map[string]int{
		"":      100,
		"abc":   100,
		"0":     100,
		"-5":    1,
		"1":     1,
		" 250 ": 250,
		"12abc": 12,
		"+3":    3,
		"-":     100,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLimit(in), "input %q", in)
	}
}
