package app

import (
	"strconv"
	"strings"

	"prefixddns-cli/internal/model"
)

// ParseLogLimit reads the log limit input the way the dashboard always has: the leading
// integer of s, 100 when there is none or it is zero, and never below 1.
func ParseLogLimit(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return model.DefaultLogLimit
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Out of range for int.
		if s[0] == '-' {
			return 1
		}
		return int(^uint(0) >> 1)
	}
	if n == 0 {
		return model.DefaultLogLimit
	}
	if n < 1 {
		return 1
	}
	return n
}

// logLimitText is what the settings input shows for a loaded config.
func logLimitText(n int) string {
	if n == 0 {
		n = model.DefaultLogLimit
	}
	return strconv.Itoa(n)
}
