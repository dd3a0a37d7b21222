package model

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

// DefaultTestIP is the documentation-range address sent with test runs.
const DefaultTestIP = "2001:db8::1"

// CombineIP keeps the /64 network of prefix and takes the interface id from suffix.
func CombineIP(prefix netip.Addr, suffix string) (netip.Addr, error) {
	if !prefix.Is6() || prefix.Is4In6() {
		return netip.Addr{}, fmt.Errorf("not an IPv6 address: %s", prefix)
	}
	s, err := netip.ParseAddr(strings.TrimSpace(suffix))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("invalid suffix %q: %w", suffix, err)
	}
	if !s.Is6() {
		return netip.Addr{}, errors.New("suffix must be an IPv6 address")
	}
	p := prefix.As16()
	x := s.As16()
	var out [16]byte
	copy(out[:8], p[:8])
	copy(out[8:], x[8:])
	return netip.AddrFrom16(out), nil
}

// TemplateVars are the placeholder values the server substitutes into URLs and bodies.
type TemplateVars struct {
	CombinedIP string
	OriginalIP string
	InputIP    string
	Prefix     string
}

// VarsFor computes the placeholder values for a task suffix and an input address.
// When the suffix cannot be combined the returned vars still carry the input address
// so callers can render a best-effort preview alongside the error.
func VarsFor(input string, suffix string) (TemplateVars, error) {
	ip, err := netip.ParseAddr(strings.TrimSpace(input))
	if err != nil {
		return TemplateVars{}, fmt.Errorf("invalid IPv6 address %q: %w", input, err)
	}
	vars := TemplateVars{
		CombinedIP: ip.String(),
		OriginalIP: ip.String(),
		InputIP:    ip.String(),
		Prefix:     ip.String() + "/64",
	}
	combined, err := CombineIP(ip, suffix)
	if err != nil {
		return vars, err
	}
	vars.CombinedIP = combined.String()
	return vars, nil
}

// RenderTemplate substitutes the {{...}} placeholders in text.
func RenderTemplate(text string, v TemplateVars) string {
	r := strings.NewReplacer(
		"{{combined_ip}}", v.CombinedIP,
		"{{original_ip}}", v.OriginalIP,
		"{{input_ip}}", v.InputIP,
		"{{prefix}}", v.Prefix,
	)
	return r.Replace(text)
}
