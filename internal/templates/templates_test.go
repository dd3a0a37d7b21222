package templates

import (
	"testing"

	"prefixddns-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ReturnsCopies(t *testing.T) {
	a := Get("cloudflare")
	a.WebhookHeaders["Authorization"] = "mutated"
	*a.WebhookBody = "mutated"
	a.Name = "mutated"

	b := Get("cloudflare")
	assert.Equal(t, "Bearer YOUR_TOKEN", b.WebhookHeaders["Authorization"])
	assert.Contains(t, b.Body(), "{{combined_ip}}")
	assert.Equal(t, "Cloudflare DNS", b.Name)
}

func TestGet_EmptyAndUnknownKeys(t *testing.T) {
	for _, key := range []string{EmptyKey, "", "nope"} {
		got := Get(key)
		assert.Equal(t, model.MethodGet, got.WebhookMethod, key)
		assert.Empty(t, got.Name, key)
		assert.Empty(t, got.WebhookURL, key)
		assert.NotNil(t, got.WebhookHeaders, key)
		assert.Nil(t, got.WebhookBody, key)
	}
}

func TestGet_DuckDNS(t *testing.T) {
	got := Get("duckdns")
	assert.Equal(t, "DuckDNS", got.Name)
	assert.Equal(t, model.MethodGet, got.WebhookMethod)
	assert.Contains(t, got.WebhookURL, "https://www.duckdns.org/update?")
	assert.Equal(t, "", got.Suffix)
	assert.Empty(t, got.WebhookHeaders)
}

func TestKeys_EmptyFirst(t *testing.T) {
	keys := Keys()
	require.NotEmpty(t, keys)
	assert.Equal(t, EmptyKey, keys[0])
	assert.Contains(t, keys, "ydns")
	assert.Equal(t, "Empty Template", Name(EmptyKey))
	assert.Equal(t, "Afraid.org (FreeDNS)", Name("afraid"))
	assert.False(t, Has(EmptyKey))
	assert.True(t, Has("desec"))
}
