// Package templates is the fixed catalog of task presets used to seed new-task drafts.
package templates

import (
	"prefixddns-cli/internal/model"
)

// EmptyKey selects the blank task shape.
const EmptyKey = "empty"

type preset struct {
	key  string
	task model.Task
}

func body(s string) *string { return &s }

var catalog = []preset{
	{key: "webhook", task: model.Task{
		Name:           "Generic Webhook",
		WebhookMethod:  model.MethodPost,
		WebhookURL:     "https://example.com/webhook",
		WebhookHeaders: model.Headers{"Content-Type": "application/json"},
		WebhookBody:    body("{\n  \"ip\": \"{{combined_ip}}\"\n}"),
	}},
	{key: "cloudflare", task: model.Task{
		Name:           "Cloudflare DNS",
		WebhookMethod:  model.MethodPut,
		WebhookURL:     "https://api.cloudflare.com/client/v4/zones/YOUR_ZONE_ID/dns_records/YOUR_RECORD_ID",
		WebhookHeaders: model.Headers{"Authorization": "Bearer YOUR_TOKEN", "Content-Type": "application/json"},
		WebhookBody:    body("{\n  \"type\": \"AAAA\",\n  \"name\": \"example.com\",\n  \"content\": \"{{combined_ip}}\",\n  \"ttl\": 120,\n  \"proxied\": false\n}"),
		Suffix:         "::1",
	}},
	{key: "dynv6", task: model.Task{
		Name:          "Dynv6 (Zone)",
		WebhookMethod: model.MethodGet,
		WebhookURL:    "https://dynv6.com/api/update?hostname=YOUR_HOSTNAME&token=YOUR_TOKEN&ipv6={{combined_ip}}",
	}},
	{key: "dynv6_subdomain", task: model.Task{
		Name:           "Dynv6 (Subdomain)",
		WebhookMethod:  model.MethodPatch,
		WebhookURL:     "https://dynv6.com/api/v2/zones/YOUR_ZONE_ID/records/YOUR_RECORD_ID",
		WebhookHeaders: model.Headers{"Authorization": "Bearer YOUR_TOKEN", "Content-Type": "application/json"},
		WebhookBody:    body("{\n  \"data\": \"{{combined_ip}}\"\n}"),
	}},
	{key: "dynu", task: model.Task{
		Name:          "Dynu (Zone)",
		WebhookMethod: model.MethodGet,
		WebhookURL:    "https://api.dynu.com/nic/update?hostname=YOUR_HOSTNAME&myipv6={{combined_ip}}&username=YOUR_USERNAME&password=YOUR_PASSWORD",
	}},
	{key: "dynu_subdomain", task: model.Task{
		Name:          "Dynu (Subdomain/Alias)",
		WebhookMethod: model.MethodGet,
		WebhookURL:    "https://api.dynu.com/nic/update?hostname=YOUR_ROOT_DOMAIN&alias=YOUR_SUBDOMAIN&myipv6={{combined_ip}}&username=YOUR_USERNAME&password=YOUR_PASSWORD",
	}},
	{key: "afraid", task: model.Task{
		Name:          "Afraid.org (FreeDNS)",
		WebhookMethod: model.MethodGet,
		WebhookURL:    "https://freedns.afraid.org/dynamic/update.php?YOUR_TOKEN&address={{combined_ip}}",
	}},
	{key: "duckdns", task: model.Task{
		Name:          "DuckDNS",
		WebhookMethod: model.MethodGet,
		WebhookURL:    "https://www.duckdns.org/update?domains=YOUR_DOMAIN&token=YOUR_TOKEN&ipv6={{combined_ip}}",
	}},
	{key: "desec", task: model.Task{
		Name:           "deSEC.io",
		WebhookMethod:  model.MethodGet,
		WebhookURL:     "https://update.dedyn.io/?hostname=YOUR_FULL_DOMAIN&myipv6={{combined_ip}}",
		WebhookHeaders: model.Headers{"Authorization": "Token YOUR_TOKEN"},
	}},
	{key: "ydns", task: model.Task{
		Name:           "YDNS",
		WebhookMethod:  model.MethodGet,
		WebhookURL:     "https://ydns.io/api/v1/update/?host=YOUR_HOST&ip={{combined_ip}}",
		WebhookHeaders: model.Headers{"Authorization": "Basic YOUR_BASE64_AUTH"},
	}},
}

// Empty is the canonical blank task shape.
func Empty() model.Task {
	return model.Task{
		WebhookMethod:  model.MethodGet,
		WebhookHeaders: model.Headers{},
	}
}

// Get returns a copy of the preset for key, or Empty() for EmptyKey and unknown keys.
// Callers may freely edit the result.
func Get(key string) model.Task {
	for _, p := range catalog {
		if p.key == key {
			t := p.task.Clone()
			if t.WebhookHeaders == nil {
				t.WebhookHeaders = model.Headers{}
			}
			return t
		}
	}
	return Empty()
}

// Has reports whether key names a preset (EmptyKey is not a preset).
func Has(key string) bool {
	for _, p := range catalog {
		if p.key == key {
			return true
		}
	}
	return false
}

// Keys lists EmptyKey first, then presets in catalog order.
func Keys() []string {
	out := make([]string, 0, len(catalog)+1)
	out = append(out, EmptyKey)
	for _, p := range catalog {
		out = append(out, p.key)
	}
	return out
}

// Name is the selector label for key.
func Name(key string) string {
	if key == EmptyKey {
		return "Empty Template"
	}
	for _, p := range catalog {
		if p.key == key {
			return p.task.Name
		}
	}
	return key
}
