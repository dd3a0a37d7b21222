package model

import (
	"encoding/json"
	"sort"
	"strings"
)

type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Methods lists the methods offered by the editor, in display order.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete}

// NormalizeMethod upper-cases m and falls back to GET for anything the server would not send.
func NormalizeMethod(m string) Method {
	m = strings.ToUpper(strings.TrimSpace(m))
	for _, known := range Methods {
		if string(known) == m {
			return known
		}
	}
	return MethodGet
}

// Headers is the webhook header set. Order is irrelevant; it always encodes as an object.
type Headers map[string]string

func (h Headers) MarshalJSON() ([]byte, error) {
	if h == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]string(h))
}

// Keys returns header names sorted for stable display.
func (h Headers) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (h Headers) Clone() Headers {
	out := make(Headers, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Task is one webhook notification rule.
type Task struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Suffix          string  `json:"suffix"`
	Enabled         bool    `json:"enabled"`
	AllowAPITrigger bool    `json:"allow_api_trigger"`
	WebhookMethod   Method  `json:"webhook_method"`
	WebhookURL      string  `json:"webhook_url"`
	WebhookHeaders  Headers `json:"webhook_headers"`
	// WebhookBody is nil when the task sends no body.
	WebhookBody *string `json:"webhook_body"`
}

// UnmarshalJSON applies the server's defaults: enabled unless stated otherwise.
func (t *Task) UnmarshalJSON(b []byte) error {
	type rawTask Task
	raw := rawTask{Enabled: true}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = Task(raw)
	if t.WebhookHeaders == nil {
		t.WebhookHeaders = Headers{}
	}
	return nil
}

// Clone returns a deep copy; nothing is shared with t.
func (t Task) Clone() Task {
	out := t
	out.WebhookHeaders = t.WebhookHeaders.Clone()
	if t.WebhookBody != nil {
		body := *t.WebhookBody
		out.WebhookBody = &body
	}
	return out
}

// Body returns the body text, or "" when absent.
func (t Task) Body() string {
	if t.WebhookBody == nil {
		return ""
	}
	return *t.WebhookBody
}

// BodyPtr normalizes empty body text to an absent body.
func BodyPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// TestRequest is the payload of POST /api/test-webhook.
type TestRequest struct {
	Task   Task   `json:"task"`
	FakeIP string `json:"fake_ip"`
}

// TriggerRequest is the payload of POST /api/trigger/{task_name}.
type TriggerRequest struct {
	IP string `json:"ip"`
}

// TriggerResponse mirrors the server's ApiResponse envelope.
type TriggerResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}
