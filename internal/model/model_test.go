package model

import (
	"encoding/json"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskUnmarshal_DefaultsEnabledAndHeaders(t *testing.T) {
	var task Task
	err := json.Unmarshal([]byte(`{"id":"a","name":"n","suffix":"::1","webhook_url":"u","webhook_method":"GET","webhook_body":null,"webhook_headers":null}`), &task)
	require.NoError(t, err)

	assert.True(t, task.Enabled)
	assert.False(t, task.AllowAPITrigger)
	assert.NotNil(t, task.WebhookHeaders)
	assert.Nil(t, task.WebhookBody)
}

func TestTaskUnmarshal_ExplicitDisabled(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","enabled":false,"allow_api_trigger":true}`), &task))
	assert.False(t, task.Enabled)
	assert.True(t, task.AllowAPITrigger)
}

func TestTaskMarshal_EmptyHeadersEncodeAsObject(t *testing.T) {
	b, err := json.Marshal(Task{ID: "x", WebhookMethod: MethodGet})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"webhook_headers":{}`)
	assert.Contains(t, string(b), `"webhook_body":null`)
}

func TestTaskClone_IsDeep(t *testing.T) {
	orig := Task{ID: "a", WebhookHeaders: Headers{"A": "1"}, WebhookBody: BodyPtr("body")}
	cp := orig.Clone()
	cp.WebhookHeaders["A"] = "2"
	*cp.WebhookBody = "changed"

	assert.Equal(t, "1", orig.WebhookHeaders["A"])
	assert.Equal(t, "body", orig.Body())
}

func TestConfigPatch_ApplyToKeepsAbsentFields(t *testing.T) {
	base := DefaultConfig()
	base.Tasks = []Task{{ID: "keep"}}

	var p ConfigPatch
	require.NoError(t, json.Unmarshal([]byte(`{"log_limit":25}`), &p))
	got := p.ApplyTo(base)

	assert.Equal(t, 25, got.LogLimit)
	assert.True(t, got.RunOnStartup)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "keep", got.Tasks[0].ID)
}

func TestNormalizeMethod(t *testing.T) {
	assert.Equal(t, MethodPatch, NormalizeMethod(" patch "))
	assert.Equal(t, MethodGet, NormalizeMethod(""))
	assert.Equal(t, MethodGet, NormalizeMethod("TRACE"))
}

func TestCombineIP(t *testing.T) {
	cases := []struct {
		prefix string
		suffix string
		want   string
	}{
		{"2001:db8:1:1::100", "::1", "2001:db8:1:1::1"},
		{"2001:db8:aaaa:bbbb::1", "::dead:beef", "2001:db8:aaaa:bbbb::dead:beef"},
		{"2001:db8::1", "0:0:0:0:1:2:3:4", "2001:db8::1:2:3:4"},
	}
	for _, tc := range cases {
		got, err := CombineIP(netip.MustParseAddr(tc.prefix), tc.suffix)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.String())
	}

	_, err := CombineIP(netip.MustParseAddr("2001:db8::1"), "invalid")
	assert.Error(t, err)
}

func TestRenderTemplate(t *testing.T) {
	vars, err := VarsFor("2001:db8::1", "::5")
	require.NoError(t, err)
	got := RenderTemplate("https://x/?ip={{combined_ip}}&p={{prefix}}", vars)
	assert.Equal(t, "https://x/?ip=2001:db8::5&p=2001:db8::1/64", got)
}

func TestLogEntryLabels(t *testing.T) {
	e := LogEntry{Level: "success"}
	assert.Equal(t, "SUCCESS", e.LevelLabel())
	assert.Equal(t, "UNK", e.SourceLabel())
}
