package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"prefixddns-cli/internal/fakeserver"
	"prefixddns-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfig() model.Config {
	body := `{"ip":"{{combined_ip}}"}`
	return model.Config{
		Tasks: []model.Task{{
			ID:              "a1",
			Name:            "home",
			Suffix:          "::1",
			Enabled:         true,
			AllowAPITrigger: true,
			WebhookMethod:   model.MethodPost,
			WebhookURL:      "https://example.com/hook",
			WebhookHeaders:  model.Headers{"Content-Type": "application/json"},
			WebhookBody:     &body,
		}, {
			ID:             "b2",
			Name:           "locked",
			Suffix:         "::2",
			Enabled:        true,
			WebhookMethod:  model.MethodGet,
			WebhookURL:     "https://example.com/get",
			WebhookHeaders: model.Headers{},
		}},
		LogLimit:     250,
		RunOnStartup: false,
	}
}

func TestFetchAndSaveRoundTrip(t *testing.T) {
	srv := fakeserver.Start(sampleConfig())
	defer srv.Close()
	c := New(Config{Server: srv.URL() + "/"})

	patch, err := c.FetchConfig(context.Background())
	require.NoError(t, err)
	cfg := patch.ApplyTo(model.DefaultConfig())
	assert.Equal(t, sampleConfig(), cfg)

	require.NoError(t, c.SaveConfig(context.Background(), cfg))
	saves := srv.Saves()
	require.Len(t, saves, 1)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(saves[0], &sent))
	assert.Contains(t, sent, "log_limit")
	tasks := sent["tasks"].([]any)
	second := tasks[1].(map[string]any)
	assert.Nil(t, second["webhook_body"])
	assert.Equal(t, map[string]any{}, second["webhook_headers"])
}

func TestFetchPartialConfig(t *testing.T) {
	srv := fakeserver.Start(model.DefaultConfig())
	defer srv.Close()
	srv.SetRawConfig([]byte(`{"tasks":[{"id":"x","name":"n","suffix":"::1","allow_api_trigger":false,"webhook_method":"GET","webhook_url":"u","webhook_headers":{}}]}`))

	patch, err := New(Config{Server: srv.URL()}).FetchConfig(context.Background())
	require.NoError(t, err)
	assert.Nil(t, patch.LogLimit)
	assert.Nil(t, patch.RunOnStartup)
	require.NotNil(t, patch.Tasks)
	assert.True(t, (*patch.Tasks)[0].Enabled)

	cfg := patch.ApplyTo(model.DefaultConfig())
	assert.Equal(t, model.DefaultLogLimit, cfg.LogLimit)
	assert.True(t, cfg.RunOnStartup)
}

func TestSaveFailureCarriesBody(t *testing.T) {
	srv := fakeserver.Start(model.DefaultConfig())
	defer srv.Close()
	srv.Fail("POST /api/config", fakeserver.Failure{Status: http.StatusInternalServerError, Body: "Failed to save config"})

	err := New(Config{Server: srv.URL()}).SaveConfig(context.Background(), model.DefaultConfig())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusInternalServerError, te.Status)
	assert.Equal(t, "Failed to save config", te.Detail())
	assert.Empty(t, srv.Saves())
}

func TestFetchDecodeError(t *testing.T) {
	h := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer h.Close()

	_, err := New(Config{Server: h.URL}).FetchConfig(context.Background())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "fetch config", te.Op)
}

func TestTransportErrorWhenUnreachable(t *testing.T) {
	h := httptest.NewServer(http.NotFoundHandler())
	url := h.URL
	h.Close()

	_, err := New(Config{Server: url}).FetchConfig(context.Background())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.Status)
	assert.NotEmpty(t, te.Detail())
}

func TestTestWebhookReturnsText(t *testing.T) {
	srv := fakeserver.Start(model.DefaultConfig())
	defer srv.Close()
	srv.SetTestReply("Webhook sent! Status: 204 No Content\n")

	task := sampleConfig().Tasks[0]
	text, err := New(Config{Server: srv.URL()}).TestWebhook(context.Background(), model.TestRequest{Task: task, FakeIP: model.DefaultTestIP})
	require.NoError(t, err)
	assert.Equal(t, "Webhook sent! Status: 204 No Content", text)

	tests := srv.Tests()
	require.Len(t, tests, 1)
	assert.Equal(t, model.DefaultTestIP, tests[0].FakeIP)
	assert.Equal(t, "home", tests[0].Task.Name)
}

func TestTriggerTask(t *testing.T) {
	srv := fakeserver.Start(sampleConfig())
	defer srv.Close()
	c := New(Config{Server: srv.URL()})
	ctx := context.Background()

	resp, err := c.TriggerTask(ctx, "home", "2001:db8:1:2::abcd")
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Contains(t, string(resp.Data), "2001:db8:1:2::1")
	assert.Equal(t, []string{"home@2001:db8:1:2::abcd"}, srv.Triggers())

	cases := []struct {
		name, ip string
		status   int
	}{
		{"locked", "2001:db8::1", http.StatusForbidden},
		{"missing", "2001:db8::1", http.StatusNotFound},
		{"home", "192.0.2.1", http.StatusBadRequest},
	}
	for _, tc := range cases {
		_, err := c.TriggerTask(ctx, tc.name, tc.ip)
		var te *TransportError
		require.True(t, errors.As(err, &te), "%s: %v", tc.name, err)
		assert.Equal(t, tc.status, te.Status, tc.name)
		assert.NotContains(t, te.Detail(), "{", "detail should be the server message")
	}
}
