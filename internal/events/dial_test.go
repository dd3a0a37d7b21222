package events

import (
	"context"
	"testing"
	"time"

	"prefixddns-cli/internal/fakeserver"
	"prefixddns-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPDialerStreamsBacklogThenLive(t *testing.T) {
	srv := fakeserver.Start(model.DefaultConfig())
	defer srv.Close()
	srv.Publish(model.LogEntry{Timestamp: "t0", Level: model.LevelInfo, Message: "backlog"})

	conn, err := NewHTTPDialer(srv.URL()).Dial(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	data, err := conn.Next()
	require.NoError(t, err)
	e, err := ParseEntry(data)
	require.NoError(t, err)
	assert.Equal(t, "backlog", e.Message)

	require.Eventually(t, func() bool { return srv.Streams() == 1 }, 2*time.Second, 10*time.Millisecond)
	srv.Publish(model.LogEntry{Timestamp: "t1", Level: model.LevelError, Source: "cf", Message: "live"})

	data, err = conn.Next()
	require.NoError(t, err)
	e, err = ParseEntry(data)
	require.NoError(t, err)
	assert.Equal(t, "live", e.Message)
	assert.Equal(t, model.LevelError, e.Level)

	srv.DropStreams()
	_, err = conn.Next()
	assert.Error(t, err)
}

func TestHTTPDialerRejectsErrorStatus(t *testing.T) {
	srv := fakeserver.Start(model.DefaultConfig())
	defer srv.Close()
	srv.Fail("GET /events", fakeserver.Failure{Status: 503, Body: "busy"})

	_, err := NewHTTPDialer(srv.URL()).Dial(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
