package events

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Conn is one live event feed connection.
type Conn interface {
	// Next blocks until the next event payload arrives or the connection fails.
	Next() (string, error)
	Close() error
}

// Dialer opens a new connection to the event feed.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// HTTPDialer opens GET {URL} as a text/event-stream.
type HTTPDialer struct {
	URL    string
	Client *http.Client
}

// NewHTTPDialer builds a dialer for server + "/events". The HTTP client has no overall
// timeout since the response never ends; only the wait for headers is bounded.
func NewHTTPDialer(server string) *HTTPDialer {
	return &HTTPDialer{
		URL: strings.TrimRight(strings.TrimSpace(server), "/") + "/events",
		Client: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: 10 * time.Second,
			},
		},
	}
}

func (d *HTTPDialer) Dial(ctx context.Context) (Conn, error) {
	// The connection outlives the dial call, so it gets its own lifetime.
	connCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	req, err := http.NewRequestWithContext(connCtx, http.MethodGet, d.URL, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("events: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return &httpConn{body: resp.Body, dec: NewDecoder(resp.Body), cancel: cancel}, nil
}

type httpConn struct {
	body   io.ReadCloser
	dec    *Decoder
	cancel context.CancelFunc
}

func (c *httpConn) Next() (string, error) {
	ev, err := c.dec.Next()
	if err != nil {
		return "", err
	}
	return ev.Data, nil
}

func (c *httpConn) Close() error {
	c.cancel()
	return c.body.Close()
}
