// Package api talks to the PrefixDDNS HTTP API. It performs I/O only; merging results
// into the draft happens in the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"prefixddns-cli/internal/model"
)

const (
	DefaultServer  = "http://127.0.0.1:3000"
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

// HTTPClient defines the http.Client subset required by Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls client behavior.
type Config struct {
	Server    string
	Timeout   time.Duration
	UserAgent string
}

type Client struct {
	cfg  Config
	base string
	http HTTPClient
}

// New constructs a Client with sane defaults.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if strings.TrimSpace(cfg.Server) == "" {
		cfg.Server = DefaultServer
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "prefixddns-cli"
	}
	return &Client{
		cfg:  cfg,
		base: strings.TrimRight(strings.TrimSpace(cfg.Server), "/"),
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// WithHTTPClient swaps the transport, mostly for tests.
func (c *Client) WithHTTPClient(h HTTPClient) *Client {
	c.http = h
	return c
}

func (c *Client) Server() string { return c.base }

// URL joins path onto the server base.
func (c *Client) URL(path string) string {
	return c.base + "/" + strings.TrimLeft(path, "/")
}

// FetchConfig reads GET /api/config. Fields the server omits are nil in the patch.
func (c *Client) FetchConfig(ctx context.Context) (model.ConfigPatch, error) {
	const op = "fetch config"
	body, err := c.do(ctx, op, http.MethodGet, "/api/config", nil)
	if err != nil {
		return model.ConfigPatch{}, err
	}
	var patch model.ConfigPatch
	if err := json.Unmarshal(body, &patch); err != nil {
		return model.ConfigPatch{}, &TransportError{Op: op, Status: http.StatusOK, Err: fmt.Errorf("decode: %w", err)}
	}
	return patch, nil
}

// SaveConfig sends the whole configuration with POST /api/config. Any 2xx is success.
func (c *Client) SaveConfig(ctx context.Context, cfg model.Config) error {
	_, err := c.do(ctx, "save config", http.MethodPost, "/api/config", cfg)
	return err
}

// TestWebhook runs a transient task on the server. The server answers with plain
// text that is meant for humans, on success and failure alike.
func (c *Client) TestWebhook(ctx context.Context, req model.TestRequest) (string, error) {
	body, err := c.do(ctx, "test webhook", http.MethodPost, "/api/test-webhook", req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// TriggerTask asks the server to run the named task for ip.
func (c *Client) TriggerTask(ctx context.Context, name string, ip string) (model.TriggerResponse, error) {
	const op = "trigger task"
	path := "/api/trigger/" + url.PathEscape(name)
	body, err := c.do(ctx, op, http.MethodPost, path, model.TriggerRequest{IP: ip})
	var resp model.TriggerResponse
	if len(body) > 0 {
		_ = json.Unmarshal(body, &resp)
	}
	if err != nil {
		var te *TransportError
		if resp.Message != "" && errors.As(err, &te) {
			te.Body = resp.Message
		}
		return resp, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, &TransportError{Op: op, Err: fmt.Errorf("encode: %w", err)}
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), reader)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("api: %s %s failed: %v", method, path, err)
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("api: %s %s -> %d", method, path, resp.StatusCode)
		return body, &TransportError{Op: op, Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
