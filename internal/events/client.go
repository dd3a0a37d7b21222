// Package events consumes the server's live log feed and keeps one connection
// alive for the life of the process.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"prefixddns-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

const DefaultReconnectDelay = 3 * time.Second

type Status int

const (
	StatusConnecting Status = iota
	StatusConnected
	StatusDisconnected
)

func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	default:
		return "connecting"
	}
}

// Label is the user-facing text for the status indicator.
func (s Status) Label() string {
	switch s {
	case StatusConnected:
		return "Connected"
	case StatusDisconnected:
		return "Disconnected"
	default:
		return "Connecting..."
	}
}

// StatusObserver sees every status transition. Only the latest status matters.
type StatusObserver interface {
	StatusChanged(Status)
}

// EntrySink receives decoded log entries.
type EntrySink interface {
	Append(model.LogEntry)
}

// StreamError is a payload that could not be decoded. It is logged and dropped.
type StreamError struct {
	Data string
	Err  error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("malformed event payload: %v", e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// ParseEntry decodes one event payload.
func ParseEntry(data string) (model.LogEntry, error) {
	var e model.LogEntry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return model.LogEntry{}, &StreamError{Data: data, Err: err}
	}
	return e, nil
}

type openedMsg struct {
	gen  int
	conn Conn
}

type dataMsg struct {
	gen  int
	data string
}

type errorMsg struct {
	gen int
	err error
}

type reconnectMsg struct{ seq int }

type Options struct {
	Dialer         Dialer
	Scheduler      Scheduler
	ReconnectDelay time.Duration
	Observer       StatusObserver
	Sink           EntrySink
}

// Client is the reconnecting stream state machine:
//
//	Connecting -> Connected -> Disconnected -(delay)-> Connecting -> ...
//
// It runs on the caller's event loop: Connect and Update return commands whose
// results come back through Update. At most one connection is live at a time and
// at most one reconnect is pending.
type Client struct {
	dialer   Dialer
	sched    Scheduler
	delay    time.Duration
	observer StatusObserver
	sink     EntrySink

	status Status
	// gen identifies the current connection attempt; results from older ones are dropped.
	gen  int
	conn Conn

	timerSeq int
	// pending is the sequence of the scheduled reconnect, 0 when none.
	pending int

	stopped bool
}

func NewClient(opts Options) *Client {
	if opts.Scheduler == nil {
		opts.Scheduler = TickScheduler{}
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = DefaultReconnectDelay
	}
	return &Client{
		dialer:   opts.Dialer,
		sched:    opts.Scheduler,
		delay:    opts.ReconnectDelay,
		observer: opts.Observer,
		sink:     opts.Sink,
		status:   StatusConnecting,
	}
}

func (c *Client) Status() Status { return c.status }

// ReconnectPending reports whether a reconnect timer is scheduled.
func (c *Client) ReconnectPending() bool { return c.pending != 0 }

// SetSink redirects decoded entries.
func (c *Client) SetSink(s EntrySink) { c.sink = s }

// Connect closes any current connection and opens a new one.
func (c *Client) Connect() tea.Cmd {
	if c.stopped {
		return nil
	}
	c.setStatus(StatusConnecting)
	c.closeConn()
	c.gen++
	gen := c.gen
	dialer := c.dialer
	return func() tea.Msg {
		conn, err := dialer.Dial(context.Background())
		if err != nil {
			return errorMsg{gen: gen, err: err}
		}
		return openedMsg{gen: gen, conn: conn}
	}
}

// Stop closes the connection and cancels any pending reconnect for good.
func (c *Client) Stop() {
	c.stopped = true
	c.pending = 0
	c.closeConn()
	c.gen++
}

// Update handles the client's own messages and ignores everything else.
func (c *Client) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case openedMsg:
		if msg.gen != c.gen || c.stopped {
			_ = msg.conn.Close()
			return nil
		}
		c.conn = msg.conn
		c.pending = 0
		c.setStatus(StatusConnected)
		return readCmd(msg.gen, msg.conn)

	case dataMsg:
		if msg.gen != c.gen {
			return nil
		}
		entry, err := ParseEntry(msg.data)
		if err != nil {
			log.Printf("events: %v", err)
		} else if c.sink != nil {
			c.sink.Append(entry)
		}
		return readCmd(msg.gen, c.conn)

	case errorMsg:
		if msg.gen != c.gen || c.stopped {
			return nil
		}
		log.Printf("events: connection lost: %v", msg.err)
		c.setStatus(StatusDisconnected)
		c.closeConn()
		if c.pending != 0 {
			return nil
		}
		c.timerSeq++
		c.pending = c.timerSeq
		return c.sched.Schedule(c.delay, reconnectMsg{seq: c.pending})

	case reconnectMsg:
		if msg.seq != c.pending {
			return nil
		}
		c.pending = 0
		return c.Connect()
	}
	return nil
}

func readCmd(gen int, conn Conn) tea.Cmd {
	if conn == nil {
		return nil
	}
	return func() tea.Msg {
		data, err := conn.Next()
		if err != nil {
			return errorMsg{gen: gen, err: err}
		}
		return dataMsg{gen: gen, data: data}
	}
}

func (c *Client) closeConn() {
	if c.conn == nil {
		return
	}
	_ = c.conn.Close()
	c.conn = nil
}

func (c *Client) setStatus(s Status) {
	if c.status == s {
		return
	}
	c.status = s
	if c.observer != nil {
		c.observer.StatusChanged(s)
	}
}
