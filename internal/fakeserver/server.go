// Package fakeserver is an in-process PrefixDDNS server for tests and demos. It
// speaks the same HTTP surface as the real one: config read/write, test webhook,
// API trigger and the live log feed.
package fakeserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"sync"
	"time"

	"prefixddns-cli/internal/model"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

// Failure makes an endpoint answer with Status and Body instead of succeeding.
type Failure struct {
	Status int
	Body   string
}

type Server struct {
	mu sync.Mutex

	config    json.RawMessage
	saves     []json.RawMessage
	tests     []model.TestRequest
	triggers  []string
	backlog   []model.LogEntry
	subs      map[int]chan string
	nextSub   int
	failures  map[string]Failure
	testReply string

	engine *gin.Engine
	http   *httptest.Server
}

func init() {
	gin.SetMode(gin.TestMode)
}

// New returns an unstarted server holding cfg.
func New(cfg model.Config) *Server {
	s := &Server{
		subs:      map[int]chan string{},
		failures:  map[string]Failure{},
		testReply: "Webhook sent! Status: 200 OK",
	}
	s.SetConfig(cfg)
	s.engine = s.routes()
	return s
}

// Start listens on a local port and returns the base URL.
func Start(cfg model.Config) *Server {
	s := New(cfg)
	s.http = httptest.NewServer(s.engine)
	return s
}

func (s *Server) URL() string {
	if s.http == nil {
		return ""
	}
	return s.http.URL
}

// Handler exposes the router, e.g. for httptest.NewRecorder.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Close() {
	s.DropStreams()
	if s.http != nil {
		s.http.Close()
	}
}

// SetConfig replaces what GET /api/config returns.
func (s *Server) SetConfig(cfg model.Config) {
	b, _ := json.Marshal(cfg)
	s.SetRawConfig(b)
}

// SetRawConfig lets tests serve partial documents.
func (s *Server) SetRawConfig(raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = append(json.RawMessage(nil), raw...)
}

// Config decodes the stored document.
func (s *Server) Config() model.Config {
	s.mu.Lock()
	raw := s.config
	s.mu.Unlock()
	cfg := model.DefaultConfig()
	_ = json.Unmarshal(raw, &cfg)
	return cfg
}

// Saves returns the raw bodies of every accepted POST /api/config.
func (s *Server) Saves() []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]json.RawMessage(nil), s.saves...)
}

func (s *Server) Tests() []model.TestRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.TestRequest(nil), s.tests...)
}

// Triggers lists "task@ip" for every successful trigger.
func (s *Server) Triggers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.triggers...)
}

// Fail makes route (e.g. "POST /api/config") fail until cleared with Recover.
func (s *Server) Fail(route string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = f
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// SetTestReply sets the text answer of POST /api/test-webhook.
func (s *Server) SetTestReply(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.testReply = text
}

// Publish records e in the backlog and sends it to every open stream.
func (s *Server) Publish(e model.LogEntry) {
	b, _ := json.Marshal(e)
	s.mu.Lock()
	s.backlog = append(s.backlog, e)
	subs := make([]chan string, 0, len(s.subs))
	for _, ch := range s.subs {
		subs = append(subs, ch)
	}
	s.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- string(b):
		default:
		}
	}
}

// PublishRaw sends data verbatim to every open stream without recording it.
func (s *Server) PublishRaw(data string) {
	s.mu.Lock()
	subs := make([]chan string, 0, len(s.subs))
	for _, ch := range s.subs {
		subs = append(subs, ch)
	}
	s.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- data:
		default:
		}
	}
}

// Streams reports how many clients are attached to /events.
func (s *Server) Streams() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// DropStreams ends every open /events response.
func (s *Server) DropStreams() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

func (s *Server) failure(route string) (Failure, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.failures[route]
	return f, ok
}

func (s *Server) routes() *gin.Engine {
	g := gin.New()
	g.Use(gin.Recovery())
	g.Use(func(c *gin.Context) {
		if f, ok := s.failure(c.Request.Method + " " + c.FullPath()); ok {
			c.String(f.Status, f.Body)
			c.Abort()
			return
		}
		c.Next()
	})

	api := g.Group("/api")
	api.GET("/config", s.handleGetConfig)
	api.POST("/config", s.handlePostConfig)
	api.POST("/test-webhook", s.handleTestWebhook)
	api.POST("/trigger/:task_name", s.handleTrigger)
	g.GET("/events", s.handleEvents)
	return g
}

func (s *Server) handleGetConfig(c *gin.Context) {
	s.mu.Lock()
	raw := s.config
	s.mu.Unlock()
	c.Data(http.StatusOK, "application/json", raw)
}

func (s *Server) handlePostConfig(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	var cfg model.Config
	if err := json.Unmarshal(body, &cfg); err != nil {
		c.String(http.StatusUnprocessableEntity, "Failed to deserialize the JSON body: %v", err)
		return
	}
	s.mu.Lock()
	s.config = append(json.RawMessage(nil), body...)
	s.saves = append(s.saves, append(json.RawMessage(nil), body...))
	s.mu.Unlock()
	c.String(http.StatusOK, "Config updated")
}

func (s *Server) handleTestWebhook(c *gin.Context) {
	var req model.TestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusUnprocessableEntity, "Failed to deserialize the JSON body: %v", err)
		return
	}
	s.mu.Lock()
	s.tests = append(s.tests, req)
	reply := s.testReply
	s.mu.Unlock()
	c.String(http.StatusOK, reply)
}

func (s *Server) handleTrigger(c *gin.Context) {
	name := c.Param("task_name")
	var req model.TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusUnprocessableEntity, "Failed to deserialize the JSON body: %v", err)
		return
	}
	cfg := s.Config()
	idx := cfg.FindTaskByName(name)
	if idx < 0 {
		c.JSON(http.StatusNotFound, model.TriggerResponse{Status: "error", Message: fmt.Sprintf("Task '%s' not found", name)})
		return
	}
	task := cfg.Tasks[idx]
	if !task.AllowAPITrigger {
		c.JSON(http.StatusForbidden, model.TriggerResponse{Status: "error", Message: "API trigger not enabled for this task"})
		return
	}
	addr, err := netip.ParseAddr(req.IP)
	if err != nil || !addr.Is6() || addr.Is4In6() {
		c.JSON(http.StatusBadRequest, model.TriggerResponse{Status: "error", Message: "Invalid IPv6 address"})
		return
	}
	combined, err := model.CombineIP(addr, task.Suffix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.TriggerResponse{Status: "error", Message: err.Error()})
		return
	}
	s.mu.Lock()
	s.triggers = append(s.triggers, name+"@"+req.IP)
	s.mu.Unlock()
	data, _ := json.Marshal(map[string]string{"combined_ip": combined.String()})
	c.JSON(http.StatusOK, model.TriggerResponse{Status: "success", Message: "Task triggered", Data: data})
}

func (s *Server) handleEvents(c *gin.Context) {
	ch := make(chan string, 64)
	s.mu.Lock()
	backlog := append([]model.LogEntry(nil), s.backlog...)
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		if cur, ok := s.subs[id]; ok && cur == ch {
			delete(s.subs, id)
		}
		s.mu.Unlock()
	}()

	w := c.Writer
	w.Header().Set("Content-Type", sse.ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	for _, e := range backlog {
		if err := sse.Encode(w, sse.Event{Data: e}); err != nil {
			return
		}
	}
	w.Flush()

	keepAlive := time.NewTicker(15 * time.Second)
	defer keepAlive.Stop()
	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-keepAlive.C:
			if _, err := io.WriteString(w, ":keep-alive\n\n"); err != nil {
				return
			}
			w.Flush()
		case data, ok := <-ch:
			if !ok {
				return
			}
			if err := sse.Encode(w, sse.Event{Data: data}); err != nil {
				return
			}
			w.Flush()
		}
	}
}
