// Package fakeboard runs an in-process stand-in for the Vestaboard platform API.
// It serves GET /subscriptions and POST /subscriptions/{id}/message, checks the
// API key headers and records every request in arrival order.
package fakeboard

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// HeaderAPIKey carries the API key on every request.
	HeaderAPIKey = "X-Vestaboard-Api-Key"
	// HeaderAPISecret carries the API secret on every request.
	HeaderAPISecret = "X-Vestaboard-Api-Secret"
)

// Request is one recorded call.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Message is an accepted update as stored by the server.
type Message struct {
	ID           string
	Subscription string
	Text         *string
	Characters   [][]int
	Created      time.Time
}

// failure forces a status and body on one endpoint.
type failure struct {
	status int
	body   string
}

// Server is a fake platform bound to a single API key pair.
type Server struct {
	*httptest.Server

	apiKey    string
	apiSecret string

	mu            sync.Mutex
	subscriptions []string
	requests      []Request
	messages      []Message
	listFailure   *failure
	sendFailure   *failure
	now           func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithSubscriptions sets the subscription IDs returned by GET /subscriptions.
func WithSubscriptions(ids ...string) Option {
	return func(s *Server) { s.subscriptions = append([]string(nil), ids...) }
}

// WithListFailure makes GET /subscriptions answer status with body.
func WithListFailure(status int, body string) Option {
	return func(s *Server) { s.listFailure = &failure{status: status, body: body} }
}

// WithSendFailure makes POST .../message answer status with body.
func WithSendFailure(status int, body string) Option {
	return func(s *Server) { s.sendFailure = &failure{status: status, body: body} }
}

// WithClock overrides the time used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New starts a server. Close it when done.
func New(apiKey, apiSecret string, opts ...Option) *Server {
	s := &Server{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /subscriptions", s.handleSubscriptions)
	mux.HandleFunc("POST /subscriptions/{id}/message", s.handleMessage)
	s.Server = httptest.NewServer(s.record(s.authorize(mux)))
	return s
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Messages returns a copy of every accepted message.
func (s *Server) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderAPIKey) != s.apiKey || r.Header.Get(HeaderAPISecret) != s.apiSecret {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type idJSON struct {
	ID string `json:"_id"`
}

type subscriptionJSON struct {
	ID           string  `json:"_id"`
	Created      string  `json:"_created"`
	Title        *string `json:"title"`
	Icon         *string `json:"icon"`
	Installation struct {
		ID          string `json:"_id"`
		Installable idJSON `json:"installable"`
	} `json:"installation"`
	Boards []idJSON `json:"boards"`
}

func (s *Server) handleSubscriptions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	f := s.listFailure
	ids := append([]string(nil), s.subscriptions...)
	created := strconv.FormatInt(s.now().UnixMilli(), 10)
	s.mu.Unlock()
	if f != nil {
		writeRaw(w, f.status, f.body)
		return
	}

	subs := make([]subscriptionJSON, 0, len(ids))
	for _, id := range ids {
		var sub subscriptionJSON
		sub.ID = id
		sub.Created = created
		sub.Installation.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("installation/"+id)).String()
		sub.Installation.Installable.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("installable/"+s.apiKey)).String()
		sub.Boards = []idJSON{{ID: uuid.NewSHA1(uuid.NameSpaceURL, []byte("board/"+id)).String()}}
		subs = append(subs, sub)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"subscriptions": subs})
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	f := s.sendFailure
	known := false
	for _, sub := range s.subscriptions {
		if sub == id {
			known = true
			break
		}
	}
	s.mu.Unlock()
	if f != nil {
		writeRaw(w, f.status, f.body)
		return
	}
	if !known {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Subscription not found"})
		return
	}

	var body struct {
		Text       *string `json:"text"`
		Characters [][]int `json:"characters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || (body.Text == nil) == (body.Characters == nil) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Expected exactly one of text or characters"})
		return
	}

	msg := Message{
		ID:           uuid.NewString(),
		Subscription: id,
		Text:         body.Text,
		Characters:   body.Characters,
	}
	s.mu.Lock()
	msg.Created = s.now()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": map[string]interface{}{
			"id":      msg.ID,
			"text":    msg.Text,
			"created": strconv.FormatInt(msg.Created.UnixMilli(), 10),
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, body string) {
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
