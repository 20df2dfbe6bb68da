/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"dirpx.dev/rerender/apis"
)

// DefaultWriteTimeout bounds a single websocket write.
const DefaultWriteTimeout = 2 * time.Second

// ErrClosed is returned when emitting through a closed websocket emitter.
var ErrClosed = errors.New("rerender(diagnostics): emitter closed")

// Conn writes diagnostic messages to one websocket peer.
type Conn struct {
	mu      sync.Mutex
	ws      *websocket.Conn
	timeout time.Duration
	closed  bool
}

// NewConn wraps an established websocket connection.
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws, timeout: DefaultWriteTimeout}
}

// Dial connects to a devtools endpoint.
func Dial(ctx context.Context, url string, header http.Header) (*Conn, error) {
	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("rerender(diagnostics): dial %s: %s: %w", url, resp.Status, err)
		}
		return nil, fmt.Errorf("rerender(diagnostics): dial %s: %w", url, err)
	}
	return NewConn(ws), nil
}

// Emit writes a Message as JSON.
func (c *Conn) Emit(ctx context.Context, event string, p apis.Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.ws.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.ws.WriteJSON(Message{Event: event, Detail: p})
}

// Close sends a close frame and closes the connection.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(c.timeout))
	return c.ws.Close()
}

// Hub serves devtools clients over websocket and broadcasts every event to
// all of them. Clients whose write fails are dropped.
type Hub struct {
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu    sync.Mutex
	conns map[*Conn]struct{}
}

// NewHub returns an empty Hub. A nil logger means slog.Default().
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			// devtools run on another origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:   log,
		conns: make(map[*Conn]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the client until it
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("diagnostics: upgrade failed", "error", err)
		return
	}
	c := NewConn(ws)
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
	h.log.Debug("diagnostics: client connected", "remote", r.RemoteAddr)

	// drain reads so close frames are processed
	go func() {
		defer h.drop(c)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Emit implements apis.Emitter.
func (h *Hub) Emit(ctx context.Context, event string, p apis.Payload) error {
	h.mu.Lock()
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	var errs []error
	for _, c := range conns {
		if err := c.Emit(ctx, event, p); err != nil {
			errs = append(errs, err)
			h.drop(c)
		}
	}
	return errors.Join(errs...)
}

// Close disconnects every client.
func (h *Hub) Close() error {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[*Conn]struct{})
	h.mu.Unlock()

	var errs []error
	for c := range conns {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func (h *Hub) drop(c *Conn) {
	h.mu.Lock()
	_, ok := h.conns[c]
	delete(h.conns, c)
	h.mu.Unlock()
	if ok {
		_ = c.Close()
	}
}

var (
	_ apis.Emitter = (*Conn)(nil)
	_ apis.Emitter = (*Hub)(nil)
	_ http.Handler = (*Hub)(nil)
)
