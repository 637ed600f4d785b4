// Package preview streams rendered frames to browser clients over websockets
// and answers a small health endpoint. It is strictly an observer of the
// render loop; a slow or dead client only loses its own frames.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/example/stripd/internal/strip"
)

const (
	writeDeadline = 200 * time.Millisecond

	// Frames queued per client before new ones are dropped for it. The render
	// loop never waits on a client; a slow one just sees fewer frames.
	clientQueue = 8
)

// Server fans rendered frames out to connected websocket clients.
type Server struct {
	addr string
	log  zerolog.Logger

	mu        sync.RWMutex
	clients   map[*websocket.Conn]chan []byte
	frameID   uint64
	numLEDs   int
	startTime time.Time

	ln  net.Listener
	srv *http.Server
}

// New returns an unstarted preview server for a strip of count pixels.
func New(addr string, count int, log zerolog.Logger) *Server {
	return &Server{
		addr:      addr,
		log:       log,
		clients:   map[*websocket.Conn]chan []byte{},
		numLEDs:   count,
		startTime: time.Now(),
	}
}

// Start binds the address and begins serving /ws and /health. Bind failures
// are reported synchronously.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("bind preview address %s: %w", s.addr, err)
	}
	s.ln = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)
	s.srv = &http.Server{Handler: mux}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("preview server stopped")
		}
	}()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("preview server listening")
	return nil
}

// Addr returns the bound address, useful when the configured port is 0.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// Close shuts the HTTP server down and drops all clients.
func (s *Server) Close() error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := s.srv.Shutdown(ctx)

	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()
	for _, c := range conns {
		s.drop(c)
	}
	return err
}

// drop unregisters a client, closing its queue and connection exactly once.
func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	ch, ok := s.clients[conn]
	if ok {
		delete(s.clients, conn)
	}
	s.mu.Unlock()
	if ok {
		close(ch)
		_ = conn.Close()
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	ch := make(chan []byte, clientQueue)
	s.mu.Lock()
	s.clients[conn] = ch
	n := len(s.clients)
	s.mu.Unlock()
	s.log.Debug().Int("clients", n).Msg("preview client connected")

	// One writer per client so a stalled socket only backs up its own queue.
	go func() {
		for b := range ch {
			_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				s.log.Debug().Err(err).Msg("preview client dropped")
				s.drop(conn)
				for range ch {
				}
				return
			}
		}
	}()

	// Drain the read side so pings and close frames are processed; the client
	// is dropped when the read fails.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.drop(conn)
				return
			}
		}
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.startTime).Seconds(),
		"count":    s.numLEDs,
		"clients":  len(s.clients),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// wireFrame is the message pushed per rendered frame. RGB marshals to base64
// per encoding/json convention.
type wireFrame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	RGB     []byte `json:"rgb"`
}

// Broadcast pushes one logical frame to every connected client. Intended as
// the render loop's frame hook: it only enqueues, never touching a socket,
// so it cannot stall a tick no matter how slow the clients are. A client
// whose queue is full loses this frame.
func (s *Server) Broadcast(f strip.Frame) {
	rgb := make([]byte, len(f)*3)
	for i, px := range f {
		rgb[i*3+0] = px.R
		rgb[i*3+1] = px.G
		rgb[i*3+2] = px.B
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.frameID++
	b, _ := json.Marshal(wireFrame{T: time.Now().UnixNano(), FrameID: s.frameID, RGB: rgb})
	for _, ch := range s.clients {
		select {
		case ch <- b:
		default:
		}
	}
}
