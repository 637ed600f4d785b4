// Package control exposes the live control channel: a Unix-domain socket
// accepting one JSON command per line and applying validated mutations to
// the runtime state. It is an isolated failure domain; nothing in here can
// stall or crash the render loop.
package control

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/example/stripd/internal/tempo"
)

// Server owns the socket path as a scoped resource: the stale file is
// removed before binding and the live one is removed again on Close, so a
// restart never trips over "address already in use".
type Server struct {
	path  string
	tempo *tempo.Controller
	log   zerolog.Logger

	ln net.Listener
	wg sync.WaitGroup

	mu    sync.Mutex
	conns map[net.Conn]struct{} // nil once Close has run
}

// New returns an unstarted server that will mutate tc.
func New(path string, tc *tempo.Controller, log zerolog.Logger) *Server {
	return &Server{path: path, tempo: tc, log: log, conns: map[net.Conn]struct{}{}}
}

// Start binds the socket and begins accepting clients. The accept loop stops
// when ctx is canceled or Close is called.
func (s *Server) Start(ctx context.Context) error {
	if err := removeStale(s.path); err != nil {
		return err
	}
	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("bind control socket %s: %w", s.path, err)
	}
	s.ln = ln
	s.log.Info().Str("socket", s.path).Msg("control channel listening")

	s.wg.Add(1)
	go s.acceptLoop(ctx)
	return nil
}

// Close stops accepting, closes every open connection so idle clients cannot
// hold shutdown up, waits for the handlers to drain and removes the socket
// file.
func (s *Server) Close() error {
	if s.ln != nil {
		_ = s.ln.Close()
	}
	s.mu.Lock()
	for c := range s.conns {
		_ = c.Close()
	}
	s.conns = nil
	s.mu.Unlock()
	s.wg.Wait()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// track registers a live connection; it reports false when the server is
// already closing and the connection should be dropped immediately.
func (s *Server) track(c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns == nil {
		return false
	}
	s.conns[c] = struct{}{}
	return true
}

func (s *Server) untrack(c net.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

func removeStale(path string) error {
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove stale socket %s: %w", path, err)
		}
	}
	return nil
}

func (s *Server) acceptLoop(ctx context.Context) {
	defer s.wg.Done()
	// The watcher exits with the loop, not with the process: Close closes the
	// listener directly, so tying the watcher's life to ctx alone would leak
	// it on every non-cancel shutdown.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = s.ln.Close()
		case <-done:
		}
	}()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
			default:
				s.log.Debug().Err(err).Msg("control accept loop stopped")
			}
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(ctx, conn)
		}()
	}
}

// handle serves one client: commands are applied in receipt order and each
// gets exactly one reply line.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	if !s.track(conn) {
		return
	}
	defer s.untrack(conn)

	// Per-connection watcher with an exit path for the common case of the
	// client hanging up first.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	enc := json.NewEncoder(conn)
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := s.dispatch(line); err != nil {
			s.log.Warn().Err(err).Msg("control command rejected")
			_ = enc.Encode(errorReply(err))
			continue
		}
		_ = enc.Encode(successReply())
	}
	if err := scanner.Err(); err != nil {
		s.log.Debug().Err(err).Msg("control connection read error")
	}
}

func (s *Server) dispatch(line []byte) error {
	cmd, err := parseCommand(line)
	if err != nil {
		return err
	}
	switch cmd.Name {
	case "speed":
		if err := s.tempo.SetSpeed(cmd.Value); err != nil {
			return err
		}
		s.log.Info().Float64("speed", cmd.Value).Msg("speed updated")
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProperty, cmd.Name)
	}
}
