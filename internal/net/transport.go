package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"TouchTracker/internal/state"
)

const writeTimeout = 5 * time.Second

// Peer is one connected client.
type Peer struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	session *session
}

func (p *Peer) write(data []byte) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if err := p.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub accepts WebSocket clients that send pointer input to the board and
// receive a snapshot after every change.
type Hub struct {
	board    *state.Board
	upgrader websocket.Upgrader
	peers    map[*Peer]struct{}
	mu       sync.RWMutex
}

// NewHub creates a hub driving board.
func NewHub(board *state.Board) *Hub {
	return &Hub{
		board: board,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		peers: make(map[*Peer]struct{}),
	}
}

func (h *Hub) add(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p] = struct{}{}
	state.Logger().Info("[HOST] client connected", "addr", p.conn.RemoteAddr().String())
}

func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[p]; ok {
		delete(h.peers, p)
		state.Logger().Info("[HOST] client disconnected", "addr", p.conn.RemoteAddr().String())
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Broadcast sends the current snapshot to every client.
func (h *Hub) Broadcast() {
	data, err := json.Marshal(NewSnapshotMessage(h.board.Snapshot()))
	if err != nil {
		state.Logger().Error("[HOST] could not encode snapshot", "err", err)
		return
	}
	h.mu.RLock()
	peers := make([]*Peer, 0, len(h.peers))
	for p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.RUnlock()

	for _, p := range peers {
		if err := p.write(data); err != nil {
			state.Logger().Warn("[HOST] error sending snapshot", "addr", p.conn.RemoteAddr().String(), "err", err)
			p.conn.Close()
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		p.conn.Close()
	}
}

// ServeHTTP upgrades the request and reads client messages until the
// connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		state.Logger().Warn("[HOST] upgrade failed", "err", err)
		return
	}
	p := &Peer{conn: conn, session: newSession()}
	h.add(p)
	defer func() {
		h.remove(p)
		conn.Close()
		if p.session.abandon(h.board) {
			state.Logger().Info("[HOST] cancelled gesture of departed client", "addr", conn.RemoteAddr().String())
		}
	}()

	data, err := json.Marshal(NewSnapshotMessage(h.board.Snapshot()))
	if err == nil {
		err = p.write(data)
	}
	if err != nil {
		state.Logger().Warn("[HOST] could not send initial snapshot", "err", err)
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				state.Logger().Info("[HOST] client read ended", "addr", conn.RemoteAddr().String(), "err", err)
			}
			return
		}
		state.Logger().Debug("[HOST] received", "type", msg.Type, "addr", conn.RemoteAddr().String())
		if err := p.session.apply(h.board, msg); err != nil {
			state.Logger().Warn("[HOST] ignoring message", "err", err)
		}
	}
}

// Server serves the hub on /ws.
type Server struct {
	hub  *Hub
	http *http.Server
	ln   net.Listener
}

// Listen binds addr (":8888") for hub.
func Listen(addr string, hub *Hub) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	return &Server{
		hub:  hub,
		http: &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		ln:   ln,
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Port returns the bound TCP port.
func (s *Server) Port() int {
	if a, ok := s.ln.Addr().(*net.TCPAddr); ok {
		return a.Port
	}
	return 0
}

// Serve blocks until ctx is cancelled or the server fails.
func (s *Server) Serve(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		state.Logger().Info("[HOST] server listening", "addr", s.ln.Addr().String())
		errc <- s.http.Serve(s.ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.Close()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
