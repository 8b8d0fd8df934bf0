package net

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Path is where the command endpoint is mounted.
const Path = "/ws"

// Request asks the overlay to run one named command.
type Request struct {
	Command string `json:"command"`
	Arg     string `json:"arg,omitempty"`
}

// Reply answers a Request. Peers other than the sender receive the same
// message with Event set after a command succeeds.
type Reply struct {
	OK      bool   `json:"ok"`
	Event   bool   `json:"event,omitempty"`
	Command string `json:"command"`
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Dispatcher runs a command against the overlay.
type Dispatcher func(command, arg string) (string, error)

// Peer is one connected remote.
type Peer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (p *Peer) send(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return p.conn.WriteJSON(v)
}

// PeerManager tracks connected remotes.
type PeerManager struct {
	peers map[*Peer]string
	mu    sync.RWMutex
	log   *slog.Logger
}

func NewPeerManager(log *slog.Logger) *PeerManager {
	return &PeerManager{peers: make(map[*Peer]string), log: log}
}

func (pm *PeerManager) Add(p *Peer, addr string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peers[p] = addr
	pm.log.Info("remote connected", "addr", addr)
}

func (pm *PeerManager) Remove(p *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if addr, ok := pm.peers[p]; ok {
		delete(pm.peers, p)
		pm.log.Info("remote disconnected", "addr", addr)
	}
}

func (pm *PeerManager) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Broadcast sends v to every peer except exclude.
func (pm *PeerManager) Broadcast(v any, exclude *Peer) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	for p, addr := range pm.peers {
		if p == exclude {
			continue
		}
		if err := p.send(v); err != nil {
			pm.log.Warn("broadcast failed", "addr", addr, "err", err)
		}
	}
}

// CommandServer exposes the overlay's named commands over a websocket.
type CommandServer struct {
	dispatch Dispatcher
	peers    *PeerManager
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewCommandServer(dispatch Dispatcher, log *slog.Logger) *CommandServer {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "remote")
	return &CommandServer{
		dispatch: dispatch,
		peers:    NewPeerManager(log),
		// remotes are phones and laptops on the LAN, not browsers on this origin
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		log:      log,
	}
}

func (s *CommandServer) Peers() *PeerManager { return s.peers }

func (s *CommandServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.serveWS)
	return mux
}

// ListenAndServe serves on port until ctx is cancelled.
func (s *CommandServer) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	s.log.Info("command server listening", "port", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("command server: %w", err)
	}
	return nil
}

func (s *CommandServer) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "addr", r.RemoteAddr, "err", err)
		return
	}
	peer := &Peer{conn: conn}
	s.peers.Add(peer, r.RemoteAddr)
	defer func() {
		s.peers.Remove(peer)
		conn.Close()
	}()

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("read failed", "addr", r.RemoteAddr, "err", err)
			}
			return
		}

		reply := s.run(req)
		if err := peer.send(reply); err != nil {
			s.log.Warn("reply failed", "addr", r.RemoteAddr, "err", err)
			return
		}
		if reply.OK {
			reply.Event = true
			s.peers.Broadcast(reply, peer)
		}
	}
}

func (s *CommandServer) run(req Request) Reply {
	s.log.Info("remote command", "command", req.Command, "arg", req.Arg)
	result, err := s.dispatch(req.Command, req.Arg)
	if err != nil {
		return Reply{Command: req.Command, Error: err.Error()}
	}
	return Reply{OK: true, Command: req.Command, Result: result}
}
