// Package server is the viewer feed: it serves the generated scene over
// HTTP and pushes view toggles to every connected websocket viewer.
//
// Routes:
//
//	GET  /scene   current Frame as JSON
//	GET  /view    current view snapshot
//	POST /toggle  advance the toggle view and broadcast it
//	GET  /ws      websocket; sends the Frame on connect and accepts
//	              {"type":"toggle"} messages
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/chazu/habitat/pkg/config"
	"github.com/chazu/habitat/pkg/scene"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var log = config.NamedLogger("server")

// ErrNoScene is returned by a Backend that has not generated anything yet.
var ErrNoScene = errors.New("server: no scene generated")

// Backend supplies the scene and owns the toggle view. Implementations must
// be safe for concurrent use.
type Backend interface {
	Frame() (Frame, error)
	View() (scene.Snapshot, error)
	ToggleView() (scene.Snapshot, error)
}

// writeWait bounds a single websocket write.
const writeWait = 5 * time.Second

// Server routes requests to a Backend.
type Server struct {
	backend  Backend
	router   *mux.Router
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
}

// New builds the routes for b.
func New(b Backend) *Server {
	s := &Server{
		backend: b,
		router:  mux.NewRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
	s.router.HandleFunc("/scene", s.handleScene).Methods(http.MethodGet)
	s.router.HandleFunc("/view", s.handleView).Methods(http.MethodGet)
	s.router.HandleFunc("/toggle", s.handleToggle).Methods(http.MethodPost)
	s.router.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("viewer feed listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		s.closeClients()
		return srv.Shutdown(shutdown)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Debug("write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrNoScene) {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, ErrorData{Type: TypeError, Message: err.Error()})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	f, err := s.backend.Frame()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v, err := s.backend.View()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ViewData{Type: TypeView, View: v})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	v, err := s.toggle()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ViewData{Type: TypeView, View: v})
}

// toggle advances the view and tells every viewer.
func (s *Server) toggle() (scene.Snapshot, error) {
	v, err := s.backend.ToggleView()
	if err != nil {
		return v, err
	}
	log.WithField("state", v.State).Debug("view toggled")
	s.broadcast(ViewData{Type: TypeView, View: v})
	return v, nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Debug("websocket upgrade")
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	s.mu.Lock()
	s.clients[conn] = connMu
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	if f, err := s.backend.Frame(); err != nil {
		s.send(conn, connMu, ErrorData{Type: TypeError, Message: err.Error()})
	} else {
		s.send(conn, connMu, f)
	}

	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debug("websocket read")
			}
			return
		}
		switch msg.Type {
		case "toggle":
			if _, err := s.toggle(); err != nil {
				s.send(conn, connMu, ErrorData{Type: TypeError, Message: err.Error()})
			}
		case "scene":
			if f, err := s.backend.Frame(); err == nil {
				s.send(conn, connMu, f)
			}
		default:
			s.send(conn, connMu, ErrorData{Type: TypeError, Message: "unknown message type " + msg.Type})
		}
	}
}

func (s *Server) send(conn *websocket.Conn, mu *sync.Mutex, v any) {
	mu.Lock()
	defer mu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(v); err != nil {
		log.WithError(err).Debug("websocket write")
	}
}

// Publish sends a regenerated frame to every connected viewer.
func (s *Server) Publish(f Frame) {
	log.WithField("meshes", len(f.Meshes)).Debug("publishing frame")
	s.broadcast(f)
}

// broadcast sends v to every connected viewer.
func (s *Server) broadcast(v any) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn, mu := range s.clients {
		s.send(conn, mu, v)
	}
}

// Clients returns the number of connected viewers.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) closeClients() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn, mu := range s.clients {
		mu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		mu.Unlock()
	}
}
