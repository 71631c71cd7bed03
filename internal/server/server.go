// Package server exposes the loaded controls over HTTP and WebSocket.
package server

import (
	"context"
	"log"
	"net/http"

	"github.com/Slayer366/gptokeyb2/internal/config"
	"github.com/Slayer366/gptokeyb2/internal/hub"
)

// Source provides the controls the server publishes.
type Source interface {
	hub.Commander
	CurrentState() config.StoreView
}

// Server serves the profiles of a Source and pushes updates over /ws.
type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	source      Source
	addr        string
	httpServer  *http.Server
}

// New creates a server for addr. It does not listen until ListenAndServe.
func New(h *hub.Hub, b *hub.Broadcaster, src Source, addr string) *Server {
	return &Server{
		hub:         h,
		broadcaster: b,
		source:      src,
		addr:        addr,
	}
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.source))

	mux.HandleFunc("GET /api/profiles", handleProfiles(s.source))
	mux.HandleFunc("GET /api/profiles/{name}", handleProfile(s.source))
	mux.HandleFunc("GET /api/dump", handleDump(s.source))
	mux.HandleFunc("POST /api/reload", handleReload(s.source))

	return mux
}

func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	log.Printf("HTTP server listening on %s", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		log.Println("Shutting down HTTP server...")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
