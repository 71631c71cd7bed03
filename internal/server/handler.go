package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/Slayer366/gptokeyb2/internal/config"
	"github.com/Slayer366/gptokeyb2/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local use
	},
}

func handleWebSocket(h *hub.Hub, b *hub.Broadcaster, src Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}

		client := hub.NewClient(h, conn)
		if !h.Register(client) {
			conn.Close()
			return
		}

		// Send current state to the new client
		b.SendInitialState(client)

		go client.WritePump()
		go client.ReadPumpWithHandler(src)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func handleProfiles(src Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, src.CurrentState())
	}
}

func handleProfile(src Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := config.NormalizeName(r.PathValue("name"))
		for _, pv := range src.CurrentState().Profiles {
			if strings.EqualFold(pv.Name, name) {
				writeJSON(w, http.StatusOK, pv)
				return
			}
		}
		writeError(w, http.StatusNotFound, config.ErrProfileNotFound)
	}
}

func handleDump(src Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, src.Dump())
	}
}

func handleReload(src Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := src.Reload()
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
