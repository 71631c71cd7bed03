package hub

import (
	"time"

	"github.com/Slayer366/gptokeyb2/internal/config"
)

// Message types sent from server to client.
const (
	TypeFull  = "full"
	TypeDelta = "delta"
	TypeDump  = "dump"
	TypeError = "error"
)

// Client command types.
const (
	CommandReload = "reload"
	CommandDump   = "dump"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string             `json:"type"`
	Seq       int64              `json:"seq"`
	Timestamp int64              `json:"timestamp"` // Unix milliseconds
	Data      *config.StoreView  `json:"data,omitempty"`
	Changes   *config.StoreDelta `json:"changes,omitempty"`
	Text      string             `json:"text,omitempty"`
}

// NewFullMessage creates a "full" message carrying every profile.
func NewFullMessage(seq int64, view *config.StoreView) *WSMessage {
	return &WSMessage{
		Type:      TypeFull,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      view,
	}
}

// NewDeltaMessage creates a "delta" message carrying only changed profiles.
func NewDeltaMessage(seq int64, changes *config.StoreDelta) *WSMessage {
	return &WSMessage{
		Type:      TypeDelta,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

func NewDumpMessage(text string) *WSMessage {
	return &WSMessage{
		Type:      TypeDump,
		Timestamp: time.Now().UnixMilli(),
		Text:      text,
	}
}

func NewErrorMessage(err error) *WSMessage {
	return &WSMessage{
		Type:      TypeError,
		Timestamp: time.Now().UnixMilli(),
		Text:      err.Error(),
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type string `json:"type"`
}
