package hub

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/Slayer366/gptokeyb2/internal/config"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// Broadcaster listens for controls snapshots and broadcasts them to the hub.
type Broadcaster struct {
	hub     *Hub
	changes <-chan config.StoreView

	mu        sync.Mutex
	lastState config.StoreView
	hasState  bool
	seq       int64
}

func NewBroadcaster(h *Hub, changes <-chan config.StoreView) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		changes: changes,
	}
}

// Run starts the broadcaster loop until ctx is cancelled or the changes
// channel is closed. Should be run in a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	var deltaCount int64

	for {
		select {
		case <-ctx.Done():
			return

		case view, ok := <-b.changes:
			if !ok {
				return
			}

			b.mu.Lock()
			first := !b.hasState
			delta := config.ComputeDelta(b.lastState, view)
			b.lastState = view
			b.hasState = true
			if !first && delta.IsEmpty() {
				b.mu.Unlock()
				continue
			}
			b.seq++
			deltaCount++

			// Send full sync periodically
			var msg *WSMessage
			if first || deltaCount >= deltaCountSync {
				msg = NewFullMessage(b.seq, &view)
				deltaCount = 0
			} else {
				msg = NewDeltaMessage(b.seq, delta)
			}
			b.mu.Unlock()
			b.broadcast(msg)

		case <-ticker.C:
			b.mu.Lock()
			if !b.hasState {
				b.mu.Unlock()
				continue
			}
			b.seq++
			view := b.lastState
			msg := NewFullMessage(b.seq, &view)
			b.mu.Unlock()
			b.broadcast(msg)
		}
	}
}

// SendInitialState sends the current full state to a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	b.seq++
	view := b.lastState
	msg := NewFullMessage(b.seq, &view)
	b.mu.Unlock()

	c.sendMessage(msg)
}

func (b *Broadcaster) broadcast(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", msg.Type, err)
		return
	}
	b.hub.Broadcast(data)
}
