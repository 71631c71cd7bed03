package hub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Slayer366/gptokeyb2/internal/config"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub()
	go h.Run(ctx)
	return h
}

func addClient(t *testing.T, h *Hub) *Client {
	t.Helper()
	c := NewClient(h, nil)
	n := h.ClientCount()
	if !h.Register(c) {
		t.Fatal("Register() = false on a running hub")
	}
	waitFor(t, "client registration", func() bool { return h.ClientCount() == n+1 })
	return c
}

func receive(t *testing.T, c *Client) *WSMessage {
	t.Helper()
	select {
	case data, ok := <-c.send:
		if !ok {
			t.Fatal("client channel closed")
		}
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		return &msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
	return nil
}

func storeView(names ...string) config.StoreView {
	v := config.StoreView{}
	for _, name := range names {
		v.Profiles = append(v.Profiles, config.ProfileView{Name: name, Bindings: []config.BindingView{}})
	}
	return v
}

func TestHubBroadcast(t *testing.T) {
	h := startHub(t)
	a := addClient(t, h)
	b := addClient(t, h)

	h.Broadcast([]byte(`{"type":"full","seq":1}`))

	for _, c := range []*Client{a, b} {
		if msg := receive(t, c); msg.Type != TypeFull || msg.Seq != 1 {
			t.Errorf("message = %+v", msg)
		}
	}

	h.Unregister(a)
	waitFor(t, "client removal", func() bool { return h.ClientCount() == 1 })
	if _, ok := <-a.send; ok {
		t.Error("unregistered client channel should be closed")
	}
	if a.trySend([]byte("x")) {
		t.Error("trySend on a closed client should fail")
	}
}

func TestHubStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub()
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	c := addClient(t, h)
	cancel()
	<-stopped

	if _, ok := <-c.send; ok {
		t.Error("stopping the hub should close client channels")
	}
	if h.Register(NewClient(h, nil)) {
		t.Error("Register() after stop should return false")
	}
	h.Unregister(c)
}

func TestBroadcaster(t *testing.T) {
	h := startHub(t)
	c := addClient(t, h)

	changes := make(chan config.StoreView)
	b := NewBroadcaster(h, changes)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	changes <- storeView("controls")
	msg := receive(t, c)
	if msg.Type != TypeFull || msg.Data == nil || len(msg.Data.Profiles) != 1 {
		t.Fatalf("first message = %+v, want full state", msg)
	}

	changes <- storeView("controls")
	changes <- storeView("controls", "controls:menu")
	msg = receive(t, c)
	if msg.Type != TypeDelta || msg.Changes == nil {
		t.Fatalf("second message = %+v, want delta", msg)
	}
	if len(msg.Changes.Changed) != 1 || msg.Changes.Changed[0].Name != "controls:menu" {
		t.Errorf("Changes = %+v, want controls:menu", msg.Changes)
	}
	if msg.Seq != 2 {
		t.Errorf("Seq = %d, want 2", msg.Seq)
	}

	late := addClient(t, h)
	b.SendInitialState(late)
	msg = receive(t, late)
	if msg.Type != TypeFull || len(msg.Data.Profiles) != 2 {
		t.Errorf("initial state = %+v, want both profiles", msg)
	}
}

func TestMessages(t *testing.T) {
	msg := NewDumpMessage("- controls\n")
	if msg.Type != TypeDump || msg.Text != "- controls\n" {
		t.Errorf("NewDumpMessage() = %+v", msg)
	}
	msg = NewErrorMessage(config.ErrProfileNotFound)
	if msg.Type != TypeError || msg.Text != config.ErrProfileNotFound.Error() {
		t.Errorf("NewErrorMessage() = %+v", msg)
	}

	data, err := json.Marshal(NewDeltaMessage(3, &config.StoreDelta{Removed: []string{"controls:menu"}}))
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["data"]; ok {
		t.Error("a delta message should not carry data")
	}
	if raw["type"] != TypeDelta {
		t.Errorf("type = %v, want delta", raw["type"])
	}
}
