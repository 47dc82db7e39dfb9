package server

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	if h.HasClients() {
		t.Error("new hub should have no clients")
	}

	done := make(chan struct{})
	defer close(done)
	go h.Run(done)

	c := &Client{hub: h, send: make(chan []byte, 1)}
	h.register(c)
	if !h.HasClients() {
		t.Fatal("registered client should be visible")
	}

	h.Publish(searchEvent{Event: "result", Moves: []string{"d3"}})

	select {
	case data := <-c.send:
		var event searchEvent
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatal(err)
		}
		if event.Event != "result" || len(event.Moves) != 1 || event.Moves[0] != "d3" {
			t.Errorf("unexpected event %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("published event was not delivered")
	}

	h.unregister(c)
	if h.HasClients() {
		t.Error("unregistered client should be gone")
	}
}
