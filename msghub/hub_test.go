package msghub

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "u_alice:u_bob",
	}

	hub.register <- client

	msg := outboundPayload{Action: "chat", Content: "hello test"}
	data, _ := json.Marshal(msg)
	hub.Broadcast("u_alice:u_bob", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestRoomMember(t *testing.T) {
	if !roomMember("u_alice", "u_alice:u_bob") {
		t.Fatal("participant rejected")
	}
	if roomMember("u_mallory", "u_alice:u_bob") {
		t.Fatal("outsider admitted")
	}
}
