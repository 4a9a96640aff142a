package messages

import "testing"

func TestConversationKeyIsOrderInsensitive(t *testing.T) {
	a := ConversationKey("u_alice", "u_bob")
	b := ConversationKey("u_bob", "u_alice")
	if a != b {
		t.Fatalf("keys differ: %s vs %s", a, b)
	}
	if a != "u_alice:u_bob" {
		t.Fatalf("unexpected key %s", a)
	}
}

func TestOtherParticipant(t *testing.T) {
	key := ConversationKey("u_alice", "u_bob")

	peer, err := otherParticipant(key, "u_alice")
	if err != nil || peer != "u_bob" {
		t.Fatalf("got %q, %v", peer, err)
	}
	peer, err = otherParticipant(key, "u_bob")
	if err != nil || peer != "u_alice" {
		t.Fatalf("got %q, %v", peer, err)
	}
	if _, err := otherParticipant(key, "u_mallory"); err == nil {
		t.Fatal("outsider accepted")
	}
	if _, err := otherParticipant("garbage", "u_alice"); err == nil {
		t.Fatal("malformed key accepted")
	}
}
