package stripe

import (
	"testing"
	"time"
)

func TestVerifySignatureRoundTrip(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	secret := "whsec_test"

	header := SignPayload(payload, secret, time.Now())
	if err := VerifySignature(payload, header, secret); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"
	header := SignPayload(payload, secret, time.Now())

	if err := VerifySignature([]byte(`{"id":"evt_2"}`), header, secret); err == nil {
		t.Fatal("tampered payload accepted")
	}
	if err := VerifySignature(payload, header, "whsec_other"); err == nil {
		t.Fatal("wrong secret accepted")
	}
	if err := VerifySignature(payload, "t=abc,v1=def", secret); err == nil {
		t.Fatal("garbage header accepted")
	}
	if err := VerifySignature(payload, "", secret); err == nil {
		t.Fatal("empty header accepted")
	}
}

func TestVerifySignatureRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"

	header := SignPayload(payload, secret, time.Now().Add(-time.Hour))
	if err := VerifySignature(payload, header, secret); err != ErrStaleEvent {
		t.Fatalf("expected ErrStaleEvent, got %v", err)
	}
}

func TestConstructEvent(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_123","amount":11000,"currency":"usd"}}}`)
	secret := "whsec_test"

	ev, err := ConstructEvent(payload, SignPayload(payload, secret, time.Now()), secret)
	if err != nil {
		t.Fatalf("ConstructEvent: %v", err)
	}
	if ev.Type != "payment_intent.succeeded" {
		t.Errorf("type = %s", ev.Type)
	}
	if ev.Data.Object.ID != "pi_123" || ev.Data.Object.Amount != 11000 {
		t.Errorf("object = %+v", ev.Data.Object)
	}
}
