package payments

import (
	"strings"
	"testing"

	"github.com/PilotScript/freelancer-platform/models"
)

func TestReceiptQRPayloadVerifies(t *testing.T) {
	payment := models.Payment{
		PaymentID:     "pay_abc123",
		TransactionID: "pi_xyz789",
		Amount:        110.00,
	}

	payload := ReceiptQRPayload(payment)
	if !strings.HasPrefix(payload, "pay_abc123|pi_xyz789|11000|") {
		t.Fatalf("unexpected payload %q", payload)
	}
	if !VerifyReceiptQR(payload) {
		t.Fatal("genuine payload rejected")
	}

	tampered := strings.Replace(payload, "11000", "99000", 1)
	if VerifyReceiptQR(tampered) {
		t.Fatal("tampered payload accepted")
	}
	if VerifyReceiptQR("no-separator") {
		t.Fatal("malformed payload accepted")
	}
}
