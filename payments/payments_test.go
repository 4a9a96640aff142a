package payments

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateIntentRequiresJobID(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/payments/create-intent",
		strings.NewReader(`{"amount":100}`))
	CreateIntent(w, r, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing jobId: got %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestConfirmPaymentRequiresIntentID(t *testing.T) {
	for _, body := range []string{`{}`, `{"jobId":"j1"}`} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/payments/confirm",
			strings.NewReader(body))
		ConfirmPayment(w, r, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: got %d, want %d", body, w.Code, http.StatusBadRequest)
		}
	}
}

// paymentIntentId and its transactionId alias must parse identically; both
// reach the gateway lookup instead of failing validation.
func TestConfirmPaymentAcceptsEitherIntentField(t *testing.T) {
	for _, body := range []string{
		`{"paymentIntentId":"pi_unknown"}`,
		`{"transactionId":"pi_unknown"}`,
	} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/payments/confirm",
			strings.NewReader(body))
		ConfirmPayment(w, r, nil)
		if w.Code == http.StatusBadRequest {
			t.Errorf("body %s rejected as malformed", body)
		}
	}
}
