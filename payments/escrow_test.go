package payments

import (
	"testing"

	"github.com/PilotScript/freelancer-platform/models"
)

func TestComputeFee(t *testing.T) {
	cases := []struct {
		amount, fee float64
	}{
		{100, 10},
		{0.01, 0},
		{99.99, 10},
		{1234.56, 123.46},
		{10.05, 1.01},
	}
	for _, tc := range cases {
		if got := ComputeFee(tc.amount); got != tc.fee {
			t.Errorf("ComputeFee(%v) = %v, want %v", tc.amount, got, tc.fee)
		}
	}
}

func TestCanReleaseAndRefund(t *testing.T) {
	escrowed := models.Payment{Status: models.PaymentCompleted, Escrow: true}
	if !CanRelease(escrowed) {
		t.Error("completed escrowed payment must be releasable")
	}
	if !CanRefund(escrowed) {
		t.Error("completed escrowed payment must be refundable")
	}

	released := models.Payment{Status: models.PaymentCompleted, Escrow: false}
	if CanRelease(released) {
		t.Error("released payment released twice")
	}
	if CanRefund(released) {
		t.Error("released payment must not refund")
	}

	for _, status := range []models.PaymentStatus{
		models.PaymentPending, models.PaymentFailed, models.PaymentRefunded,
	} {
		p := models.Payment{Status: status, Escrow: true}
		if CanRelease(p) {
			t.Errorf("%s payment must not release", status)
		}
		if CanRefund(p) {
			t.Errorf("%s payment must not refund", status)
		}
	}
}
