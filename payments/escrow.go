package payments

import (
	"errors"
	"math"

	"github.com/PilotScript/freelancer-platform/models"
)

// platformFeeRate is the marketplace cut added on top of the job budget.
const platformFeeRate = 0.10

var errNoFreelancer = errors.New("no freelancer assigned to this job")

// canSettle reports whether a succeeded charge may be recorded against the
// job. Funds are only escrowed for an engaged freelancer, so a job without
// an assignment cannot settle and cannot move to in-progress on funding.
func canSettle(job models.Job) error {
	if job.FreelancerID == "" {
		return errNoFreelancer
	}
	return nil
}

// ComputeFee returns the platform fee for an amount, rounded to cents.
func ComputeFee(amount float64) float64 {
	return math.Round(amount*platformFeeRate*100) / 100
}

// CanRelease reports whether escrowed funds can be paid out to the
// freelancer. Only a completed payment still holding escrow qualifies.
func CanRelease(p models.Payment) bool {
	return p.Status == models.PaymentCompleted && p.Escrow
}

// CanRefund reports whether a payment can be returned to the client.
// Released funds are gone; only escrowed completed payments refund.
func CanRefund(p models.Payment) bool {
	return p.Status == models.PaymentCompleted && p.Escrow
}
