package proposals

import (
	"testing"

	"github.com/PilotScript/freelancer-platform/models"
)

func TestCanTransition(t *testing.T) {
	for _, to := range []models.ProposalStatus{
		models.ProposalAccepted, models.ProposalRejected, models.ProposalWithdrawn,
	} {
		if !CanTransition(models.ProposalPending, to) {
			t.Errorf("pending -> %s should be allowed", to)
		}
	}

	terminal := []models.ProposalStatus{
		models.ProposalAccepted, models.ProposalRejected, models.ProposalWithdrawn,
	}
	for _, from := range terminal {
		for _, to := range []models.ProposalStatus{
			models.ProposalPending, models.ProposalAccepted, models.ProposalRejected, models.ProposalWithdrawn,
		} {
			if CanTransition(from, to) {
				t.Errorf("%s -> %s should be rejected", from, to)
			}
		}
	}

	if CanTransition(models.ProposalPending, models.ProposalPending) {
		t.Error("pending -> pending should be rejected")
	}
}

func TestMutable(t *testing.T) {
	if !Mutable(models.ProposalPending) {
		t.Error("pending proposals are editable")
	}
	for _, s := range []models.ProposalStatus{
		models.ProposalAccepted, models.ProposalRejected, models.ProposalWithdrawn,
	} {
		if Mutable(s) {
			t.Errorf("%s proposals must not be editable", s)
		}
	}
}
