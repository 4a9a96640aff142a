package proposals

import (
	"github.com/PilotScript/freelancer-platform/models"
)

// A proposal only ever leaves pending, and only once.
func CanTransition(from, to models.ProposalStatus) bool {
	if from != models.ProposalPending {
		return false
	}
	switch to {
	case models.ProposalAccepted, models.ProposalRejected, models.ProposalWithdrawn:
		return true
	}
	return false
}

// Mutable reports whether the owning freelancer may still edit or delete.
func Mutable(status models.ProposalStatus) bool {
	return status == models.ProposalPending
}
