package jobs

import (
	"fmt"

	"github.com/PilotScript/freelancer-platform/models"
)

// legal Job status edges: open is only left by accepting a proposal, an
// in-progress job either completes (payment release) or cancels (refund).
var transitions = map[models.JobStatus][]models.JobStatus{
	models.JobOpen:       {models.JobInProgress, models.JobCancelled},
	models.JobInProgress: {models.JobCompleted, models.JobCancelled},
	models.JobCompleted:  {},
	models.JobCancelled:  {},
}

// CanTransition reports whether from → to is a legal Job status edge.
func CanTransition(from, to models.JobStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckAssignment enforces the invariant that a freelancer is assigned iff
// the job is in-progress or completed.
func CheckAssignment(status models.JobStatus, freelancerID string) error {
	active := status == models.JobInProgress || status == models.JobCompleted
	if active && freelancerID == "" {
		return fmt.Errorf("job with status %s must have a freelancer", status)
	}
	if !active && freelancerID != "" {
		return fmt.Errorf("job with status %s cannot have a freelancer", status)
	}
	return nil
}

func validPaymentType(t string) bool {
	switch t {
	case "hourly", "fixed", "milestone":
		return true
	}
	return false
}

func validDuration(d string) bool {
	switch d {
	case "", "short", "medium", "long":
		return true
	}
	return false
}

func validCategory(c string) bool {
	for _, cat := range models.JobCategories {
		if c == cat {
			return true
		}
	}
	return false
}
