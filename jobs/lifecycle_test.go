package jobs

import (
	"testing"

	"github.com/PilotScript/freelancer-platform/models"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to models.JobStatus }{
		{models.JobOpen, models.JobInProgress},
		{models.JobOpen, models.JobCancelled},
		{models.JobInProgress, models.JobCompleted},
		{models.JobInProgress, models.JobCancelled},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to models.JobStatus }{
		{models.JobOpen, models.JobCompleted},
		{models.JobInProgress, models.JobOpen},
		{models.JobCompleted, models.JobOpen},
		{models.JobCompleted, models.JobInProgress},
		{models.JobCancelled, models.JobOpen},
		{models.JobCancelled, models.JobCompleted},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestCheckAssignment(t *testing.T) {
	if err := CheckAssignment(models.JobOpen, ""); err != nil {
		t.Errorf("open without freelancer: %v", err)
	}
	if err := CheckAssignment(models.JobOpen, "u_f1"); err == nil {
		t.Error("open job must not carry a freelancer")
	}
	if err := CheckAssignment(models.JobInProgress, "u_f1"); err != nil {
		t.Errorf("in-progress with freelancer: %v", err)
	}
	if err := CheckAssignment(models.JobInProgress, ""); err == nil {
		t.Error("in-progress job needs a freelancer")
	}
	if err := CheckAssignment(models.JobCompleted, "u_f1"); err != nil {
		t.Errorf("completed with freelancer: %v", err)
	}
	if err := CheckAssignment(models.JobCancelled, "u_f1"); err == nil {
		t.Error("cancelled job must not carry a freelancer")
	}
}

func TestValidators(t *testing.T) {
	for _, pt := range []string{"hourly", "fixed", "milestone"} {
		if !validPaymentType(pt) {
			t.Errorf("payment type %q rejected", pt)
		}
	}
	if validPaymentType("barter") {
		t.Error("unknown payment type accepted")
	}

	if !validDuration("") || !validDuration("short") {
		t.Error("valid duration rejected")
	}
	if validDuration("forever") {
		t.Error("unknown duration accepted")
	}

	if !validCategory("Programming") {
		t.Error("known category rejected")
	}
	if validCategory("Alchemy") {
		t.Error("unknown category accepted")
	}
}
