package payments

import (
	"errors"
	"testing"
	"time"

	"github.com/PilotScript/freelancer-platform/jobs"
	"github.com/PilotScript/freelancer-platform/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCanSettleRequiresFreelancer(t *testing.T) {
	unassigned := models.Job{JobID: "j1", Status: models.JobOpen}
	if err := canSettle(unassigned); !errors.Is(err, errNoFreelancer) {
		t.Errorf("canSettle(unassigned) = %v, want errNoFreelancer", err)
	}

	assigned := models.Job{JobID: "j1", Status: models.JobInProgress, FreelancerID: "u_freelancer"}
	if err := canSettle(assigned); err != nil {
		t.Errorf("canSettle(assigned) = %v, want nil", err)
	}
}

func TestRefundJobUpdateClearsAssignment(t *testing.T) {
	update := refundJobUpdate(time.Now())

	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatal("refund update has no $set document")
	}
	if set["status"] != models.JobCancelled {
		t.Errorf("refund update sets status %v, want %v", set["status"], models.JobCancelled)
	}

	unset, ok := update["$unset"].(bson.M)
	if !ok {
		t.Fatal("refund update has no $unset document")
	}
	if _, present := unset["freelancerId"]; !present {
		t.Error("refund update must unset freelancerId")
	}

	// The post-refund document must satisfy the assignment invariant.
	if err := jobs.CheckAssignment(models.JobCancelled, ""); err != nil {
		t.Errorf("cancelled unassigned job rejected: %v", err)
	}
	if err := jobs.CheckAssignment(models.JobCancelled, "u_freelancer"); err == nil {
		t.Error("cancelled job with a freelancer must violate the assignment invariant")
	}
}
