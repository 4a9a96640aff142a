package proposals

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/PilotScript/freelancer-platform/db"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/mq"
	"github.com/PilotScript/freelancer-platform/rdx"
	"github.com/PilotScript/freelancer-platform/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// lockTTL bounds how long an accept can hold a job's mutation lock.
const lockTTL = 5 * time.Second

// ChangeProposalStatus accepts or rejects a proposal on behalf of the job's
// client. Accepting runs under a per-job Redis lock: the accept, the job
// assignment and the bulk rejection of competing bids either all land or the
// accept is rolled back, so concurrent accepts on one job leave exactly one
// proposal accepted.
func ChangeProposalStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	proposalID := ps.ByName("id")

	var req struct {
		Status models.ProposalStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Status != models.ProposalAccepted && req.Status != models.ProposalRejected {
		utils.RespondWithError(w, http.StatusBadRequest, "Status must be accepted or rejected")
		return
	}

	var proposal models.Proposal
	if err := db.ProposalsCollection.FindOne(ctx, bson.M{"proposalid": proposalID}).Decode(&proposal); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Proposal not found")
		return
	}

	var job models.Job
	if err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": proposal.JobID}).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}

	if job.ClientID != utils.GetUserIDFromRequest(r) && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to update this proposal status")
		return
	}

	if !CanTransition(proposal.Status, req.Status) {
		utils.RespondWithError(w, http.StatusConflict, "Cannot change proposal with status "+string(proposal.Status))
		return
	}

	if req.Status == models.ProposalRejected {
		res, err := db.ProposalsCollection.UpdateOne(ctx,
			bson.M{"proposalid": proposalID, "status": models.ProposalPending},
			bson.M{"$set": bson.M{"status": models.ProposalRejected, "updatedAt": time.Now()}},
		)
		if err != nil || res.ModifiedCount == 0 {
			utils.RespondWithError(w, http.StatusConflict, "Proposal is no longer pending")
			return
		}
		proposal.Status = models.ProposalRejected

		notifyProposalEvent(r, proposal.FreelancerID, job.ClientID, models.NotifProposalRejected,
			"Proposal rejected", "Your proposal for \""+job.Title+"\" was rejected", proposal.ProposalID)

		utils.SendResponse(w, http.StatusOK, proposal)
		return
	}

	// Accept path: serialize per job.
	lockKey := "job_lock:" + job.JobID
	acquired, err := rdx.RdxSetNX(lockKey, "1", lockTTL)
	if err != nil || !acquired {
		utils.RespondWithError(w, http.StatusTooManyRequests, "Job is being updated, please retry")
		return
	}
	defer func() {
		if err := rdx.RdxDel(lockKey); err != nil {
			log.Printf("ChangeProposalStatus: lock release failed for %s: %v", job.JobID, err)
		}
	}()

	// Re-check under the lock: the job must still be open.
	if err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": job.JobID}).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}
	if job.Status != models.JobOpen {
		utils.RespondWithError(w, http.StatusConflict, "Job is no longer open")
		return
	}

	res, err := db.ProposalsCollection.UpdateOne(ctx,
		bson.M{"proposalid": proposalID, "status": models.ProposalPending},
		bson.M{"$set": bson.M{"status": models.ProposalAccepted, "updatedAt": time.Now()}},
	)
	if err != nil || res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Proposal is no longer pending")
		return
	}

	revertAccept := func() {
		_, rerr := db.ProposalsCollection.UpdateOne(ctx,
			bson.M{"proposalid": proposalID},
			bson.M{"$set": bson.M{"status": models.ProposalPending, "updatedAt": time.Now()}},
		)
		if rerr != nil {
			log.Printf("ChangeProposalStatus: accept rollback failed for %s: %v", proposalID, rerr)
		}
	}

	_, err = db.JobsCollection.UpdateOne(ctx,
		bson.M{"jobid": job.JobID, "status": models.JobOpen},
		bson.M{"$set": bson.M{
			"status":       models.JobInProgress,
			"freelancerId": proposal.FreelancerID,
			"updatedAt":    time.Now(),
		}},
	)
	if err != nil {
		revertAccept()
		log.Printf("ChangeProposalStatus: job update failed for %s: %v", job.JobID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to assign freelancer")
		return
	}

	// Every other pending bid on the job loses.
	_, err = db.ProposalsCollection.UpdateMany(ctx,
		bson.M{
			"jobid":      job.JobID,
			"proposalid": bson.M{"$ne": proposalID},
			"status":     models.ProposalPending,
		},
		bson.M{"$set": bson.M{"status": models.ProposalRejected, "updatedAt": time.Now()}},
	)
	if err != nil {
		// Compensate: undo the assignment and the accept rather than leave
		// the job half-transitioned.
		_, rerr := db.JobsCollection.UpdateOne(ctx,
			bson.M{"jobid": job.JobID},
			bson.M{"$set": bson.M{"status": models.JobOpen, "updatedAt": time.Now()},
				"$unset": bson.M{"freelancerId": ""}},
		)
		if rerr != nil {
			log.Printf("ChangeProposalStatus: job rollback failed for %s: %v", job.JobID, rerr)
		}
		revertAccept()
		log.Printf("ChangeProposalStatus: bulk reject failed for %s: %v", job.JobID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to accept proposal")
		return
	}

	proposal.Status = models.ProposalAccepted

	notifyProposalEvent(r, proposal.FreelancerID, job.ClientID, models.NotifProposalAccepted,
		"Proposal accepted", "Your proposal for \""+job.Title+"\" was accepted", proposal.ProposalID)

	utils.SendResponse(w, http.StatusOK, proposal)
}

func notifyProposalEvent(r *http.Request, recipientID, senderID string, typ models.NotificationType, title, message, relatedID string) {
	mq.Emit(r.Context(), models.Event{
		Name:        string(typ),
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        typ,
		Title:       title,
		Message:     message,
		RelatedID:   relatedID,
	})
}
