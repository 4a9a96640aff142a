package proposals

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PilotScript/freelancer-platform/db"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxCoverLetter = 5000

type proposalRequest struct {
	CoverLetter       string   `json:"coverLetter"`
	ProposedAmount    float64  `json:"proposedAmount"`
	EstimatedDuration string   `json:"estimatedDuration"`
	Attachments       []string `json:"attachments"`
}

func (req *proposalRequest) validate() string {
	switch {
	case strings.TrimSpace(req.CoverLetter) == "" || len(req.CoverLetter) > maxCoverLetter:
		return "Cover letter is required and must be at most 5000 characters"
	case req.ProposedAmount <= 0:
		return "Proposed amount must be positive"
	case strings.TrimSpace(req.EstimatedDuration) == "":
		return "Estimated duration is required"
	}
	return ""
}

// CreateProposal submits a freelancer's bid on an open job. One proposal per
// (job, freelancer) pair; the unique index backstops the pre-check.
func CreateProposal(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	jobID := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)

	var job models.Job
	if err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": jobID}).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}

	if job.Status != models.JobOpen {
		utils.RespondWithError(w, http.StatusBadRequest, "Job is not open for proposals")
		return
	}

	var req proposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	var existing models.Proposal
	err := db.ProposalsCollection.FindOne(ctx, bson.M{"jobid": jobID, "freelancerId": userID}).Decode(&existing)
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "You have already submitted a proposal for this job")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	proposal := models.Proposal{
		ProposalID:        utils.GenerateID("prp", 12),
		JobID:             jobID,
		FreelancerID:      userID,
		CoverLetter:       req.CoverLetter,
		ProposedAmount:    req.ProposedAmount,
		EstimatedDuration: req.EstimatedDuration,
		Status:            models.ProposalPending,
		Attachments:       req.Attachments,
		CreatedAt:         time.Now(),
	}

	if _, err := db.ProposalsCollection.InsertOne(ctx, proposal); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "You have already submitted a proposal for this job")
			return
		}
		log.Printf("CreateProposal: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save proposal")
		return
	}

	// Job keeps an ordered back-reference to its proposals.
	_, _ = db.JobsCollection.UpdateOne(ctx,
		bson.M{"jobid": jobID},
		bson.M{"$push": bson.M{"proposalIds": proposal.ProposalID}},
	)

	notifyProposalEvent(r, job.ClientID, userID, models.NotifNewProposal,
		"New proposal", "A freelancer submitted a proposal for \""+job.Title+"\"", proposal.ProposalID)

	utils.SendResponse(w, http.StatusCreated, proposal)
}

// GetProposals lists proposals scoped by role: freelancers see their own,
// clients see proposals on their jobs and admins see everything.
func GetProposals(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var filter bson.M
	switch utils.GetRoleFromRequest(r) {
	case models.RoleFreelancer:
		filter = bson.M{"freelancerId": userID}
	case models.RoleClient:
		cursor, err := db.JobsCollection.Find(ctx, bson.M{"clientId": userID},
			options.Find().SetProjection(bson.M{"jobid": 1}))
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		var jobs []models.Job
		if err := cursor.All(ctx, &jobs); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		jobIDs := make([]string, 0, len(jobs))
		for _, j := range jobs {
			jobIDs = append(jobIDs, j.JobID)
		}
		filter = bson.M{"jobid": bson.M{"$in": jobIDs}}
	case models.RoleAdmin:
		filter = bson.M{}
	default:
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	page, limit := utils.ParsePagination(r)
	total, err := db.ProposalsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := db.ProposalsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Proposal
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if results == nil {
		results = []models.Proposal{}
	}

	utils.SendPage(w, http.StatusOK, results, len(results), page, limit, total)
}

// GetJobProposals lists a single job's proposals for its owner or an admin.
func GetJobProposals(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	jobID := ps.ByName("id")

	var job models.Job
	if err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": jobID}).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}
	if job.ClientID != utils.GetUserIDFromRequest(r) && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to view proposals for this job")
		return
	}

	cursor, err := db.ProposalsCollection.Find(ctx, bson.M{"jobid": jobID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Proposal
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if results == nil {
		results = []models.Proposal{}
	}
	utils.SendResponse(w, http.StatusOK, results)
}

// GetProposal returns one proposal to its freelancer, the job's client or an
// admin.
func GetProposal(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	var proposal models.Proposal
	if err := db.ProposalsCollection.FindOne(ctx, bson.M{"proposalid": ps.ByName("id")}).Decode(&proposal); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Proposal not found")
		return
	}

	var job models.Job
	if err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": proposal.JobID}).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if proposal.FreelancerID != userID && job.ClientID != userID && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to view this proposal")
		return
	}

	utils.SendResponse(w, http.StatusOK, proposal)
}

// UpdateProposal lets the owning freelancer edit a still-pending bid.
func UpdateProposal(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	proposalID := ps.ByName("id")

	var proposal models.Proposal
	if err := db.ProposalsCollection.FindOne(ctx, bson.M{"proposalid": proposalID}).Decode(&proposal); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Proposal not found")
		return
	}

	if proposal.FreelancerID != utils.GetUserIDFromRequest(r) && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to update this proposal")
		return
	}
	if !Mutable(proposal.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot update proposal with status "+string(proposal.Status))
		return
	}

	var req proposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	_, err := db.ProposalsCollection.UpdateOne(ctx,
		bson.M{"proposalid": proposalID, "status": models.ProposalPending},
		bson.M{"$set": bson.M{
			"coverLetter":       req.CoverLetter,
			"proposedAmount":    req.ProposedAmount,
			"estimatedDuration": req.EstimatedDuration,
			"attachments":       req.Attachments,
			"updatedAt":         time.Now(),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update proposal")
		return
	}

	_ = db.ProposalsCollection.FindOne(ctx, bson.M{"proposalid": proposalID}).Decode(&proposal)
	utils.SendResponse(w, http.StatusOK, proposal)
}

// WithdrawProposal retires a pending bid without deleting its record.
func WithdrawProposal(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	proposalID := ps.ByName("id")

	var proposal models.Proposal
	if err := db.ProposalsCollection.FindOne(ctx, bson.M{"proposalid": proposalID}).Decode(&proposal); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Proposal not found")
		return
	}

	if proposal.FreelancerID != utils.GetUserIDFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to withdraw this proposal")
		return
	}
	if !CanTransition(proposal.Status, models.ProposalWithdrawn) {
		utils.RespondWithError(w, http.StatusConflict, "Cannot withdraw proposal with status "+string(proposal.Status))
		return
	}

	res, err := db.ProposalsCollection.UpdateOne(ctx,
		bson.M{"proposalid": proposalID, "status": models.ProposalPending},
		bson.M{"$set": bson.M{"status": models.ProposalWithdrawn, "updatedAt": time.Now()}},
	)
	if err != nil || res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Proposal is no longer pending")
		return
	}

	proposal.Status = models.ProposalWithdrawn
	utils.SendResponse(w, http.StatusOK, proposal)
}

// DeleteProposal removes a pending bid and its job back-reference.
func DeleteProposal(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	proposalID := ps.ByName("id")

	var proposal models.Proposal
	if err := db.ProposalsCollection.FindOne(ctx, bson.M{"proposalid": proposalID}).Decode(&proposal); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Proposal not found")
		return
	}

	if proposal.FreelancerID != utils.GetUserIDFromRequest(r) && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to delete this proposal")
		return
	}
	if !Mutable(proposal.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot delete proposal with status "+string(proposal.Status))
		return
	}

	if _, err := db.ProposalsCollection.DeleteOne(ctx, bson.M{"proposalid": proposalID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete proposal")
		return
	}

	_, _ = db.JobsCollection.UpdateOne(ctx,
		bson.M{"jobid": proposal.JobID},
		bson.M{"$pull": bson.M{"proposalIds": proposal.ProposalID}},
	)

	utils.SendResponse(w, http.StatusOK, utils.M{})
}
