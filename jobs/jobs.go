package jobs

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

type jobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Skills      []string `json:"skills"`
	Budget      float64  `json:"budget"`
	PaymentType string   `json:"paymentType"`
	Duration    string   `json:"duration"`
	Experience  string   `json:"experience"`
	Location    string   `json:"location"`
	Deadline    string   `json:"deadline"`
}

func (req *jobRequest) validate() string {
	switch {
	case strings.TrimSpace(req.Title) == "" || len(req.Title) > 100:
		return "Title is required and must be at most 100 characters"
	case strings.TrimSpace(req.Description) == "":
		return "Description is required"
	case !validCategory(req.Category):
		return "Unknown category"
	case len(req.Skills) == 0:
		return "At least one skill is required"
	case req.Budget <= 0:
		return "Budget must be positive"
	case !validPaymentType(req.PaymentType):
		return "Payment type must be hourly, fixed or milestone"
	case !validDuration(req.Duration):
		return "Duration must be short, medium or long"
	}
	return ""
}

// CreateJob posts a new job for the authenticated client. Status starts open.
func CreateJob(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	job := models.Job{
		JobID:       utils.GenerateID("job", 12),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Skills:      req.Skills,
		Budget:      req.Budget,
		PaymentType: req.PaymentType,
		Duration:    req.Duration,
		Experience:  req.Experience,
		Location:    req.Location,
		Status:      models.JobOpen,
		ClientID:    utils.GetUserIDFromRequest(r),
		CreatedAt:   time.Now(),
	}
	if req.Deadline != "" {
		if t, err := time.Parse("2006-01-02", req.Deadline); err == nil {
			job.Deadline = t
		}
	}

	if _, err := db.JobsCollection.InsertOne(r.Context(), job); err != nil {
		log.Printf("CreateJob: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	utils.SendResponse(w, http.StatusCreated, job)
}

// GetJobs lists open jobs with filtering, text search and pagination.
func GetJobs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := bson.M{}
	if v := q.Get("status"); v != "" {
		filter["status"] = v
	}
	if v := q.Get("category"); v != "" {
		filter["category"] = v
	}
	if v := q.Get("paymentType"); v != "" {
		filter["paymentType"] = v
	}
	if v := q.Get("duration"); v != "" {
		filter["duration"] = v
	}
	if v := q.Get("skills"); v != "" {
		filter["skills"] = bson.M{"$all": utils.SplitTags(v)}
	}
	budget := bson.M{}
	if v := q.Get("minBudget"); v != "" {
		budget["$gte"] = utils.ParseFloat(v)
	}
	if v := q.Get("maxBudget"); v != "" {
		budget["$lte"] = utils.ParseFloat(v)
	}
	if len(budget) > 0 {
		filter["budget"] = budget
	}
	if v := q.Get("search"); v != "" {
		filter["$text"] = bson.M{"$search": v}
	}

	page, limit := utils.ParsePagination(r)

	total, err := db.JobsCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("GetJobs: count error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := db.JobsCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("GetJobs: find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Job
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("GetJobs: decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if results == nil {
		results = []models.Job{}
	}

	utils.SendPage(w, http.StatusOK, results, len(results), page, limit, total)
}

func GetJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var job models.Job
	err := db.JobsCollection.FindOne(r.Context(), bson.M{"jobid": ps.ByName("id")}).Decode(&job)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		} else {
			log.Printf("GetJob: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	utils.SendResponse(w, http.StatusOK, job)
}

// GetMyJobs lists the authenticated client's own postings.
func GetMyJobs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	cursor, err := db.JobsCollection.Find(ctx,
		bson.M{"clientId": utils.GetUserIDFromRequest(r)},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		log.Printf("GetMyJobs: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Job
	if err := cursor.All(ctx, &results); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if results == nil {
		results = []models.Job{}
	}
	utils.SendResponse(w, http.StatusOK, results)
}

// UpdateJob lets the owning client (or an admin) edit the posting's fields.
// Status and freelancer assignment change only through the lifecycle.
func UpdateJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	jobID := ps.ByName("id")

	var job models.Job
	if err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": jobID}).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}

	if job.ClientID != utils.GetUserIDFromRequest(r) && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to update this job")
		return
	}

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	update := bson.M{"$set": bson.M{
		"title":       strings.TrimSpace(req.Title),
		"description": req.Description,
		"category":    req.Category,
		"skills":      req.Skills,
		"budget":      req.Budget,
		"paymentType": req.PaymentType,
		"duration":    req.Duration,
		"experience":  req.Experience,
		"location":    req.Location,
		"updatedAt":   time.Now(),
	}}
	if _, err := db.JobsCollection.UpdateOne(ctx, bson.M{"jobid": jobID}, update); err != nil {
		log.Printf("UpdateJob: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update job")
		return
	}

	_ = db.JobsCollection.FindOne(ctx, bson.M{"jobid": jobID}).Decode(&job)
	utils.SendResponse(w, http.StatusOK, job)
}

// DeleteJob removes a posting. Refused while proposals still reference the
// job, so accepted work never loses its parent record.
func DeleteJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	jobID := ps.ByName("id")

	var job models.Job
	if err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": jobID}).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}

	if job.ClientID != utils.GetUserIDFromRequest(r) && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to delete this job")
		return
	}

	count, err := db.ProposalsCollection.CountDocuments(ctx, bson.M{"jobid": jobID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Job has proposals and cannot be deleted")
		return
	}

	if _, err := db.JobsCollection.DeleteOne(ctx, bson.M{"jobid": jobID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete job")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{})
}
