// Package reviews lets the two parties of a completed job rate each other.
package reviews

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/PilotScript/freelancer-platform/db"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/mq"
	"github.com/PilotScript/freelancer-platform/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxCommentLen = 500

// CreateReview records a rating from one party of a completed job about the
// other. One review per reviewer per job.
func CreateReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		JobID   string `json:"jobId"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	// The job-scoped route carries the ID in the path.
	if id := ps.ByName("id"); id != "" {
		req.JobID = id
	}
	if req.JobID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "jobId is required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	if len(req.Comment) > maxCommentLen {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment too long")
		return
	}

	var job models.Job
	if err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": req.JobID}).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}
	if job.Status != models.JobCompleted {
		utils.RespondWithError(w, http.StatusConflict, "Only completed jobs can be reviewed")
		return
	}

	// The reviewer must be one party; the reviewee is the other.
	var revieweeID string
	switch userID {
	case job.ClientID:
		revieweeID = job.FreelancerID
	case job.FreelancerID:
		revieweeID = job.ClientID
	default:
		utils.RespondWithError(w, http.StatusForbidden, "Only the job's client or freelancer can review it")
		return
	}
	if revieweeID == "" {
		utils.RespondWithError(w, http.StatusConflict, "Job has no counterpart to review")
		return
	}

	review := models.Review{
		ReviewID:   utils.GenerateID("rev", 12),
		ReviewerID: userID,
		RevieweeID: revieweeID,
		JobID:      job.JobID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  time.Now(),
	}
	if _, err := db.ReviewsCollection.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "You already reviewed this job")
			return
		}
		log.Printf("CreateReview: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create review")
		return
	}

	if err := recalcRating(ctx, revieweeID); err != nil {
		log.Printf("CreateReview: rating recalc failed for %s: %v", revieweeID, err)
	}

	mq.Emit(ctx, models.Event{
		Name:        string(models.NotifNewReview),
		RecipientID: revieweeID,
		SenderID:    userID,
		Type:        models.NotifNewReview,
		Title:       "New review",
		Message:     "You received a new review for \"" + job.Title + "\"",
		RelatedID:   review.ReviewID,
	})

	utils.SendResponse(w, http.StatusCreated, review)
}

// GetUserReviews lists reviews written about one user, newest first.
func GetUserReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := ps.ByName("id")

	page, limit := utils.ParsePagination(r)
	filter := bson.M{"revieweeId": userID}

	total, err := db.ReviewsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := db.ReviewsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	utils.SendPage(w, http.StatusOK, reviews, len(reviews), page, limit, total)
}

// DeleteReview removes a review. Author or admin only. The reviewee's
// average is recomputed afterwards.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	reviewID := ps.ByName("id")

	var review models.Review
	if err := db.ReviewsCollection.FindOne(ctx, bson.M{"reviewid": reviewID}).Decode(&review); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}
	if review.ReviewerID != utils.GetUserIDFromRequest(r) && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to delete this review")
		return
	}

	if _, err := db.ReviewsCollection.DeleteOne(ctx, bson.M{"reviewid": reviewID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if err := recalcRating(ctx, review.RevieweeID); err != nil {
		log.Printf("DeleteReview: rating recalc failed for %s: %v", review.RevieweeID, err)
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"deleted": reviewID})
}

// recalcRating aggregates a user's average rating onto their profile.
func recalcRating(ctx context.Context, userID string) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"revieweeId": userID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := db.ReviewsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var result []struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return err
	}

	avg := 0.0
	if len(result) > 0 {
		avg = result[0].Avg
	}
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"rating": avg, "updatedAt": time.Now()}},
	)
	return err
}
