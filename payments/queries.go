package payments

import (
	"net/http"

	"github.com/PilotScript/freelancer-platform/db"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetPayments lists payments the caller is a party to. Admins see all.
func GetPayments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	filter := bson.M{}
	switch utils.GetRoleFromRequest(r) {
	case models.RoleFreelancer:
		filter["freelancerId"] = userID
	case models.RoleClient:
		filter["clientId"] = userID
	case models.RoleAdmin:
		// no scoping
	default:
		utils.RespondWithError(w, http.StatusForbidden, "Unknown role")
		return
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}
	if jobID := r.URL.Query().Get("jobId"); jobID != "" {
		filter["jobid"] = jobID
	}

	page, limit := utils.ParsePagination(r)
	total, err := db.PaymentsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := db.PaymentsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}

	utils.SendPage(w, http.StatusOK, payments, len(payments), page, limit, total)
}

// GetPayment returns one payment to its client, its freelancer or an admin.
func GetPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var payment models.Payment
	if err := db.PaymentsCollection.FindOne(ctx, bson.M{"paymentid": ps.ByName("id")}).Decode(&payment); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Payment not found")
		return
	}
	if payment.ClientID != userID && payment.FreelancerID != userID && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to view this payment")
		return
	}

	utils.SendResponse(w, http.StatusOK, payment)
}
