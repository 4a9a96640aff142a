package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/PilotScript/freelancer-platform/db"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/mq"
	"github.com/PilotScript/freelancer-platform/stripe"
	"github.com/PilotScript/freelancer-platform/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const paymentCurrency = "usd"

// CreateIntent opens a payment intent with the gateway for a job's budget
// plus the platform fee. No payment record is written yet; the record is
// created only once the gateway confirms the charge.
func CreateIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		JobID         string  `json:"jobId"`
		Amount        float64 `json:"amount"`
		PaymentMethod string  `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.JobID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "jobId is required")
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "stripe"
	}

	var job models.Job
	if err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": req.JobID}).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		return
	}
	if job.ClientID != userID && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Only the job's client can fund it")
		return
	}
	if job.Status != models.JobOpen && job.Status != models.JobInProgress {
		utils.RespondWithError(w, http.StatusConflict, "Job can no longer be funded")
		return
	}
	if job.Budget <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Job has no budget to charge")
		return
	}
	// The server prices the charge from the job budget; a client-supplied
	// amount is accepted only as a cross-check, never as the price.
	if req.Amount != 0 && req.Amount != job.Budget {
		utils.RespondWithError(w, http.StatusBadRequest, "amount does not match the job budget")
		return
	}

	fee := ComputeFee(job.Budget)
	total := job.Budget + fee
	amountCents := int64(math.Round(total * 100))

	intent, err := stripe.CreatePaymentIntent(ctx, amountCents, paymentCurrency, map[string]string{
		"jobId":         job.JobID,
		"clientId":      job.ClientID,
		"freelancerId":  job.FreelancerID,
		"paymentMethod": req.PaymentMethod,
	})
	if err != nil {
		log.Printf("CreateIntent: gateway error for job %s: %v", job.JobID, err)
		utils.RespondWithError(w, http.StatusBadGateway, "Payment gateway unavailable")
		return
	}

	utils.SendResponse(w, http.StatusCreated, utils.M{
		"paymentIntentId": intent.ID,
		"transactionId":   intent.ID,
		"clientSecret":    intent.ClientSecret,
		"amount":          job.Budget,
		"platformFee":     fee,
		"total":           total,
		"currency":        paymentCurrency,
	})
}

// ConfirmPayment finalizes a charge after the client completed it in the
// browser. The write path is the same one the webhook drives, keyed on the
// gateway transaction ID, so confirming twice (or racing the webhook)
// settles exactly one payment.
func ConfirmPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		PaymentIntentID string `json:"paymentIntentId"`
		TransactionID   string `json:"transactionId"`
		JobID           string `json:"jobId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "paymentIntentId is required")
		return
	}
	// The intent ID doubles as the transaction ID; either name works.
	intentID := req.PaymentIntentID
	if intentID == "" {
		intentID = req.TransactionID
	}
	if intentID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "paymentIntentId is required")
		return
	}

	intent, err := stripe.RetrievePaymentIntent(ctx, intentID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown transaction")
		return
	}
	if intent.Metadata["clientId"] != userID && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Transaction belongs to another client")
		return
	}
	if req.JobID != "" && req.JobID != intent.Metadata["jobId"] {
		utils.RespondWithError(w, http.StatusBadRequest, "jobId does not match this payment intent")
		return
	}

	if intent.Status != stripe.StatusSucceeded {
		intent, err = stripe.MarkSucceeded(ctx, intent.ID)
		if err != nil {
			log.Printf("ConfirmPayment: gateway confirm failed for %s: %v", intentID, err)
			utils.RespondWithError(w, http.StatusBadGateway, "Payment gateway unavailable")
			return
		}
	}

	payment, created, err := settleIntent(ctx, intent)
	if err != nil {
		if errors.Is(err, errNoFreelancer) {
			utils.RespondWithError(w, http.StatusBadRequest, "No freelancer assigned to this job")
			return
		}
		log.Printf("ConfirmPayment: settle failed for %s: %v", intent.ID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.SendResponse(w, status, payment)
}

// settleIntent records a succeeded gateway intent as a completed escrowed
// payment and moves the job into in-progress. Idempotent on the transaction
// ID: replays return the existing record untouched.
func settleIntent(ctx context.Context, intent *stripe.PaymentIntent) (*models.Payment, bool, error) {
	var existing models.Payment
	err := db.PaymentsCollection.FindOne(ctx, bson.M{"transactionId": intent.ID}).Decode(&existing)
	if err == nil {
		return &existing, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, err
	}

	jobID := intent.Metadata["jobId"]
	var job models.Job
	if err := db.JobsCollection.FindOne(ctx, bson.M{"jobid": jobID}).Decode(&job); err != nil {
		return nil, false, err
	}
	if err := canSettle(job); err != nil {
		return nil, false, err
	}

	total := float64(intent.Amount) / 100
	now := time.Now()
	payment := models.Payment{
		PaymentID:     utils.GenerateID("pay", 12),
		JobID:         job.JobID,
		ClientID:      job.ClientID,
		FreelancerID:  job.FreelancerID,
		Amount:        total,
		Currency:      intent.Currency,
		PaymentMethod: intent.Metadata["paymentMethod"],
		Status:        models.PaymentCompleted,
		Escrow:        true,
		TransactionID: intent.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = "stripe"
	}

	if _, err := db.PaymentsCollection.InsertOne(ctx, payment); err != nil {
		// Lost the race against the webhook; the unique index on
		// transactionId guarantees a single record.
		if mongo.IsDuplicateKeyError(err) {
			if ferr := db.PaymentsCollection.FindOne(ctx, bson.M{"transactionId": intent.ID}).Decode(&existing); ferr == nil {
				return &existing, false, nil
			}
		}
		return nil, false, err
	}

	// Funding an open job kicks it off; a job already in progress stays put.
	if _, err := db.JobsCollection.UpdateOne(ctx,
		bson.M{"jobid": job.JobID, "status": models.JobOpen},
		bson.M{"$set": bson.M{"status": models.JobInProgress, "updatedAt": now}},
	); err != nil {
		log.Printf("settleIntent: job transition failed for %s: %v", job.JobID, err)
	}

	if payment.FreelancerID != "" {
		mq.Emit(ctx, models.Event{
			Name:        string(models.NotifPaymentReceived),
			RecipientID: payment.FreelancerID,
			SenderID:    payment.ClientID,
			Type:        models.NotifPaymentReceived,
			Title:       "Payment received",
			Message:     "Funds for \"" + job.Title + "\" are now held in escrow",
			RelatedID:   payment.PaymentID,
		})
	}

	return &payment, true, nil
}
