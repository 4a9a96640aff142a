package payments

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/PilotScript/freelancer-platform/db"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/mq"
	"github.com/PilotScript/freelancer-platform/rdx"
	"github.com/PilotScript/freelancer-platform/stripe"
	"github.com/PilotScript/freelancer-platform/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// settleLockTTL bounds how long a release or refund holds a payment's lock.
const settleLockTTL = 5 * time.Second

// refundJobUpdate cancels a refunded job and clears its assignment. A
// cancelled job must carry no freelancer, so the client can repost it.
func refundJobUpdate(now time.Time) bson.M {
	return bson.M{
		"$set":   bson.M{"status": models.JobCancelled, "updatedAt": now},
		"$unset": bson.M{"freelancerId": ""},
	}
}

// ReleasePayment pays escrowed funds out to the freelancer and closes the
// job. Runs under a per-payment Redis lock so a concurrent refund and
// release cannot both win.
func ReleasePayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	paymentID := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)

	lockKey := "payment_lock:" + paymentID
	acquired, err := rdx.RdxSetNX(lockKey, "1", settleLockTTL)
	if err != nil || !acquired {
		utils.RespondWithError(w, http.StatusTooManyRequests, "Payment is being updated, please retry")
		return
	}
	defer func() {
		if err := rdx.RdxDel(lockKey); err != nil {
			log.Printf("ReleasePayment: lock release failed for %s: %v", paymentID, err)
		}
	}()

	var payment models.Payment
	if err := db.PaymentsCollection.FindOne(ctx, bson.M{"paymentid": paymentID}).Decode(&payment); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Payment not found")
		return
	}
	if payment.ClientID != userID && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Only the paying client can release escrow")
		return
	}
	if !CanRelease(payment) {
		utils.RespondWithError(w, http.StatusConflict, "Payment is not holding escrow")
		return
	}

	now := time.Now()
	res, err := db.PaymentsCollection.UpdateOne(ctx,
		bson.M{"paymentid": paymentID, "status": models.PaymentCompleted, "escrow": true},
		bson.M{"$set": bson.M{"escrow": false, "releaseDate": now, "updatedAt": now}},
	)
	if err != nil || res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Payment is not holding escrow")
		return
	}
	payment.Escrow = false
	payment.ReleaseDate = now
	payment.UpdatedAt = now

	// Paying out finishes the engagement.
	if _, err := db.JobsCollection.UpdateOne(ctx,
		bson.M{"jobid": payment.JobID, "status": models.JobInProgress},
		bson.M{"$set": bson.M{"status": models.JobCompleted, "updatedAt": now}},
	); err != nil {
		log.Printf("ReleasePayment: job completion failed for %s: %v", payment.JobID, err)
	}

	notifyPaymentEvent(r, payment.FreelancerID, payment.ClientID, models.NotifPaymentReleased,
		"Payment released", "Escrowed funds have been released to you", payment.PaymentID)

	utils.SendResponse(w, http.StatusOK, payment)
}

// RequestRefund returns escrowed funds to the client and cancels the job.
// Once escrow has been released there is nothing left to refund.
func RequestRefund(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	paymentID := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)

	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Reason == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "A refund reason is required")
		return
	}

	lockKey := "payment_lock:" + paymentID
	acquired, err := rdx.RdxSetNX(lockKey, "1", settleLockTTL)
	if err != nil || !acquired {
		utils.RespondWithError(w, http.StatusTooManyRequests, "Payment is being updated, please retry")
		return
	}
	defer func() {
		if err := rdx.RdxDel(lockKey); err != nil {
			log.Printf("RequestRefund: lock release failed for %s: %v", paymentID, err)
		}
	}()

	var payment models.Payment
	if err := db.PaymentsCollection.FindOne(ctx, bson.M{"paymentid": paymentID}).Decode(&payment); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Payment not found")
		return
	}
	if payment.ClientID != userID && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Only the paying client can request a refund")
		return
	}
	if !CanRefund(payment) {
		utils.RespondWithError(w, http.StatusConflict, "Payment is not refundable")
		return
	}

	if _, err := stripe.CreateRefund(ctx, payment.TransactionID, req.Reason); err != nil {
		log.Printf("RequestRefund: gateway refund failed for %s: %v", payment.TransactionID, err)
		utils.RespondWithError(w, http.StatusBadGateway, "Payment gateway refused the refund")
		return
	}

	now := time.Now()
	res, err := db.PaymentsCollection.UpdateOne(ctx,
		bson.M{"paymentid": paymentID, "status": models.PaymentCompleted, "escrow": true},
		bson.M{"$set": bson.M{
			"status":      models.PaymentRefunded,
			"escrow":      false,
			"description": req.Reason,
			"updatedAt":   now,
		}},
	)
	if err != nil || res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Payment is not refundable")
		return
	}
	payment.Status = models.PaymentRefunded
	payment.Escrow = false
	payment.Description = req.Reason
	payment.UpdatedAt = now

	// The engagement is off; unassign so the job can be reposted cleanly.
	if _, err := db.JobsCollection.UpdateOne(ctx,
		bson.M{"jobid": payment.JobID, "status": models.JobInProgress},
		refundJobUpdate(now),
	); err != nil {
		log.Printf("RequestRefund: job cancellation failed for %s: %v", payment.JobID, err)
	}

	notifyPaymentEvent(r, payment.FreelancerID, payment.ClientID, models.NotifPaymentRefunded,
		"Payment refunded", "The escrowed payment for your job was refunded to the client", payment.PaymentID)

	utils.SendResponse(w, http.StatusOK, payment)
}

func notifyPaymentEvent(r *http.Request, recipientID, senderID string, typ models.NotificationType, title, message, relatedID string) {
	if recipientID == "" {
		return
	}
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
