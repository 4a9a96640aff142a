package payments

import (
	"io"
	"log"
	"net/http"

	"github.com/PilotScript/freelancer-platform/stripe"
	"github.com/PilotScript/freelancer-platform/utils"

	"github.com/julienschmidt/httprouter"
)

const maxWebhookBody = 64 << 10

// HandleWebhook receives gateway events. This is the authoritative write
// path for payment state: a signed payment_intent.succeeded settles the
// payment whether or not the client ever called confirm.
func HandleWebhook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unreadable payload")
		return
	}

	event, err := stripe.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), stripe.WebhookSecret())
	if err != nil {
		log.Printf("HandleWebhook: rejected event: %v", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid webhook signature")
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		intent := event.Data.Object
		if _, _, err := settleIntent(r.Context(), &intent); err != nil {
			log.Printf("HandleWebhook: settle failed for %s: %v", intent.ID, err)
			// Non-2xx makes the gateway retry; settleIntent is idempotent.
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record payment")
			return
		}
	case "payment_intent.payment_failed":
		log.Printf("HandleWebhook: payment failed for intent %s", event.Data.Object.ID)
	default:
		log.Printf("HandleWebhook: ignoring event type %s", event.Type)
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"received": true})
}
