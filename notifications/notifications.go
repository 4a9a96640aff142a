// Package notifications serves the in-app notification feed produced by the
// mq worker.
package notifications

import (
	"net/http"

	"github.com/PilotScript/freelancer-platform/db"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListNotifications returns the caller's feed, newest first. ?unread=true
// narrows to unread entries.
func ListNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	filter := bson.M{"recipientId": userID}
	if r.URL.Query().Get("unread") == "true" {
		filter["read"] = false
	}

	page, limit := utils.ParsePagination(r)
	total, err := db.NotificationsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := db.NotificationsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	defer cursor.Close(ctx)

	notifs := []models.Notification{}
	if err := cursor.All(ctx, &notifs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	utils.SendPage(w, http.StatusOK, notifs, len(notifs), page, limit, total)
}

// MarkRead marks one notification read. Recipient only.
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	res, err := db.NotificationsCollection.UpdateOne(ctx,
		bson.M{"notifid": ps.ByName("id"), "recipientId": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"read": true})
}

// MarkAllRead clears the caller's unread notifications.
func MarkAllRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	res, err := db.NotificationsCollection.UpdateMany(ctx,
		bson.M{"recipientId": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"updated": res.ModifiedCount})
}
