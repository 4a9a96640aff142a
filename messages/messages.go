package messages

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/PilotScript/freelancer-platform/db"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/mq"
	"github.com/PilotScript/freelancer-platform/msghub"
	"github.com/PilotScript/freelancer-platform/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const maxMessageLen = 5000

// PersistMessage stores a message arriving over the websocket and keeps the
// conversation index current. Satisfies msghub.PersistFunc.
func PersistMessage(ctx context.Context, senderID, conversationID, content string) (*models.Message, error) {
	recipientID, err := otherParticipant(conversationID, senderID)
	if err != nil {
		return nil, err
	}
	return saveMessage(ctx, senderID, recipientID, content, "", nil)
}

func saveMessage(ctx context.Context, senderID, recipientID, content, jobID string, attachments []string) (*models.Message, error) {
	now := time.Now()
	msg := models.Message{
		MessageID:   utils.GenerateID("msg", 12),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		Attachments: attachments,
		JobID:       jobID,
		Read:        false,
		CreatedAt:   now,
	}
	if _, err := db.MessagesCollection.InsertOne(ctx, msg); err != nil {
		return nil, err
	}
	if err := touchConversation(ctx, senderID, recipientID, preview(content), now); err != nil {
		log.Printf("saveMessage: conversation upsert failed for %s->%s: %v", senderID, recipientID, err)
	}
	return &msg, nil
}

func preview(content string) string {
	if len(content) > 120 {
		return content[:120]
	}
	return content
}

// SendMessage delivers a direct message over REST. The saved message is also
// pushed to any websocket clients sitting in the pair's room.
func SendMessage(hub *msghub.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx := r.Context()
		senderID := utils.GetUserIDFromRequest(r)

		var req struct {
			RecipientID string   `json:"recipientId"`
			Content     string   `json:"content"`
			JobID       string   `json:"jobId"`
			Attachments []string `json:"attachments"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}
		if req.RecipientID == "" || req.Content == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "recipientId and content are required")
			return
		}
		if req.RecipientID == senderID {
			utils.RespondWithError(w, http.StatusBadRequest, "Cannot message yourself")
			return
		}
		if len(req.Content) > maxMessageLen {
			utils.RespondWithError(w, http.StatusBadRequest, "Message too long")
			return
		}
		if err := db.UserCollection.FindOne(ctx, bson.M{"userid": req.RecipientID}).Err(); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Recipient not found")
			return
		}

		msg, err := saveMessage(ctx, senderID, req.RecipientID, req.Content, req.JobID, req.Attachments)
		if err != nil {
			log.Printf("SendMessage: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send message")
			return
		}

		if hub != nil {
			out := utils.M{
				"action":         "chat",
				"id":             msg.MessageID,
				"conversationId": ConversationKey(senderID, req.RecipientID),
				"senderId":       senderID,
				"content":        msg.Content,
				"timestamp":      msg.CreatedAt.Unix(),
			}
			if data, err := json.Marshal(out); err == nil {
				hub.Broadcast(ConversationKey(senderID, req.RecipientID), data)
			}
		}

		mq.Emit(ctx, models.Event{
			Name:        string(models.NotifNewMessage),
			RecipientID: req.RecipientID,
			SenderID:    senderID,
			Type:        models.NotifNewMessage,
			Title:       "New message",
			Message:     preview(req.Content),
			RelatedID:   msg.MessageID,
		})

		utils.SendResponse(w, http.StatusCreated, msg)
	}
}

// GetConversations lists the caller's conversations, most recent first.
// Served straight from the conversation index.
func GetConversations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	page, limit := utils.ParsePagination(r)
	filter := bson.M{"participants": userID}

	total, err := db.ConversationsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch conversations")
		return
	}

	cursor, err := db.ConversationsCollection.Find(ctx, filter,
		mongoFindPage(page, limit, bson.D{{Key: "lastMessageAt", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch conversations")
		return
	}
	defer cursor.Close(ctx)

	conversations := []models.Conversation{}
	if err := cursor.All(ctx, &conversations); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch conversations")
		return
	}

	utils.SendPage(w, http.StatusOK, conversations, len(conversations), page, limit, total)
}

// GetMessages returns the thread with one other user, oldest first, and
// marks the incoming side as read.
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	peerID := ps.ByName("userId")

	page, limit := utils.ParsePagination(r)
	filter := bson.M{
		"$or": []bson.M{
			{"senderId": userID, "recipientId": peerID},
			{"senderId": peerID, "recipientId": userID},
		},
	}

	total, err := db.MessagesCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	cursor, err := db.MessagesCollection.Find(ctx, filter,
		mongoFindPage(page, limit, bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}
	defer cursor.Close(ctx)

	msgs := []models.Message{}
	if err := cursor.All(ctx, &msgs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	// Reading the thread consumes it.
	if _, err := db.MessagesCollection.UpdateMany(ctx,
		bson.M{"senderId": peerID, "recipientId": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	); err != nil {
		log.Printf("GetMessages: mark read failed for %s: %v", userID, err)
	}
	if err := resetUnread(ctx, userID, peerID); err != nil {
		log.Printf("GetMessages: unread reset failed for %s: %v", userID, err)
	}

	utils.SendPage(w, http.StatusOK, msgs, len(msgs), page, limit, total)
}

// GetUnreadCount sums the caller's unread counters across conversations.
func GetUnreadCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	cursor, err := db.ConversationsCollection.Find(ctx, bson.M{"participants": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch unread count")
		return
	}
	defer cursor.Close(ctx)

	var conversations []models.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch unread count")
		return
	}

	var count int64
	for _, c := range conversations {
		count += c.Unread[userID]
	}

	utils.SendResponse(w, http.StatusOK, utils.M{"unreadCount": count})
}

// MarkAsRead marks a single received message read.
func MarkAsRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	messageID := ps.ByName("id")

	var msg models.Message
	if err := db.MessagesCollection.FindOne(ctx, bson.M{"messageid": messageID}).Decode(&msg); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Message not found")
		return
	}
	if msg.RecipientID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the recipient can mark a message read")
		return
	}

	if !msg.Read {
		if _, err := db.MessagesCollection.UpdateOne(ctx,
			bson.M{"messageid": messageID},
			bson.M{"$set": bson.M{"read": true}},
		); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update message")
			return
		}
		msg.Read = true
		// Counters only ever drift downward here; clamp at zero.
		if _, err := db.ConversationsCollection.UpdateOne(ctx,
			bson.M{"conversationid": ConversationKey(userID, msg.SenderID), "unread." + userID: bson.M{"$gt": 0}},
			bson.M{"$inc": bson.M{"unread." + userID: -1}},
		); err != nil {
			log.Printf("MarkAsRead: counter decrement failed for %s: %v", userID, err)
		}
	}

	utils.SendResponse(w, http.StatusOK, msg)
}
