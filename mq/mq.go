package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/PilotScript/freelancer-platform/db"
	"github.com/PilotScript/freelancer-platform/models"
	"github.com/PilotScript/freelancer-platform/rdx"
	"github.com/PilotScript/freelancer-platform/utils"
)

const eventChannel = "engagement-events"

// Emit publishes a lifecycle event to Redis. Delivery is best-effort; a lost
// notification never fails the request that produced it.
func Emit(ctx context.Context, event models.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[mq] marshal event %q: %v", event.Name, err)
		return
	}
	if err := rdx.Conn.Publish(ctx, eventChannel, data).Err(); err != nil {
		log.Printf("[mq] publish event %q: %v", event.Name, err)
	}
}

// StartNotificationWorker consumes engagement events and materializes them as
// notification records. Runs until the subscription channel closes.
func StartNotificationWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventChannel)
	ch := sub.Channel()

	log.Println("[mq] notification worker listening")

	for msg := range ch {
		var event models.Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[mq] bad event payload: %v", err)
			continue
		}
		if event.RecipientID == "" {
			continue
		}

		notif := models.Notification{
			NotificationID: utils.GenerateID("ntf", 12),
			RecipientID:    event.RecipientID,
			SenderID:       event.SenderID,
			Type:           event.Type,
			Title:          event.Title,
			Message:        event.Message,
			RelatedID:      event.RelatedID,
			CreatedAt:      time.Now(),
		}
		if _, err := db.NotificationsCollection.InsertOne(ctx, notif); err != nil {
			log.Printf("[mq] notification insert: %v", err)
		}
	}
}
