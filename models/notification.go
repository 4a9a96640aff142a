package models

import "time"

// NotificationType covers the engagement events users are told about.
type NotificationType string

const (
	NotifNewProposal      NotificationType = "new_proposal"
	NotifProposalAccepted NotificationType = "proposal_accepted"
	NotifProposalRejected NotificationType = "proposal_rejected"
	NotifNewMessage       NotificationType = "new_message"
	NotifPaymentReceived  NotificationType = "payment_received"
	NotifPaymentReleased  NotificationType = "payment_released"
	NotifPaymentRefunded  NotificationType = "payment_refunded"
	NotifNewReview        NotificationType = "new_review"
)

type Notification struct {
	NotificationID string           `bson:"notifid" json:"notifid"`
	RecipientID    string           `bson:"recipientId" json:"recipientId"`
	SenderID       string           `bson:"senderId,omitempty" json:"senderId,omitempty"`
	Type           NotificationType `bson:"type" json:"type"`
	Title          string           `bson:"title" json:"title"`
	Message        string           `bson:"message" json:"message"`
	Read           bool             `bson:"read" json:"read"`
	RelatedID      string           `bson:"relatedId,omitempty" json:"relatedId,omitempty"`
	CreatedAt      time.Time        `bson:"createdAt" json:"createdAt"`
}

// Event is the payload published on the Redis event bus by lifecycle
// handlers and consumed by the notification worker.
type Event struct {
	Name        string           `json:"name"`
	RecipientID string           `json:"recipientId"`
	SenderID    string           `json:"senderId,omitempty"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	RelatedID   string           `json:"relatedId,omitempty"`
}
