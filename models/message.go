package models

import "time"

type Message struct {
	MessageID   string    `bson:"messageid" json:"messageid"`
	SenderID    string    `bson:"senderId" json:"senderId"`
	RecipientID string    `bson:"recipientId" json:"recipientId"`
	Content     string    `bson:"content" json:"content"`
	Attachments []string  `bson:"attachments,omitempty" json:"attachments,omitempty"`
	Read        bool      `bson:"read" json:"read"`
	JobID       string    `bson:"jobid,omitempty" json:"jobid,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Conversation is the maintained per-pair index. ConversationID is derived
// from the sorted participant pair, so one document exists per pair and
// listing a user's conversations is a single indexed query.
type Conversation struct {
	ConversationID string    `bson:"conversationid" json:"conversationid"`
	Participants   [2]string `bson:"participants" json:"participants"`
	LastMessage    string    `bson:"lastMessage" json:"lastMessage"`
	LastSenderID   string    `bson:"lastSenderId" json:"lastSenderId"`
	LastMessageAt  time.Time `bson:"lastMessageAt" json:"lastMessageAt"`
	// Unread counts keyed by participant user ID.
	Unread    map[string]int64 `bson:"unread" json:"unread"`
	UpdatedAt time.Time        `bson:"updatedAt" json:"updatedAt"`
}
