package messages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PilotScript/freelancer-platform/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationKey derives the stable conversation ID for a pair of users:
// the sorted pair joined with ":". Both orderings map to the same document,
// and the websocket hub uses the same string as its room name.
func ConversationKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

// otherParticipant returns the peer for userID in a conversation key.
func otherParticipant(key, userID string) (string, error) {
	parts := strings.Split(key, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("malformed conversation key %q", key)
	}
	switch userID {
	case parts[0]:
		return parts[1], nil
	case parts[1]:
		return parts[0], nil
	}
	return "", fmt.Errorf("user %s is not in conversation %s", userID, key)
}

// touchConversation upserts the pair's conversation index entry: last
// message preview, timestamp and the recipient's unread counter. One
// document per pair, so listing conversations never scans messages.
func touchConversation(ctx context.Context, senderID, recipientID, preview string, at time.Time) error {
	key := ConversationKey(senderID, recipientID)
	a, b := senderID, recipientID
	if a > b {
		a, b = b, a
	}

	_, err := db.ConversationsCollection.UpdateOne(ctx,
		bson.M{"conversationid": key},
		bson.M{
			"$set": bson.M{
				"participants":  [2]string{a, b},
				"lastMessage":   preview,
				"lastSenderId":  senderID,
				"lastMessageAt": at,
				"updatedAt":     at,
			},
			"$inc": bson.M{"unread." + recipientID: 1},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// mongoFindPage builds find options for a sorted page.
func mongoFindPage(page, limit int, sort bson.D) *options.FindOptions {
	return options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
}

// resetUnread zeroes userID's counter on the pair's conversation.
func resetUnread(ctx context.Context, userID, peerID string) error {
	_, err := db.ConversationsCollection.UpdateOne(ctx,
		bson.M{"conversationid": ConversationKey(userID, peerID)},
		bson.M{"$set": bson.M{"unread." + userID: 0}},
	)
	return err
}
