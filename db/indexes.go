package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the lifecycle invariants rely on.
// Safe to call on every startup; Mongo treats existing indexes as no-ops.
func EnsureIndexes(ctx context.Context) error {
	specs := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{UserCollection, []mongo.IndexModel{
			{Keys: bson.M{"email": 1}, Options: options.Index().SetUnique(true).SetName("unique_email")},
			{Keys: bson.M{"userid": 1}, Options: options.Index().SetUnique(true).SetName("unique_userid")},
		}},
		{JobsCollection, []mongo.IndexModel{
			{Keys: bson.M{"jobid": 1}, Options: options.Index().SetUnique(true).SetName("unique_jobid")},
			{Keys: bson.M{"clientId": 1, "createdAt": -1}, Options: options.Index().SetName("client_created")},
			{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}, {Key: "skills", Value: "text"}},
				Options: options.Index().SetName("job_text_search")},
		}},
		// One proposal per (job, freelancer) pair.
		{ProposalsCollection, []mongo.IndexModel{
			{Keys: bson.M{"proposalid": 1}, Options: options.Index().SetUnique(true).SetName("unique_proposalid")},
			{Keys: bson.D{{Key: "jobid", Value: 1}, {Key: "freelancerId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_job_freelancer")},
		}},
		// A replayed confirm for the same gateway transaction must not create
		// a second Payment.
		{PaymentsCollection, []mongo.IndexModel{
			{Keys: bson.M{"paymentid": 1}, Options: options.Index().SetUnique(true).SetName("unique_paymentid")},
			{Keys: bson.M{"transactionId": 1}, Options: options.Index().SetUnique(true).SetName("unique_transaction")},
		}},
		{MessagesCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "read", Value: 1}}, Options: options.Index().SetName("recipient_read")},
			{Keys: bson.D{{Key: "senderId", Value: 1}, {Key: "recipientId", Value: 1}, {Key: "createdAt", Value: 1}},
				Options: options.Index().SetName("pair_createdAt")},
		}},
		{ConversationsCollection, []mongo.IndexModel{
			{Keys: bson.M{"conversationid": 1}, Options: options.Index().SetUnique(true).SetName("unique_conversation")},
			{Keys: bson.D{{Key: "participants", Value: 1}, {Key: "lastMessageAt", Value: -1}},
				Options: options.Index().SetName("participant_recent")},
		}},
		// One review per (reviewer, job).
		{ReviewsCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "reviewerId", Value: 1}, {Key: "jobid", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_reviewer_job")},
		}},
		{NotificationsCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "read", Value: 1}}, Options: options.Index().SetName("recipient_read")},
			{Keys: bson.M{"createdAt": -1}, Options: options.Index().SetName("created_desc")},
		}},
		{IdempotencyCollection, []mongo.IndexModel{
			{Keys: bson.M{"key": 1}, Options: options.Index().SetUnique(true).SetName("unique_key")},
			{Keys: bson.M{"expires_at": 1}, Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at")},
		}},
	}

	for _, s := range specs {
		if _, err := s.coll.Indexes().CreateMany(ctx, s.models); err != nil {
			return err
		}
	}
	return nil
}
