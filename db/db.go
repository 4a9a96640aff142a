package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	JobsCollection          *mongo.Collection
	ProposalsCollection     *mongo.Collection
	PaymentsCollection      *mongo.Collection
	MessagesCollection      *mongo.Collection
	ConversationsCollection *mongo.Collection
	ReviewsCollection       *mongo.Collection
	NotificationsCollection *mongo.Collection
	IdempotencyCollection   *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("freelancerhub")
	UserCollection = database.Collection("users")
	JobsCollection = database.Collection("jobs")
	ProposalsCollection = database.Collection("proposals")
	PaymentsCollection = database.Collection("payments")
	MessagesCollection = database.Collection("messages")
	ConversationsCollection = database.Collection("conversations")
	ReviewsCollection = database.Collection("reviews")
	NotificationsCollection = database.Collection("notifications")
	IdempotencyCollection = database.Collection("idempotency")
}
