package models

import "time"

// PaymentStatus is the Payment lifecycle enum.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	PaymentID     string        `bson:"paymentid" json:"paymentid"`
	JobID         string        `bson:"jobid" json:"jobid"`
	ClientID      string        `bson:"clientId" json:"clientId"`
	FreelancerID  string        `bson:"freelancerId" json:"freelancerId"`
	Amount        float64       `bson:"amount" json:"amount"`
	Currency      string        `bson:"currency" json:"currency"`
	PaymentMethod string        `bson:"paymentMethod" json:"paymentMethod"` // stripe, paypal, bank_transfer
	Status        PaymentStatus `bson:"status" json:"status"`
	// Escrow is true only while Status is completed and funds have not been
	// released to the freelancer.
	Escrow        bool      `bson:"escrow" json:"escrow"`
	ReleaseDate   time.Time `bson:"releaseDate,omitempty" json:"releaseDate,omitempty"`
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// IdempotencyRecord is a stored Idempotency-Key replay record.
type IdempotencyRecord struct {
	Key         string                 `bson:"key" json:"key"`
	Method      string                 `bson:"method" json:"method"`
	Path        string                 `bson:"path" json:"path"`
	UserID      string                 `bson:"userid" json:"userid"`
	RequestHash string                 `bson:"request_hash" json:"request_hash"`
	Response    map[string]interface{} `bson:"response,omitempty" json:"response,omitempty"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
	ExpiresAt   time.Time              `bson:"expires_at" json:"expires_at"`
}
