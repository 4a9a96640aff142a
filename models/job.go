package models

import "time"

// JobStatus is the Job lifecycle enum.
type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobInProgress JobStatus = "in-progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// JobCategories is the closed category enum carried over from the platform's
// posting form.
var JobCategories = []string{
	"Programming",
	"Design",
	"Writing",
	"Marketing",
	"Admin",
	"Customer Service",
	"Sales",
	"Other",
}

type Job struct {
	JobID       string    `bson:"jobid" json:"jobid"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Skills      []string  `bson:"skills" json:"skills"`
	Budget      float64   `bson:"budget" json:"budget"`
	PaymentType string    `bson:"paymentType" json:"paymentType"` // hourly, fixed, milestone
	Duration    string    `bson:"duration,omitempty" json:"duration,omitempty"` // short, medium, long
	Experience  string    `bson:"experience,omitempty" json:"experience,omitempty"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	Deadline    time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Status      JobStatus `bson:"status" json:"status"`
	ClientID    string    `bson:"clientId" json:"clientId"`
	// FreelancerID is set iff Status is in-progress or completed.
	FreelancerID string    `bson:"freelancerId,omitempty" json:"freelancerId,omitempty"`
	ProposalIDs  []string  `bson:"proposalIds,omitempty" json:"proposalIds,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
