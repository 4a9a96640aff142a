package models

import "time"

// ProposalStatus is the Proposal lifecycle enum.
type ProposalStatus string

const (
	ProposalPending   ProposalStatus = "pending"
	ProposalAccepted  ProposalStatus = "accepted"
	ProposalRejected  ProposalStatus = "rejected"
	ProposalWithdrawn ProposalStatus = "withdrawn"
)

type Proposal struct {
	ProposalID        string         `bson:"proposalid" json:"proposalid"`
	JobID             string         `bson:"jobid" json:"jobid"`
	FreelancerID      string         `bson:"freelancerId" json:"freelancerId"`
	CoverLetter       string         `bson:"coverLetter" json:"coverLetter"`
	ProposedAmount    float64        `bson:"proposedAmount" json:"proposedAmount"`
	EstimatedDuration string         `bson:"estimatedDuration" json:"estimatedDuration"`
	Status            ProposalStatus `bson:"status" json:"status"`
	Attachments       []string       `bson:"attachments,omitempty" json:"attachments,omitempty"`
	CreatedAt         time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time      `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
