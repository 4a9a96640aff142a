package models

import "time"

type Review struct {
	ReviewID   string    `bson:"reviewid" json:"reviewid"`
	ReviewerID string    `bson:"reviewerId" json:"reviewerId"`
	RevieweeID string    `bson:"revieweeId" json:"revieweeId"`
	JobID      string    `bson:"jobid" json:"jobid"`
	Rating     int       `bson:"rating" json:"rating"` // 1..5
	Comment    string    `bson:"comment" json:"comment"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
