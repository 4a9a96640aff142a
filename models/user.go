package models

import (
	"fmt"
	"time"
)

// Role is the closed set of actor roles. Handlers switch on it exhaustively
// instead of comparing raw strings.
type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleAdmin      Role = "admin"
)

// ParseRole rejects anything outside the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleFreelancer, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

type User struct {
	UserID        string    `bson:"userid" json:"userid"`
	Email         string    `bson:"email" json:"email"`
	Password      string    `bson:"password" json:"-"`
	FirstName     string    `bson:"firstName" json:"firstName"`
	LastName      string    `bson:"lastName" json:"lastName"`
	Role          Role      `bson:"role" json:"role"`
	Title         string    `bson:"title,omitempty" json:"title,omitempty"`
	Bio           string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills        []string  `bson:"skills,omitempty" json:"skills,omitempty"`
	HourlyRate    float64   `bson:"hourlyRate,omitempty" json:"hourlyRate,omitempty"`
	Location      string    `bson:"location,omitempty" json:"location,omitempty"`
	ProfileImage  string    `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Rating        float64   `bson:"rating,omitempty" json:"rating,omitempty"`
	RefreshToken  string    `bson:"refresh_token,omitempty" json:"-"`
	RefreshExpiry time.Time `bson:"refresh_expiry,omitempty" json:"-"`
	LastLogin     time.Time `bson:"last_login,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
