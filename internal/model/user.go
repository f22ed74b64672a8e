package model

import (
	"time"

	"github.com/google/uuid"
)

const SubscriptionPremium = "premium"

type UserLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public shape of a user embedded in posts and comments.
// Premium status travels as two fields; clients fold them into one flag.
type UserResponse struct {
	Id               string  `json:"_id"`
	Username         string  `json:"username,omitempty"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	ProfilePicture   *string `json:"profilePicture"`
	IsPremium        bool    `json:"isPremium"`
	SubscriptionType string  `json:"subscriptionType"`
}

type UserEnvelope struct {
	Success bool         `json:"success"`
	Data    UserResponse `json:"data"`
}

type User struct {
	Id               uuid.UUID
	Username         string
	Password         string
	FirstName        string
	LastName         string
	ProfilePicture   *string
	IsPremium        bool
	SubscriptionType string
	CreateDatetime   time.Time
	UpdateDatetime   time.Time
}
