package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. Password holds the bcrypt hash.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CredentialsRequest is the body of signup and login.
type CredentialsRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// SignupResponse is returned by a successful signup.
type SignupResponse struct {
	Username string `json:"username" example:"alice"`
}

// LoginResponse carries the bearer token used by report calls.
type LoginResponse struct {
	Username string `json:"username" example:"alice"`
	Token    string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}
