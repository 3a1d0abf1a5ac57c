package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"passwordHash" json:"-"`
	Hearts       []primitive.ObjectID `bson:"hearts" json:"hearts"`
	CreatedAt    int64                `bson:"createdAt" json:"createdAt"`

	// Password-reset state. Both fields are unset outside an active
	// reset window and are never exposed in responses.
	ResetPasswordToken   string    `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires time.Time `bson:"resetPasswordExpires,omitempty" json:"-"`
}
