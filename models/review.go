package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Store   primitive.ObjectID `bson:"store" json:"store"`
	Author  primitive.ObjectID `bson:"author" json:"author"`
	Text    string             `bson:"text" json:"text"`
	Rating  int                `bson:"rating" json:"rating"`
	Created time.Time          `bson:"created" json:"created"`
}
