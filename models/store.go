package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is a single directory entry. The slug is derived from the name
// and is unique across the collection (enforced by a unique index).
type Store struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description"`
	Tags        []string           `bson:"tags,omitempty" json:"tags"`
	Created     time.Time          `bson:"created" json:"created"`
	Location    Location           `bson:"location" json:"location"`
	Photo       string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Author      primitive.ObjectID `bson:"author" json:"author"`

	// Score carries the text-relevance score on search results only.
	Score float64 `bson:"score,omitempty" json:"score,omitempty"`
}

// Location is a GeoJSON point with a human-readable address.
type Location struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [lng, lat]
	Address     string    `bson:"address" json:"address"`
}

// TagCount is one row of the tag-frequency aggregation.
type TagCount struct {
	Tag   string `bson:"_id" json:"tag"`
	Count int    `bson:"count" json:"count"`
}

// TopStore is one row of the top-stores aggregation: a store joined with
// its reviews plus the computed average rating.
type TopStore struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Slug          string             `bson:"slug" json:"slug"`
	Photo         string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	AverageRating float64            `bson:"averageRating" json:"averageRating"`
}
