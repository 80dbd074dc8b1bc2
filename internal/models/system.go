package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// System is a showcased turnkey solution on the marketing site.
type System struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Description string             `json:"description" bson:"description" validate:"required"`
	ImageURL    string             `json:"imageUrl" bson:"imageUrl" validate:"required"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type SystemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func (in SystemInput) Merge(s *System) {
	if in.Name != "" {
		s.Name = in.Name
	}
	if in.Description != "" {
		s.Description = in.Description
	}
	if in.ImageURL != "" {
		s.ImageURL = in.ImageURL
	}
}
