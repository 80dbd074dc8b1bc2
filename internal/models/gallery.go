package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GalleryType string

const (
	GalleryImage GalleryType = "image"
	GalleryVideo GalleryType = "video"
)

func (t GalleryType) Valid() bool {
	return t == GalleryImage || t == GalleryVideo
}

// DefaultTitle is used when an item is created without a title.
func (t GalleryType) DefaultTitle() string {
	if t == GalleryVideo {
		return "Video Gallery Item"
	}
	return "Image Gallery Item"
}

type GalleryItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Description string             `json:"description" bson:"description"`
	Type        GalleryType        `json:"type" bson:"type" validate:"required,oneof=image video"`
	URL         string             `json:"url" bson:"url" validate:"required"`
	Thumbnail   *string            `json:"thumbnail" bson:"thumbnail"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
