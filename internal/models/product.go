package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypeDoc   FileType = "doc"
	FileTypeImage FileType = "image"
	FileTypeOther FileType = "other"
)

type Accessory struct {
	Name        string `json:"name" bson:"name" validate:"required"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Image       string `json:"image,omitempty" bson:"image,omitempty"`
}

type DownloadFile struct {
	Name     string   `json:"name" bson:"name" validate:"required"`
	File     string   `json:"file" bson:"file" validate:"required"`
	FileType FileType `json:"fileType" bson:"fileType" validate:"omitempty,oneof=pdf doc image other"`
}

type Product struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`

	Name        string             `json:"name" bson:"name" validate:"required"`
	Description string             `json:"description" bson:"description" validate:"required"`
	Category    primitive.ObjectID `json:"category" bson:"category"`

	// Media
	MainImage     string         `json:"mainImage" bson:"mainImage" validate:"required"`
	Gallery       []string       `json:"gallery" bson:"gallery"`
	Accessories   []Accessory    `json:"accessories" bson:"accessories" validate:"dive"`
	DownloadFiles []DownloadFile `json:"downloadFiles" bson:"downloadFiles" validate:"dive"`

	Slug       string `json:"slug" bson:"slug"`
	IsActive   bool   `json:"isActive" bson:"isActive"`
	IsFeatured bool   `json:"isFeatured" bson:"isFeatured"`
	Order      int    `json:"order" bson:"order"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ApplyDefaults fills the optional collections and enum values the same way
// for every write path.
func (p *Product) ApplyDefaults() {
	if p.Gallery == nil {
		p.Gallery = []string{}
	}
	if p.Accessories == nil {
		p.Accessories = []Accessory{}
	}
	if p.DownloadFiles == nil {
		p.DownloadFiles = []DownloadFile{}
	}
	for i := range p.DownloadFiles {
		if p.DownloadFiles[i].FileType == "" {
			p.DownloadFiles[i].FileType = FileTypeOther
		}
	}
}

// CategoryRef is the populated form of a product's category.
type CategoryRef struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
	Slug string             `json:"slug"`
}

// ProductView is a product as returned to clients, with its category
// populated when the referenced document still exists.
type ProductView struct {
	Product
	Category any `json:"category"`
}

func NewProductView(p Product, ref *CategoryRef) ProductView {
	view := ProductView{Product: p, Category: p.Category}
	if ref != nil {
		view.Category = *ref
	}
	return view
}

// CategoryName returns the populated category name, or "" when unpopulated.
func (v ProductView) CategoryName() string {
	if ref, ok := v.Category.(CategoryRef); ok {
		return ref.Name
	}
	return ""
}

type CreateProductInput struct {
	Name          string             `json:"name" validate:"required"`
	Description   string             `json:"description" validate:"required"`
	Category      primitive.ObjectID `json:"category" validate:"required"`
	MainImage     string             `json:"mainImage" validate:"required"`
	Gallery       []string           `json:"gallery"`
	Accessories   []Accessory        `json:"accessories" validate:"dive"`
	DownloadFiles []DownloadFile     `json:"downloadFiles" validate:"dive"`
	Slug          string             `json:"slug"`
	IsActive      *bool              `json:"isActive"`
	IsFeatured    bool               `json:"isFeatured"`
	Order         int                `json:"order"`
}

type UpdateProductInput struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Category      *primitive.ObjectID `json:"category"`
	MainImage     string              `json:"mainImage"`
	Gallery       []string            `json:"gallery"`
	Accessories   []Accessory         `json:"accessories" validate:"dive"`
	DownloadFiles []DownloadFile      `json:"downloadFiles" validate:"dive"`
	Slug          string              `json:"slug"`
	IsActive      *bool               `json:"isActive"`
	IsFeatured    *bool               `json:"isFeatured"`
	Order         *int                `json:"order"`
}

// Merge applies the non-empty fields of the input onto p.
func (in UpdateProductInput) Merge(p *Product) {
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Category != nil && !in.Category.IsZero() {
		p.Category = *in.Category
	}
	if in.MainImage != "" {
		p.MainImage = in.MainImage
	}
	if in.Gallery != nil {
		p.Gallery = in.Gallery
	}
	if in.Accessories != nil {
		p.Accessories = in.Accessories
	}
	if in.DownloadFiles != nil {
		p.DownloadFiles = in.DownloadFiles
	}
	if in.Slug != "" {
		p.Slug = in.Slug
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	if in.Order != nil {
		p.Order = *in.Order
	}
}
