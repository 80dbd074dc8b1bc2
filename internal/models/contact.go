package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Contact struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name      string              `json:"name" bson:"name"`
	Email     string              `json:"email" bson:"email"`
	Phone     string              `json:"phone,omitempty" bson:"phone,omitempty"`
	Subject   string              `json:"subject" bson:"subject"`
	Message   string              `json:"message" bson:"message"`
	Product   *primitive.ObjectID `json:"product,omitempty" bson:"product,omitempty"`
	IsQuote   bool                `json:"isQuote" bson:"isQuote"`
	IsRead    bool                `json:"isRead" bson:"isRead"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// ContactInput is the public form payload. CompanyName only travels in the
// notification email.
type ContactInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Subject     string `json:"subject" validate:"required"`
	Message     string `json:"message" validate:"required"`
	CompanyName string `json:"companyName"`
	Product     string `json:"product"`
	IsQuote     bool   `json:"isQuote"`
}

type ProductRef struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
	Slug string             `json:"slug"`
}

type ContactView struct {
	Contact
	Product any `json:"product,omitempty"`
}

func NewContactView(c Contact, ref *ProductRef) ContactView {
	view := ContactView{Contact: c}
	switch {
	case ref != nil:
		view.Product = *ref
	case c.Product != nil:
		view.Product = *c.Product
	}
	return view
}
