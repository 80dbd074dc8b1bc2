package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yiltek/catalog-backend/internal/adapters/repository"
	"github.com/yiltek/catalog-backend/internal/models"
	"github.com/yiltek/catalog-backend/internal/notify"
	"github.com/yiltek/catalog-backend/internal/services/catalog"
	"github.com/yiltek/catalog-backend/utils"
)

const (
	contactPageSize    = 20
	msgContactNotFound = "Contact not found"
)

// ContactNotifier delivers the notification for a stored submission.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, email notify.ContactEmail) error
}

type ContactHandler struct {
	contacts repository.ContactRepository
	products repository.ProductRepository
	catalog  catalog.Service
	notifier ContactNotifier
}

func NewContactHandler(contacts repository.ContactRepository, products repository.ProductRepository, catalogService catalog.Service, notifier ContactNotifier) *ContactHandler {
	return &ContactHandler{contacts: contacts, products: products, catalog: catalogService, notifier: notifier}
}

// SubmitContact stores the submission, then emails it. A mail failure never
// fails the request.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var input models.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid contact data"))
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid contact data"))
		return
	}

	contact := models.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   strings.TrimSpace(input.Phone),
		Subject: input.Subject,
		Message: input.Message,
		IsQuote: input.IsQuote,
	}
	if raw := strings.TrimSpace(input.Product); raw != "" {
		productID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid product id"))
			return
		}
		contact.Product = &productID
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	created, err := h.contacts.CreateContact(ctx, contact)
	if err != nil {
		storeError(c, err, msgContactNotFound, msgServerError)
		return
	}

	h.notify(ctx, created, input.CompanyName)
	c.JSON(http.StatusCreated, gin.H{"message": "Contact form submitted successfully"})
}

func (h *ContactHandler) notify(ctx context.Context, contact models.Contact, companyName string) {
	if h.notifier == nil {
		return
	}
	email := notify.ContactEmail{
		Name:        contact.Name,
		CompanyName: strings.TrimSpace(companyName),
		Email:       contact.Email,
		Phone:       contact.Phone,
		Subject:     contact.Subject,
		Message:     contact.Message,
		IsQuote:     contact.IsQuote,
	}
	if contact.Product != nil {
		email.Product = contact.Product.Hex()
		if product, err := h.products.GetProduct(ctx, *contact.Product); err == nil {
			email.Product = product.Name
		}
	}

	entry := logrus.WithField("contactId", contact.ID.Hex())
	if err := h.notifier.NotifyContact(ctx, email); err != nil {
		entry.WithError(err).Warn("contact notification not sent")
		return
	}
	entry.Info("contact notification sent")
}

func (h *ContactHandler) GetContacts(c *gin.Context) {
	page := queryInt(c, "page", 1)
	filter := repository.ContactFilter{QuoteOnly: c.Query("quote") == "true"}
	if raw := c.Query("read"); raw != "" {
		if read, err := strconv.ParseBool(raw); err == nil {
			filter.Read = &read
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	contacts, total, err := h.contacts.FindContacts(ctx, filter, repository.Page{
		Skip:  int64((page - 1) * contactPageSize),
		Limit: contactPageSize,
	})
	if err != nil {
		storeError(c, err, msgContactNotFound, msgServerError)
		return
	}
	views, err := h.catalog.PopulateContacts(ctx, contacts)
	if err != nil {
		storeError(c, err, msgContactNotFound, msgServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"contacts": views,
		"page":     page,
		"pages":    (total + contactPageSize - 1) / contactPageSize,
		"total":    total,
	})
}

func (h *ContactHandler) GetContactByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	contact, err := h.contacts.GetContact(ctx, id)
	if err != nil {
		storeError(c, err, msgContactNotFound, msgServerError)
		return
	}
	views, err := h.catalog.PopulateContacts(ctx, []models.Contact{contact})
	if err != nil {
		storeError(c, err, msgContactNotFound, msgServerError)
		return
	}
	c.JSON(http.StatusOK, views[0])
}

type markReadRequest struct {
	IsRead *bool `json:"isRead"`
}

func (h *ContactHandler) UpdateContact(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	var contact models.Contact
	var err error
	if req.IsRead != nil {
		contact, err = h.contacts.MarkRead(ctx, id, *req.IsRead)
	} else {
		contact, err = h.contacts.GetContact(ctx, id)
	}
	if err != nil {
		storeError(c, err, msgContactNotFound, msgServerError)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.contacts.DeleteContact(ctx, id); err != nil {
		storeError(c, err, msgContactNotFound, msgServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact removed"})
}
