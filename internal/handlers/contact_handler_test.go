package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yiltek/catalog-backend/internal/models"
)

func TestSubmitContactStoresAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	p := env.addProduct(models.Product{Name: "Mobil Işık Kulesi", IsActive: true})

	w := env.do(t, http.MethodPost, "/api/contact", "", map[string]any{
		"name":        "Ayşe Yılmaz",
		"email":       " Ayse@Example.com ",
		"phone":       "+90 555 000 00 00",
		"subject":     "Fiyat teklifi",
		"message":     "10 adet için teklif rica ederim.",
		"companyName": "Yılmaz İnşaat",
		"product":     p.ID.Hex(),
		"isQuote":     true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Contact form submitted successfully")

	require.Len(t, env.store.contacts, 1)
	stored := env.store.contacts[0]
	assert.Equal(t, "ayse@example.com", stored.Email)
	assert.True(t, stored.IsQuote)
	assert.False(t, stored.IsRead)
	require.NotNil(t, stored.Product)
	assert.Equal(t, p.ID, *stored.Product)

	require.Len(t, env.notifier.sent, 1)
	sent := env.notifier.sent[0]
	assert.Equal(t, "Mobil Işık Kulesi", sent.Product)
	assert.Equal(t, "Yılmaz İnşaat", sent.CompanyName)
	assert.True(t, sent.IsQuote)
}

func TestSubmitContactMailFailureStillSucceeds(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.err = errors.New("smtp: connection refused")

	w := env.do(t, http.MethodPost, "/api/contact", "", map[string]any{
		"name": "Ali", "email": "ali@example.com", "subject": "Merhaba", "message": "Bilgi",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, env.store.contacts, 1)
}

func TestSubmitContactValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing message", map[string]any{"name": "Ali", "email": "ali@example.com", "subject": "S"}},
		{"bad email", map[string]any{"name": "Ali", "email": "not-mail", "subject": "S", "message": "M"}},
		{"bad product", map[string]any{"name": "Ali", "email": "ali@example.com", "subject": "S", "message": "M", "product": "xyz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/contact", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Empty(t, env.store.contacts)
	assert.Empty(t, env.notifier.sent)
}

func TestSubmitContactStoreFailureSkipsMail(t *testing.T) {
	env := newTestEnv(t)
	env.store.failWith = errors.New("write concern")

	w := env.do(t, http.MethodPost, "/api/contact", "", map[string]any{
		"name": "Ali", "email": "ali@example.com", "subject": "S", "message": "M",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, env.notifier.sent)
}

func TestContactInbox(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, env.admin)
	p := env.addProduct(models.Product{Name: "Jeneratör", IsActive: true})
	env.store.contacts = []models.Contact{
		{ID: primitive.NewObjectID(), Name: "A", Email: "a@x.com", Subject: "s", Message: "m", Product: &p.ID, IsQuote: true, CreatedAt: time.Now()},
		{ID: primitive.NewObjectID(), Name: "B", Email: "b@x.com", Subject: "s", Message: "m", IsRead: true, CreatedAt: time.Now()},
	}

	w := env.do(t, http.MethodGet, "/api/contact", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/contact?quote=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Contacts []struct {
			Name    string         `json:"name"`
			Product map[string]any `json:"product"`
		} `json:"contacts"`
		Page  int   `json:"page"`
		Pages int   `json:"pages"`
		Total int64 `json:"total"`
	}
	decode(t, w, &page)
	require.Len(t, page.Contacts, 1)
	assert.Equal(t, "Jeneratör", page.Contacts[0].Product["name"])
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 1, page.Pages)

	w = env.do(t, http.MethodGet, "/api/contact?read=false", token, nil)
	decode(t, w, &page)
	require.Len(t, page.Contacts, 1)
	assert.Equal(t, "A", page.Contacts[0].Name)
}

func TestUpdateContactReadFlag(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, env.admin)
	contact := models.Contact{ID: primitive.NewObjectID(), Name: "A", Email: "a@x.com", Subject: "s", Message: "m"}
	env.store.contacts = []models.Contact{contact}
	path := "/api/contact/" + contact.ID.Hex()

	w := env.do(t, http.MethodPut, path, token, map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Contact
	decode(t, w, &got)
	assert.False(t, got.IsRead)

	w = env.do(t, http.MethodPut, path, token, map[string]any{"isRead": true})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &got)
	assert.True(t, got.IsRead)

	w = env.do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
