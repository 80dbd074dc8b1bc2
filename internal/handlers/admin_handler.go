package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/yiltek/catalog-backend/internal/adapters/repository"
	"github.com/yiltek/catalog-backend/internal/middleware"
	"github.com/yiltek/catalog-backend/internal/models"
	"github.com/yiltek/catalog-backend/utils"
)

const (
	msgSystemNotFound  = "Sistem bulunamadı"
	msgInvalidLogin    = "Geçersiz kullanıcı adı veya şifre"
	msgLoginFailed     = "Giriş işlemi sırasında bir hata oluştu"
	msgAllFieldsNeeded = "Tüm alanlar gereklidir"
)

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// AdminHandler serves the admin login and the systems showcase.
type AdminHandler struct {
	users     repository.UserRepository
	systems   repository.SystemRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAdminHandler(users repository.UserRepository, systems repository.SystemRepository, jwtSecret string, tokenTTL time.Duration) *AdminHandler {
	return &AdminHandler{users: users, systems: systems, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}
	login := strings.TrimSpace(req.Username)
	if login == "" {
		login = strings.TrimSpace(req.Email)
	}
	if login == "" || req.Password == "" {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(msgInvalidLogin))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.users.FindByLogin(ctx, login)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(msgInvalidLogin))
		return
	}
	if err != nil {
		storeError(c, err, msgInvalidLogin, msgLoginFailed)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(msgInvalidLogin))
		return
	}
	if !user.IsAdmin() {
		c.JSON(http.StatusForbidden, utils.ErrorResponse("Yetkisiz erişim. Sadece admin kullanıcıları giriş yapabilir."))
		return
	}

	token, err := utils.GenerateToken(h.jwtSecret, user.ID.Hex(), user.Role, h.tokenTTL)
	if err != nil {
		logrus.WithError(err).Error("failed to sign admin token")
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(msgLoginFailed))
		return
	}

	logrus.WithField("userId", user.ID.Hex()).Info("admin logged in")
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": user.Name,
		"role":     user.Role,
		"email":    user.Email,
	})
}

// Me returns the account behind the bearer token.
func (h *AdminHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Token eksik, lütfen giriş yapın"))
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Token eksik, lütfen giriş yapın"))
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Yeni şifre en az 8 karakter olmalıdır"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Mevcut şifre hatalı"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Sunucu hatası"))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		storeError(c, err, "Kullanıcı bulunamadı", "Sunucu hatası")
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("Şifre başarıyla güncellendi", nil))
}

func (h *AdminHandler) GetSystems(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	systems, err := h.systems.ListSystems(ctx)
	if err != nil {
		storeError(c, err, msgSystemNotFound, "Sunucu hatası")
		return
	}
	c.JSON(http.StatusOK, gin.H{"systems": systems})
}

func (h *AdminHandler) CreateSystem(c *gin.Context) {
	var input models.SystemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgAllFieldsNeeded))
		return
	}
	system := models.System{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
	}
	if err := validate.Struct(system); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgAllFieldsNeeded))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	created, err := h.systems.CreateSystem(ctx, system)
	if err != nil {
		storeError(c, err, msgSystemNotFound, "Sistem eklenirken bir hata oluştu")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"system": created})
}

func (h *AdminHandler) UpdateSystem(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var input models.SystemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	system, err := h.systems.GetSystem(ctx, id)
	if err != nil {
		storeError(c, err, msgSystemNotFound, "Sistem güncellenirken bir hata oluştu")
		return
	}
	input.Merge(&system)

	updated, err := h.systems.UpdateSystem(ctx, system)
	if err != nil {
		storeError(c, err, msgSystemNotFound, "Sistem güncellenirken bir hata oluştu")
		return
	}
	c.JSON(http.StatusOK, gin.H{"system": updated})
}

func (h *AdminHandler) DeleteSystem(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.systems.DeleteSystem(ctx, id); err != nil {
		storeError(c, err, msgSystemNotFound, "Sistem silinirken bir hata oluştu")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sistem başarıyla silindi"})
}
