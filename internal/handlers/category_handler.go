package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yiltek/catalog-backend/internal/adapters/repository"
	"github.com/yiltek/catalog-backend/internal/models"
	"github.com/yiltek/catalog-backend/utils"
)

const (
	msgCategoryNotFound  = "Kategori bulunamadı"
	msgCategoryDuplicate = "Bu isimde veya slug'da bir kategori zaten var"
)

type CategoryHandler struct {
	categories repository.CategoryRepository
}

func NewCategoryHandler(categories repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	categories, err := h.categories.ListCategories(ctx)
	if err != nil {
		storeError(c, err, msgCategoryNotFound, "Kategoriler getirilirken bir hata oluştu")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	category, err := h.categories.GetCategory(ctx, id)
	if err != nil {
		storeError(c, err, msgCategoryNotFound, "Sunucu hatası")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Kategori adı gereklidir"))
		return
	}

	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}
	if slug == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Kategori adı gereklidir"))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	taken, err := h.categories.SlugTaken(ctx, slug, primitive.NilObjectID)
	if err != nil {
		storeError(c, err, msgCategoryNotFound, "Kategori oluşturulurken bir hata oluştu")
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgCategoryDuplicate))
		return
	}

	created, err := h.categories.CreateCategory(ctx, models.Category{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Image:       input.Image,
		Order:       input.Order,
		IsActive:    input.IsActive == nil || *input.IsActive,
	})
	if errors.Is(err, repository.ErrDuplicateKey) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgCategoryDuplicate))
		return
	}
	if err != nil {
		storeError(c, err, msgCategoryNotFound, "Kategori oluşturulurken bir hata oluştu")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var input models.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Kategori adı gereklidir"))
		return
	}
	if input.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*input.Slug))
		input.Slug = &slug
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	category, err := h.categories.GetCategory(ctx, id)
	if err != nil {
		storeError(c, err, msgCategoryNotFound, "Kategori güncellenirken bir hata oluştu")
		return
	}
	input.Merge(&category)
	if category.Slug == "" {
		category.Slug = utils.Slugify(category.Name)
	}
	if category.Slug == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Kategori adı gereklidir"))
		return
	}

	taken, err := h.categories.SlugTaken(ctx, category.Slug, id)
	if err != nil {
		storeError(c, err, msgCategoryNotFound, "Kategori güncellenirken bir hata oluştu")
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgCategoryDuplicate))
		return
	}

	updated, err := h.categories.UpdateCategory(ctx, category)
	if errors.Is(err, repository.ErrDuplicateKey) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgCategoryDuplicate))
		return
	}
	if err != nil {
		storeError(c, err, msgCategoryNotFound, "Kategori güncellenirken bir hata oluştu")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCategory removes the category only; products keep their reference.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.categories.DeleteCategory(ctx, id); err != nil {
		storeError(c, err, msgCategoryNotFound, "Kategori silinirken bir hata oluştu")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Kategori başarıyla silindi"})
}
