package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yiltek/catalog-backend/internal/adapters/repository"
	"github.com/yiltek/catalog-backend/internal/models"
	"github.com/yiltek/catalog-backend/internal/services/catalog"
	"github.com/yiltek/catalog-backend/utils"
)

const (
	msgProductNotFound = "Product not found"
	msgSlugExists      = "Product with this slug already exists"
	msgServerError     = "Server error"
)

type ProductHandler struct {
	products repository.ProductRepository
	catalog  catalog.Service
}

func NewProductHandler(products repository.ProductRepository, catalogService catalog.Service) *ProductHandler {
	return &ProductHandler{products: products, catalog: catalogService}
}

// GetProducts serves GET /api/products.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	q := catalog.ListQuery{
		Page:         queryInt(c, "page", 1),
		FeaturedOnly: c.Query("featured") == "true",
	}
	if raw := c.Query("category"); raw != "" {
		categoryID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid category id"))
			return
		}
		q.Category = &categoryID
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := h.catalog.ListProducts(ctx, q)
	if err != nil {
		storeError(c, err, msgProductNotFound, msgServerError)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := h.catalog.FeaturedProducts(ctx)
	if err != nil {
		storeError(c, err, msgProductNotFound, msgServerError)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.products.GetProduct(ctx, id)
	if err != nil {
		storeError(c, err, msgProductNotFound, msgServerError)
		return
	}
	h.respondPopulated(c, product)
}

func (h *ProductHandler) GetProductBySlug(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.products.GetProductBySlug(ctx, strings.ToLower(c.Param("slug")))
	if err != nil {
		storeError(c, err, msgProductNotFound, msgServerError)
		return
	}
	h.respondPopulated(c, product)
}

func (h *ProductHandler) respondPopulated(c *gin.Context, product models.Product) {
	ctx, cancel := requestContext(c)
	defer cancel()

	views, err := h.catalog.Populate(ctx, []models.Product{product})
	if err != nil {
		storeError(c, err, msgProductNotFound, msgServerError)
		return
	}
	c.JSON(http.StatusOK, views[0])
}

// GetAdminProducts lists every product, inactive ones included, for the panel.
func (h *ProductHandler) GetAdminProducts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := h.catalog.AdminProducts(ctx, catalog.AdminQuery{
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", catalog.AdminPageSize),
		Search: strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		storeError(c, err, msgProductNotFound, msgServerError)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input models.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid product data"))
		return
	}
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid product data"))
		return
	}

	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}
	if slug == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid product data"))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	taken, err := h.products.SlugTaken(ctx, slug, primitive.NilObjectID)
	if err != nil {
		storeError(c, err, msgProductNotFound, msgServerError)
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgSlugExists))
		return
	}

	product := models.Product{
		Name:          input.Name,
		Description:   input.Description,
		Category:      input.Category,
		MainImage:     input.MainImage,
		Gallery:       input.Gallery,
		Accessories:   input.Accessories,
		DownloadFiles: input.DownloadFiles,
		Slug:          slug,
		IsActive:      input.IsActive == nil || *input.IsActive,
		IsFeatured:    input.IsFeatured,
		Order:         input.Order,
	}
	created, err := h.products.CreateProduct(ctx, product)
	if errors.Is(err, repository.ErrDuplicateKey) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgSlugExists))
		return
	}
	if err != nil {
		storeError(c, err, msgProductNotFound, msgServerError)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var input models.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid product data"))
		return
	}
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid product data"))
		return
	}
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))

	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := h.products.GetProduct(ctx, id)
	if err != nil {
		storeError(c, err, msgProductNotFound, msgServerError)
		return
	}

	if input.Slug != "" && input.Slug != product.Slug {
		taken, err := h.products.SlugTaken(ctx, input.Slug, id)
		if err != nil {
			storeError(c, err, msgProductNotFound, msgServerError)
			return
		}
		if taken {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgSlugExists))
			return
		}
	}

	input.Merge(&product)
	updated, err := h.products.UpdateProduct(ctx, product)
	if errors.Is(err, repository.ErrDuplicateKey) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgSlugExists))
		return
	}
	if err != nil {
		storeError(c, err, msgProductNotFound, msgServerError)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.products.DeleteProduct(ctx, id); err != nil {
		storeError(c, err, msgProductNotFound, msgServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}
