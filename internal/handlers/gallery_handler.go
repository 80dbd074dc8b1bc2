package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yiltek/catalog-backend/internal/adapters/repository"
	"github.com/yiltek/catalog-backend/internal/models"
	"github.com/yiltek/catalog-backend/internal/storage"
	"github.com/yiltek/catalog-backend/utils"
)

const msgGalleryNotFound = "Gallery item not found"

type GalleryHandler struct {
	gallery  repository.GalleryRepository
	storage  storage.Storage
	maxBytes int64
}

func NewGalleryHandler(gallery repository.GalleryRepository, st storage.Storage, maxBytes int64) *GalleryHandler {
	return &GalleryHandler{gallery: gallery, storage: st, maxBytes: maxBytes}
}

func sourcePolicy(t models.GalleryType) storage.Policy {
	if t == models.GalleryVideo {
		return storage.Videos
	}
	return storage.Images
}

func sourceURLField(t models.GalleryType) string {
	if t == models.GalleryVideo {
		return "videoUrl"
	}
	return "imageUrl"
}

func missingSourceMessage(t models.GalleryType) string {
	if t == models.GalleryVideo {
		return "Either a video file or URL is required"
	}
	return "Either an image file or URL is required"
}

// parseForm reads the multipart body up front so an oversized request is
// reported as such rather than as missing fields.
func parseForm(c *gin.Context) bool {
	if _, err := c.MultipartForm(); err != nil && bodyTooLarge(err) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgFileTooLarge))
		return false
	}
	return true
}

func (h *GalleryHandler) GetGallery(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.gallery.ListGallery(ctx)
	if err != nil {
		storeError(c, err, msgGalleryNotFound, "Server error while fetching gallery items")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *GalleryHandler) GetGalleryItem(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := h.gallery.GetGalleryItem(ctx, id)
	if err != nil {
		storeError(c, err, msgGalleryNotFound, "Server error while fetching gallery item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateGalleryItem accepts multipart form data: type, title, description,
// and either a file or an imageUrl/videoUrl. Videos may carry a thumbnail.
func (h *GalleryHandler) CreateGalleryItem(c *gin.Context) {
	limitBody(c, h.maxBytes, 2)
	if !parseForm(c) {
		return
	}

	itemType := models.GalleryType(c.PostForm("type"))
	if !itemType.Valid() {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Valid type (image or video) is required"))
		return
	}

	item := models.GalleryItem{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Type:        itemType,
	}
	if item.Title == "" {
		item.Title = itemType.DefaultTitle()
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var saved []string
	if fh, err := c.FormFile("file"); err == nil {
		stored, ok := saveFormFile(ctx, c, h.storage, fh, h.maxBytes, sourcePolicy(itemType))
		if !ok {
			return
		}
		item.URL = stored.Path
		saved = append(saved, stored.Path)
	} else {
		item.URL = strings.TrimSpace(c.PostForm(sourceURLField(itemType)))
	}
	if item.URL == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(missingSourceMessage(itemType)))
		return
	}

	if itemType == models.GalleryVideo {
		if fh, err := c.FormFile("thumbnail"); err == nil {
			stored, ok := saveFormFile(ctx, c, h.storage, fh, h.maxBytes, storage.Images)
			if !ok {
				discardStored(ctx, h.storage, saved)
				return
			}
			item.Thumbnail = &stored.Path
			saved = append(saved, stored.Path)
		}
	}

	if err := validate.Struct(item); err != nil {
		discardStored(ctx, h.storage, saved)
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid gallery item"))
		return
	}

	created, err := h.gallery.CreateGalleryItem(ctx, item)
	if err != nil {
		discardStored(ctx, h.storage, saved)
		storeError(c, err, msgGalleryNotFound, "Server error while creating gallery item")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *GalleryHandler) UpdateGalleryItem(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	limitBody(c, h.maxBytes, 2)
	if !parseForm(c) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := h.gallery.GetGalleryItem(ctx, id)
	if err != nil {
		storeError(c, err, msgGalleryNotFound, "Server error while updating gallery item")
		return
	}

	if title := strings.TrimSpace(c.PostForm("title")); title != "" {
		item.Title = title
	}
	if description := strings.TrimSpace(c.PostForm("description")); description != "" {
		item.Description = description
	}
	if raw := c.PostForm("type"); raw != "" {
		itemType := models.GalleryType(raw)
		if !itemType.Valid() {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Valid type (image or video) is required"))
			return
		}
		item.Type = itemType
	}

	var replaced, saved []string
	if fh, err := c.FormFile("file"); err == nil {
		stored, ok := saveFormFile(ctx, c, h.storage, fh, h.maxBytes, sourcePolicy(item.Type))
		if !ok {
			return
		}
		replaced = append(replaced, item.URL)
		item.URL = stored.Path
		saved = append(saved, stored.Path)
	} else if url := strings.TrimSpace(c.PostForm(sourceURLField(item.Type))); url != "" {
		replaced = append(replaced, item.URL)
		item.URL = url
	}

	if item.Type == models.GalleryVideo {
		if fh, err := c.FormFile("thumbnail"); err == nil {
			stored, ok := saveFormFile(ctx, c, h.storage, fh, h.maxBytes, storage.Images)
			if !ok {
				discardStored(ctx, h.storage, saved)
				return
			}
			saved = append(saved, stored.Path)
			if item.Thumbnail != nil {
				replaced = append(replaced, *item.Thumbnail)
			}
			item.Thumbnail = &stored.Path
		}
	}

	updated, err := h.gallery.UpdateGalleryItem(ctx, item)
	if err != nil {
		discardStored(ctx, h.storage, saved)
		storeError(c, err, msgGalleryNotFound, "Server error while updating gallery item")
		return
	}
	for _, old := range replaced {
		if old != updated.URL {
			removeStored(ctx, h.storage, old)
		}
	}
	c.JSON(http.StatusOK, updated)
}

func (h *GalleryHandler) DeleteGalleryItem(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := h.gallery.GetGalleryItem(ctx, id)
	if err != nil {
		storeError(c, err, msgGalleryNotFound, "Server error while deleting gallery item")
		return
	}
	h.discardItemFiles(c, item)

	if err := h.gallery.DeleteGalleryItem(ctx, id); err != nil {
		storeError(c, err, msgGalleryNotFound, "Server error while deleting gallery item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gallery item deleted successfully"})
}

func (h *GalleryHandler) discardItemFiles(c *gin.Context, item models.GalleryItem) {
	removeStored(c.Request.Context(), h.storage, item.URL)
	if item.Thumbnail != nil {
		removeStored(c.Request.Context(), h.storage, *item.Thumbnail)
	}
}
