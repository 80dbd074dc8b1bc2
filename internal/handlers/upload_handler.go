package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yiltek/catalog-backend/internal/storage"
	"github.com/yiltek/catalog-backend/utils"
)

const (
	maxFilesPerRequest = 10
	msgFileTooLarge    = "Dosya boyutu çok büyük"
)

type UploadHandler struct {
	storage  storage.Storage
	maxBytes int64
}

func NewUploadHandler(st storage.Storage, maxBytes int64) *UploadHandler {
	return &UploadHandler{storage: st, maxBytes: maxBytes}
}

// limitBody caps the request body so an oversized multipart payload is cut
// off before it is buffered to disk.
func limitBody(c *gin.Context, perFile int64, files int) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, perFile*int64(files)+(1<<20))
}

// bodyTooLarge reports whether err was caused by the limitBody cap.
func bodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// missingFile answers a failed multipart read, telling an oversized body apart
// from an absent file.
func missingFile(c *gin.Context, err error, msg string) {
	if bodyTooLarge(err) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgFileTooLarge))
		return
	}
	c.JSON(http.StatusBadRequest, utils.ErrorResponse(msg))
}

// saveFormFile stores one uploaded file and writes the error response when it
// cannot be accepted.
func saveFormFile(ctx context.Context, c *gin.Context, st storage.Storage, fh *multipart.FileHeader, maxBytes int64, accept storage.Policy) (storage.Stored, bool) {
	stored, err := storage.SaveUpload(ctx, st, fh, maxBytes, accept)
	switch {
	case err == nil:
		return stored, true
	case errors.Is(err, storage.ErrTooLarge):
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(msgFileTooLarge))
	case errors.Is(err, storage.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Desteklenmeyen dosya türü"))
	default:
		logrus.WithError(err).WithField("file", fh.Filename).Error("upload failed")
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Dosya yüklenirken bir hata oluştu"))
	}
	return storage.Stored{}, false
}

func (h *UploadHandler) single(c *gin.Context) (storage.Stored, bool) {
	limitBody(c, h.maxBytes, 1)
	fh, err := c.FormFile("file")
	if err != nil {
		missingFile(c, err, "No file uploaded")
		return storage.Stored{}, false
	}
	ctx, cancel := requestContext(c)
	defer cancel()
	return saveFormFile(ctx, c, h.storage, fh, h.maxBytes, storage.Documents)
}

// UploadFile handles POST /api/upload.
func (h *UploadHandler) UploadFile(c *gin.Context) {
	stored, ok := h.single(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"filePath": stored.Path,
	})
}

func (h *UploadHandler) UploadMultiple(c *gin.Context) {
	limitBody(c, h.maxBytes, maxFilesPerRequest)
	form, err := c.MultipartForm()
	if err != nil {
		missingFile(c, err, "No files uploaded")
		return
	}
	if len(form.File["files"]) == 0 {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("No files uploaded"))
		return
	}
	files := form.File["files"]
	if len(files) > maxFilesPerRequest {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("En fazla 10 dosya yüklenebilir"))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		stored, ok := saveFormFile(ctx, c, h.storage, fh, h.maxBytes, storage.Documents)
		if !ok {
			discardStored(ctx, h.storage, paths)
			return
		}
		paths = append(paths, stored.Path)
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Files uploaded successfully",
		"filePaths": paths,
	})
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	stored, ok := h.single(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Dosya başarıyla yüklendi",
		"imageUrl": stored.Path,
	})
}

func (h *UploadHandler) UploadDocument(c *gin.Context) {
	stored, ok := h.single(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Dosya başarıyla yüklendi",
		"filePath": stored.Path,
	})
}

func (h *UploadHandler) UploadCombined(c *gin.Context) {
	stored, ok := h.single(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"filePath": stored.Path,
		"imageUrl": stored.Path,
	})
}

// discardStored removes files already stored by a request that failed part way.
func discardStored(ctx context.Context, st storage.Storage, paths []string) {
	for _, p := range paths {
		removeStored(ctx, st, p)
	}
}

// removeStored deletes a file produced by st. Failures are logged only.
func removeStored(ctx context.Context, st storage.Storage, path string) {
	if path == "" || !st.Owns(path) {
		return
	}
	if err := st.Delete(ctx, path); err != nil {
		logrus.WithError(err).WithField("path", path).Warn("failed to delete stored file")
	}
}
