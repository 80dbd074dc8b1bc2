package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yiltek/catalog-backend/internal/adapters/repository"
	"github.com/yiltek/catalog-backend/internal/config"
	"github.com/yiltek/catalog-backend/internal/middleware"
	"github.com/yiltek/catalog-backend/internal/models"
	"github.com/yiltek/catalog-backend/internal/services/catalog"
	"github.com/yiltek/catalog-backend/internal/storage"
)

// Dependencies is everything the API routes need. A nil *Dependencies puts
// the server in degraded mode.
type Dependencies struct {
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Systems    repository.SystemRepository
	Gallery    repository.GalleryRepository
	Contacts   repository.ContactRepository
	Users      repository.UserRepository

	Storage  storage.Storage
	Notifier ContactNotifier
}

// NewDependencies wires the Mongo repositories. notifier may be nil.
func NewDependencies(db *mongo.Database, st storage.Storage, notifier ContactNotifier) *Dependencies {
	return &Dependencies{
		Products:   repository.NewProductRepository(db),
		Categories: repository.NewCategoryRepository(db),
		Systems:    repository.NewSystemRepository(db),
		Gallery:    repository.NewGalleryRepository(db),
		Contacts:   repository.NewContactRepository(db),
		Users:      repository.NewUserRepository(db),
		Storage:    st,
		Notifier:   notifier,
	}
}

func SetupRoutes(router *gin.Engine, cfg config.Config, deps *Dependencies) {
	logrus.Info("Setting up routes...")

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"service":  "catalog-backend",
			"database": deps != nil,
		})
	})

	if cfg.UploadDir != "" {
		router.Static("/uploads", cfg.UploadDir)
	}

	if deps != nil {
		logrus.Info("Database connected - setting up database routes")
		registerAPI(router, cfg, deps)
	} else {
		logrus.Warn("Database not connected - running with limited functionality")
		router.Any("/api/*path", func(c *gin.Context) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "The server is running but could not connect to the database. Please check server logs.",
			})
		})
	}

	if cfg.ClientBuildDir != "" {
		serveClient(router, cfg.ClientBuildDir)
	} else {
		router.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "API is running..."})
		})
	}
}

func registerAPI(router *gin.Engine, cfg config.Config, deps *Dependencies) {
	catalogService := catalog.NewService(deps.Products, deps.Categories, cfg.PriorityCategories)

	productHandler := NewProductHandler(deps.Products, catalogService)
	categoryHandler := NewCategoryHandler(deps.Categories)
	adminHandler := NewAdminHandler(deps.Users, deps.Systems, cfg.JWTSecret, cfg.TokenTTL)
	galleryHandler := NewGalleryHandler(deps.Gallery, deps.Storage, cfg.GalleryMaxBytes)
	contactHandler := NewContactHandler(deps.Contacts, deps.Products, catalogService, deps.Notifier)
	uploadHandler := NewUploadHandler(deps.Storage, cfg.UploadMaxBytes)

	authenticated := middleware.AuthMiddleware(cfg.JWTSecret, deps.Users)
	adminOnly := middleware.RoleMiddleware(models.RoleAdmin)

	api := router.Group("/api")
	api.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API test endpoint is working", "time": time.Now()})
	})

	products := api.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/featured", productHandler.GetFeaturedProducts)
		products.GET("/slug/:slug", productHandler.GetProductBySlug)
		products.GET("/:id", productHandler.GetProductByID)
		products.POST("", authenticated, adminOnly, productHandler.CreateProduct)
		products.PUT("/:id", authenticated, adminOnly, productHandler.UpdateProduct)
		products.DELETE("/:id", authenticated, adminOnly, productHandler.DeleteProduct)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.GetCategories)
		categories.GET("/:id", categoryHandler.GetCategoryByID)
		categories.POST("", authenticated, adminOnly, categoryHandler.CreateCategory)
		categories.PUT("/:id", authenticated, adminOnly, categoryHandler.UpdateCategory)
		categories.DELETE("/:id", authenticated, adminOnly, categoryHandler.DeleteCategory)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/login", adminHandler.Login)
		auth.GET("/me", authenticated, adminHandler.Me)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/login", adminHandler.Login)
		admin.GET("/systems/public", adminHandler.GetSystems)

		protected := admin.Group("", authenticated, adminOnly)
		protected.GET("/systems", adminHandler.GetSystems)
		protected.POST("/systems", adminHandler.CreateSystem)
		protected.PUT("/systems/:id", adminHandler.UpdateSystem)
		protected.DELETE("/systems/:id", adminHandler.DeleteSystem)
		protected.PUT("/password", adminHandler.ChangePassword)
		protected.GET("/products", productHandler.GetAdminProducts)
	}

	gallery := api.Group("/gallery")
	{
		gallery.GET("", galleryHandler.GetGallery)
		gallery.GET("/:id", galleryHandler.GetGalleryItem)
		gallery.POST("", authenticated, galleryHandler.CreateGalleryItem)
		gallery.PUT("/:id", authenticated, galleryHandler.UpdateGalleryItem)
		gallery.DELETE("/:id", authenticated, galleryHandler.DeleteGalleryItem)
	}

	contact := api.Group("/contact")
	{
		contact.POST("", contactHandler.SubmitContact)
		contact.GET("", authenticated, adminOnly, contactHandler.GetContacts)
		contact.GET("/:id", authenticated, adminOnly, contactHandler.GetContactByID)
		contact.PUT("/:id", authenticated, adminOnly, contactHandler.UpdateContact)
		contact.DELETE("/:id", authenticated, adminOnly, contactHandler.DeleteContact)
	}

	upload := api.Group("/upload", authenticated, adminOnly)
	{
		upload.POST("", uploadHandler.UploadFile)
		upload.POST("/multiple", uploadHandler.UploadMultiple)
		upload.POST("/image", uploadHandler.UploadImage)
		upload.POST("/file", uploadHandler.UploadDocument)
		upload.POST("/combined", uploadHandler.UploadCombined)
	}
}

// serveClient serves the single-page client build. Unknown non-API paths
// fall back to index.html so client-side routing works.
func serveClient(router *gin.Engine, dir string) {
	index := filepath.Join(dir, "index.html")
	router.GET("/", func(c *gin.Context) { c.File(index) })
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
			return
		}
		asset := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+c.Request.URL.Path)))
		if info, err := os.Stat(asset); err == nil && !info.IsDir() {
			c.File(asset)
			return
		}
		c.File(index)
	})
}
