package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/productflow-backend/internal/http/handlers"
	httpMW "github.com/yungbote/productflow-backend/internal/http/middleware"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log          *logger.Logger
	AllowOrigins []string

	ProductHandler *httpH.ProductHandler
	UploadHandler  *httpH.UploadHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestID())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Uploads
		if cfg.UploadHandler != nil {
			api.POST("/uploads/photo", cfg.UploadHandler.UploadPhoto)
		}

		// Products
		if cfg.ProductHandler != nil {
			api.POST("/products", cfg.ProductHandler.CreateProduct)
			api.GET("/products/:id", cfg.ProductHandler.GetProduct)
			api.PATCH("/products/:id", cfg.ProductHandler.UpdateProduct)
		}
	}

	return r
}
