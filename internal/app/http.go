package app

import (
	"github.com/yungbote/productflow-backend/internal/http"
	httpH "github.com/yungbote/productflow-backend/internal/http/handlers"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
	"github.com/yungbote/productflow-backend/internal/platform/filestore"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Product *httpH.ProductHandler
	Upload  *httpH.UploadHandler
}

func wireHandlers(log *logger.Logger, aggs Aggregates, r Repos, files filestore.Store) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(),
		Product: httpH.NewProductHandler(log, aggs.Product, r.ProductRead),
		Upload:  httpH.NewUploadHandler(log, files),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:            log,
		AllowOrigins:   cfg.CORSAllowOrigins,
		HealthHandler:  handlers.Health,
		ProductHandler: handlers.Product,
		UploadHandler:  handlers.Upload,
	})
}
