package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/productflow-backend/internal/data/repos"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

type Repos struct {
	Product              repos.ProductRepo
	Input                repos.InputRepo
	Process              repos.ProcessRepo
	ProductInput         repos.ProductInputRepo
	ProductProcess       repos.ProductProcessRepo
	ProductInputProcess  repos.ProductInputProcessRepo
	ProductDiscountRange repos.ProductDiscountRangeRepo
	ProductRead          repos.ProductReadRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Product:              repos.NewProductRepo(db, log),
		Input:                repos.NewInputRepo(db, log),
		Process:              repos.NewProcessRepo(db, log),
		ProductInput:         repos.NewProductInputRepo(db, log),
		ProductProcess:       repos.NewProductProcessRepo(db, log),
		ProductInputProcess:  repos.NewProductInputProcessRepo(db, log),
		ProductDiscountRange: repos.NewProductDiscountRangeRepo(db, log),
		ProductRead:          repos.NewProductReadRepo(db, log),
	}
}
