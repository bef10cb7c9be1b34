package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/productflow-backend/internal/data/repos/products"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

type ProductRepo = products.ProductRepo
type InputRepo = products.InputRepo
type ProcessRepo = products.ProcessRepo
type ProductInputRepo = products.ProductInputRepo
type ProductProcessRepo = products.ProductProcessRepo
type ProductInputProcessRepo = products.ProductInputProcessRepo
type ProductDiscountRangeRepo = products.ProductDiscountRangeRepo
type ProductReadRepo = products.ProductReadRepo

var ErrNoRowsAffected = products.ErrNoRowsAffected

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return products.NewProductRepo(db, baseLog)
}
func NewInputRepo(db *gorm.DB, baseLog *logger.Logger) InputRepo {
	return products.NewInputRepo(db, baseLog)
}
func NewProcessRepo(db *gorm.DB, baseLog *logger.Logger) ProcessRepo {
	return products.NewProcessRepo(db, baseLog)
}
func NewProductInputRepo(db *gorm.DB, baseLog *logger.Logger) ProductInputRepo {
	return products.NewProductInputRepo(db, baseLog)
}
func NewProductProcessRepo(db *gorm.DB, baseLog *logger.Logger) ProductProcessRepo {
	return products.NewProductProcessRepo(db, baseLog)
}
func NewProductInputProcessRepo(db *gorm.DB, baseLog *logger.Logger) ProductInputProcessRepo {
	return products.NewProductInputProcessRepo(db, baseLog)
}
func NewProductDiscountRangeRepo(db *gorm.DB, baseLog *logger.Logger) ProductDiscountRangeRepo {
	return products.NewProductDiscountRangeRepo(db, baseLog)
}
func NewProductReadRepo(db *gorm.DB, baseLog *logger.Logger) ProductReadRepo {
	return products.NewProductReadRepo(db, baseLog)
}
