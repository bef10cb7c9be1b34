package products

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/productflow-backend/internal/domain"
	"github.com/yungbote/productflow-backend/internal/pkg/dbctx"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

type ProductDiscountRangeRepo interface {
	Create(dbc dbctx.Context, row *types.ProductDiscountRange) (*types.ProductDiscountRange, error)
	GetByID(dbc dbctx.Context, productID, id uuid.UUID) (*types.ProductDiscountRange, error)
	ListByProduct(dbc dbctx.Context, productID uuid.UUID) ([]*types.ProductDiscountRange, error)
	Update(dbc dbctx.Context, productID, id uuid.UUID, p types.ProductDiscountRangePatch) (*types.ProductDiscountRange, bool, error)
	Delete(dbc dbctx.Context, productID, id uuid.UUID) error
}

type productDiscountRangeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductDiscountRangeRepo(db *gorm.DB, baseLog *logger.Logger) ProductDiscountRangeRepo {
	return &productDiscountRangeRepo{db: db, log: baseLog.With("repo", "ProductDiscountRangeRepo")}
}

func (r *productDiscountRangeRepo) Create(dbc dbctx.Context, row *types.ProductDiscountRange) (*types.ProductDiscountRange, error) {
	if row == nil || row.ProductID == uuid.Nil {
		return nil, fmt.Errorf("discount range requires product_id")
	}
	if err := createOne(dbc.DB(r.db), row); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *productDiscountRangeRepo) GetByID(dbc dbctx.Context, productID, id uuid.UUID) (*types.ProductDiscountRange, error) {
	if productID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row types.ProductDiscountRange
	if err := dbc.DB(r.db).Where(scoped(productID, id)).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *productDiscountRangeRepo) ListByProduct(dbc dbctx.Context, productID uuid.UUID) ([]*types.ProductDiscountRange, error) {
	var out []*types.ProductDiscountRange
	err := dbc.DB(r.db).
		Where("product_id = ?", productID).
		Order("min_qty ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productDiscountRangeRepo) Update(dbc dbctx.Context, productID, id uuid.UUID, p types.ProductDiscountRangePatch) (*types.ProductDiscountRange, bool, error) {
	existing, err := r.GetByID(dbc, productID, id)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, gorm.ErrRecordNotFound
	}
	base := existing.Snapshot()
	wrote, err := updateChanged(dbc.DB(r.db), &types.ProductDiscountRange{}, scoped(productID, id), base, p.Merge(base))
	if err != nil || !wrote {
		return existing, false, err
	}
	updated, err := r.GetByID(dbc, productID, id)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

func (r *productDiscountRangeRepo) Delete(dbc dbctx.Context, productID, id uuid.UUID) error {
	return deleteWhere(dbc.DB(r.db), &types.ProductDiscountRange{}, scoped(productID, id))
}
