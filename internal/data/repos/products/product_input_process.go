package products

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/productflow-backend/internal/domain"
	"github.com/yungbote/productflow-backend/internal/pkg/dbctx"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

type ProductInputProcessRepo interface {
	Create(dbc dbctx.Context, row *types.ProductInputProcess) (*types.ProductInputProcess, error)
	GetByID(dbc dbctx.Context, productID, id uuid.UUID) (*types.ProductInputProcess, error)
	ListByProduct(dbc dbctx.Context, productID uuid.UUID) ([]*types.ProductInputProcess, error)
	ListByProductProcess(dbc dbctx.Context, productID, productProcessID uuid.UUID) ([]*types.ProductInputProcess, error)
	Update(dbc dbctx.Context, productID, id uuid.UUID, p types.ProductInputProcessPatch) (*types.ProductInputProcess, bool, error)
	Delete(dbc dbctx.Context, productID, id uuid.UUID) error
}

type productInputProcessRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductInputProcessRepo(db *gorm.DB, baseLog *logger.Logger) ProductInputProcessRepo {
	return &productInputProcessRepo{db: db, log: baseLog.With("repo", "ProductInputProcessRepo")}
}

func (r *productInputProcessRepo) Create(dbc dbctx.Context, row *types.ProductInputProcess) (*types.ProductInputProcess, error) {
	if row == nil || row.ProductID == uuid.Nil || row.ProductProcessID == uuid.Nil || row.ProductInputID == uuid.Nil {
		return nil, fmt.Errorf("product input process requires product_id, product_process_id and product_input_id")
	}
	if err := createOne(dbc.DB(r.db), row); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *productInputProcessRepo) GetByID(dbc dbctx.Context, productID, id uuid.UUID) (*types.ProductInputProcess, error) {
	if productID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row types.ProductInputProcess
	if err := dbc.DB(r.db).Where(scoped(productID, id)).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *productInputProcessRepo) ListByProduct(dbc dbctx.Context, productID uuid.UUID) ([]*types.ProductInputProcess, error) {
	var out []*types.ProductInputProcess
	err := dbc.DB(r.db).
		Where("product_id = ?", productID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productInputProcessRepo) ListByProductProcess(dbc dbctx.Context, productID, productProcessID uuid.UUID) ([]*types.ProductInputProcess, error) {
	var out []*types.ProductInputProcess
	err := dbc.DB(r.db).
		Where("product_id = ? AND product_process_id = ?", productID, productProcessID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productInputProcessRepo) Update(dbc dbctx.Context, productID, id uuid.UUID, p types.ProductInputProcessPatch) (*types.ProductInputProcess, bool, error) {
	existing, err := r.GetByID(dbc, productID, id)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, gorm.ErrRecordNotFound
	}
	base := existing.Snapshot()
	wrote, err := updateChanged(dbc.DB(r.db), &types.ProductInputProcess{}, scoped(productID, id), base, p.Merge(base))
	if err != nil || !wrote {
		return existing, false, err
	}
	updated, err := r.GetByID(dbc, productID, id)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

func (r *productInputProcessRepo) Delete(dbc dbctx.Context, productID, id uuid.UUID) error {
	return deleteWhere(dbc.DB(r.db), &types.ProductInputProcess{}, scoped(productID, id))
}
