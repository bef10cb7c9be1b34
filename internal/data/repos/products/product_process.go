package products

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/productflow-backend/internal/domain"
	"github.com/yungbote/productflow-backend/internal/pkg/dbctx"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

type ProductProcessRepo interface {
	Create(dbc dbctx.Context, row *types.ProductProcess) (*types.ProductProcess, error)
	GetByID(dbc dbctx.Context, productID, id uuid.UUID) (*types.ProductProcess, error)
	ListByProduct(dbc dbctx.Context, productID uuid.UUID) ([]*types.ProductProcess, error)
	Update(dbc dbctx.Context, productID, id uuid.UUID, p types.ProductProcessPatch) (*types.ProductProcess, bool, error)
	// Delete also removes the input-consumption rows of the process step.
	Delete(dbc dbctx.Context, productID, id uuid.UUID) error
}

type productProcessRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductProcessRepo(db *gorm.DB, baseLog *logger.Logger) ProductProcessRepo {
	return &productProcessRepo{db: db, log: baseLog.With("repo", "ProductProcessRepo")}
}

func (r *productProcessRepo) Create(dbc dbctx.Context, row *types.ProductProcess) (*types.ProductProcess, error) {
	if row == nil || row.ProductID == uuid.Nil || row.ProcessID == uuid.Nil {
		return nil, fmt.Errorf("product process requires product_id and process_id")
	}
	if err := createOne(dbc.DB(r.db), row); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *productProcessRepo) GetByID(dbc dbctx.Context, productID, id uuid.UUID) (*types.ProductProcess, error) {
	if productID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var row types.ProductProcess
	if err := dbc.DB(r.db).Where(scoped(productID, id)).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *productProcessRepo) ListByProduct(dbc dbctx.Context, productID uuid.UUID) ([]*types.ProductProcess, error) {
	var out []*types.ProductProcess
	err := dbc.DB(r.db).
		Where("product_id = ?", productID).
		Order("sort_order ASC, created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productProcessRepo) Update(dbc dbctx.Context, productID, id uuid.UUID, p types.ProductProcessPatch) (*types.ProductProcess, bool, error) {
	existing, err := r.GetByID(dbc, productID, id)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, gorm.ErrRecordNotFound
	}
	base := existing.Snapshot()
	wrote, err := updateChanged(dbc.DB(r.db), &types.ProductProcess{}, scoped(productID, id), base, p.Merge(base))
	if err != nil || !wrote {
		return existing, false, err
	}
	updated, err := r.GetByID(dbc, productID, id)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

func (r *productProcessRepo) Delete(dbc dbctx.Context, productID, id uuid.UUID) error {
	t := dbc.DB(r.db)
	if err := t.Where("product_id = ? AND product_process_id = ?", productID, id).Delete(&types.ProductInputProcess{}).Error; err != nil {
		return err
	}
	return deleteWhere(t, &types.ProductProcess{}, scoped(productID, id))
}
