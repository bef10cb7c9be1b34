package products

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/productflow-backend/internal/domain"
	"github.com/yungbote/productflow-backend/internal/pkg/dbctx"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

type ProductInputRepo interface {
	Create(dbc dbctx.Context, row *types.ProductInput) (*types.ProductInput, error)
	GetByID(dbc dbctx.Context, productID, id uuid.UUID) (*types.ProductInput, error)
	GetByProductAndInput(dbc dbctx.Context, productID, inputID uuid.UUID) (*types.ProductInput, error)
	ListByProduct(dbc dbctx.Context, productID uuid.UUID) ([]*types.ProductInput, error)
	Update(dbc dbctx.Context, productID, id uuid.UUID, p types.ProductInputPatch) (*types.ProductInput, bool, error)
	// Delete also removes the input-consumption rows that reference the row.
	Delete(dbc dbctx.Context, productID, id uuid.UUID) error
}

type productInputRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductInputRepo(db *gorm.DB, baseLog *logger.Logger) ProductInputRepo {
	return &productInputRepo{db: db, log: baseLog.With("repo", "ProductInputRepo")}
}

func (r *productInputRepo) Create(dbc dbctx.Context, row *types.ProductInput) (*types.ProductInput, error) {
	if row == nil || row.ProductID == uuid.Nil || row.InputID == uuid.Nil {
		return nil, fmt.Errorf("product input requires product_id and input_id")
	}
	if err := createOne(dbc.DB(r.db), row); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *productInputRepo) first(dbc dbctx.Context, where map[string]any) (*types.ProductInput, error) {
	var row types.ProductInput
	if err := dbc.DB(r.db).Where(where).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *productInputRepo) GetByID(dbc dbctx.Context, productID, id uuid.UUID) (*types.ProductInput, error) {
	if productID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc, scoped(productID, id))
}

func (r *productInputRepo) GetByProductAndInput(dbc dbctx.Context, productID, inputID uuid.UUID) (*types.ProductInput, error) {
	if productID == uuid.Nil || inputID == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc, map[string]any{"product_id": productID, "input_id": inputID})
}

func (r *productInputRepo) ListByProduct(dbc dbctx.Context, productID uuid.UUID) ([]*types.ProductInput, error) {
	var out []*types.ProductInput
	err := dbc.DB(r.db).
		Where("product_id = ?", productID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productInputRepo) Update(dbc dbctx.Context, productID, id uuid.UUID, p types.ProductInputPatch) (*types.ProductInput, bool, error) {
	existing, err := r.GetByID(dbc, productID, id)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, gorm.ErrRecordNotFound
	}
	base := existing.Snapshot()
	wrote, err := updateChanged(dbc.DB(r.db), &types.ProductInput{}, scoped(productID, id), base, p.Merge(base))
	if err != nil || !wrote {
		return existing, false, err
	}
	updated, err := r.GetByID(dbc, productID, id)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

func (r *productInputRepo) Delete(dbc dbctx.Context, productID, id uuid.UUID) error {
	t := dbc.DB(r.db)
	if err := t.Where("product_id = ? AND product_input_id = ?", productID, id).Delete(&types.ProductInputProcess{}).Error; err != nil {
		return err
	}
	return deleteWhere(t, &types.ProductInput{}, scoped(productID, id))
}
