package products

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/productflow-backend/internal/domain"
	"github.com/yungbote/productflow-backend/internal/pkg/dbctx"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

type ProductUniqueKey string

const (
	ProductKeyName     ProductUniqueKey = "name"
	ProductKeySKU      ProductUniqueKey = "sku"
	ProductKeyBarcode  ProductUniqueKey = "barcode"
	ProductKeyCustomID ProductUniqueKey = "custom_id"
)

type ProductRepo interface {
	Create(dbc dbctx.Context, row *types.Product) (*types.Product, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Product, error)
	// GetForUpdate is GetByID holding a row lock until the transaction ends.
	GetForUpdate(dbc dbctx.Context, id uuid.UUID) (*types.Product, error)
	GetByUniqueKey(dbc dbctx.Context, key ProductUniqueKey, value string) (*types.Product, error)
	// Update merges the editable fields of p and writes only what changed.
	// The returned bool reports whether a write happened.
	Update(dbc dbctx.Context, id uuid.UUID, p types.ProductPatch) (*types.Product, bool, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *productRepo) Create(dbc dbctx.Context, row *types.Product) (*types.Product, error) {
	if row == nil {
		return nil, fmt.Errorf("product row required")
	}
	if err := createOne(dbc.DB(r.db), row); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *productRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Product, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Product
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *productRepo) GetForUpdate(dbc dbctx.Context, id uuid.UUID) (*types.Product, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Product
	err := dbc.DB(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *productRepo) GetByUniqueKey(dbc dbctx.Context, key ProductUniqueKey, value string) (*types.Product, error) {
	switch key {
	case ProductKeyName, ProductKeySKU, ProductKeyBarcode, ProductKeyCustomID:
	default:
		return nil, fmt.Errorf("unsupported product key %q", key)
	}
	if value == "" {
		return nil, nil
	}
	var row types.Product
	if err := dbc.DB(r.db).Where(map[string]any{string(key): value}).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *productRepo) Update(dbc dbctx.Context, id uuid.UUID, p types.ProductPatch) (*types.Product, bool, error) {
	existing, err := r.GetByID(dbc, id)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, gorm.ErrRecordNotFound
	}
	base := existing.Snapshot()
	wrote, err := updateChanged(dbc.DB(r.db), &types.Product{}, map[string]any{"id": id}, base, p.Merge(base))
	if err != nil || !wrote {
		return existing, false, err
	}
	updated, err := r.GetByID(dbc, id)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

func (r *productRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	t := dbc.DB(r.db)
	for _, model := range []any{
		&types.ProductInputProcess{},
		&types.ProductProcess{},
		&types.ProductInput{},
		&types.ProductDiscountRange{},
	} {
		if err := t.Where("product_id = ?", id).Delete(model).Error; err != nil {
			return err
		}
	}
	return deleteWhere(t, &types.Product{}, map[string]any{"id": id})
}
