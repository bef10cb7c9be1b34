package products

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	types "github.com/yungbote/productflow-backend/internal/domain"
	"github.com/yungbote/productflow-backend/internal/pkg/dbctx"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

// ProductReadRepo assembles the product read model. Pass the write
// transaction to observe uncommitted rows.
type ProductReadRepo interface {
	GetAssembled(dbc dbctx.Context, productID uuid.UUID) (*types.AssembledProduct, error)
}

type productReadRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductReadRepo(db *gorm.DB, baseLog *logger.Logger) ProductReadRepo {
	return &productReadRepo{db: db, log: baseLog.With("repo", "ProductReadRepo")}
}

func (r *productReadRepo) GetAssembled(dbc dbctx.Context, productID uuid.UUID) (*types.AssembledProduct, error) {
	if productID == uuid.Nil {
		return nil, nil
	}
	t := dbc.DB(r.db)

	var root types.Product
	if err := t.Where("id = ?", productID).Limit(1).Find(&root).Error; err != nil {
		return nil, err
	}
	if root.ID == uuid.Nil {
		return nil, nil
	}

	var (
		productInputs  []types.ProductInput
		productProcs   []types.ProductProcess
		consumptions   []types.ProductInputProcess
		discountRanges []types.ProductDiscountRange
	)
	if err := t.Where("product_id = ?", productID).Order("created_at ASC, id ASC").Find(&productInputs).Error; err != nil {
		return nil, err
	}
	if err := t.Where("product_id = ?", productID).Order("sort_order ASC, created_at ASC, id ASC").Find(&productProcs).Error; err != nil {
		return nil, err
	}
	if err := t.Where("product_id = ?", productID).Order("created_at ASC, id ASC").Find(&consumptions).Error; err != nil {
		return nil, err
	}
	if err := t.Where("product_id = ?", productID).Order("min_qty ASC, id ASC").Find(&discountRanges).Error; err != nil {
		return nil, err
	}

	var inputs []types.Input
	inputIDs := lo.Uniq(lo.Map(productInputs, func(pi types.ProductInput, _ int) uuid.UUID { return pi.InputID }))
	if len(inputIDs) > 0 {
		if err := t.Where("id IN ?", inputIDs).Find(&inputs).Error; err != nil {
			return nil, err
		}
	}
	var processes []types.Process
	processIDs := lo.Uniq(lo.Map(productProcs, func(pp types.ProductProcess, _ int) uuid.UUID { return pp.ProcessID }))
	if len(processIDs) > 0 {
		if err := t.Where("id IN ?", processIDs).Find(&processes).Error; err != nil {
			return nil, err
		}
	}

	inputByID := lo.KeyBy(inputs, func(in types.Input) uuid.UUID { return in.ID })
	processByID := lo.KeyBy(processes, func(p types.Process) uuid.UUID { return p.ID })
	consumptionsByStep := lo.GroupBy(consumptions, func(c types.ProductInputProcess) uuid.UUID { return c.ProductProcessID })

	out := &types.AssembledProduct{
		Product: root,
		ProductInputs: lo.Map(productInputs, func(pi types.ProductInput, _ int) types.AssembledProductInput {
			return types.AssembledProductInput{ProductInput: pi, Input: inputByID[pi.InputID]}
		}),
		ProductProcesses: lo.Map(productProcs, func(pp types.ProductProcess, _ int) types.AssembledProductProcess {
			rows := consumptionsByStep[pp.ID]
			if rows == nil {
				rows = []types.ProductInputProcess{}
			}
			return types.AssembledProductProcess{
				ProductProcess:        pp,
				Process:               processByID[pp.ProcessID],
				ProductInputProcesses: rows,
			}
		}),
		ProductDiscountRanges: discountRanges,
	}
	if out.ProductDiscountRanges == nil {
		out.ProductDiscountRanges = []types.ProductDiscountRange{}
	}
	return out, nil
}
