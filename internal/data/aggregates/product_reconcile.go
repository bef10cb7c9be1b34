package aggregates

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	types "github.com/yungbote/productflow-backend/internal/domain"
	"github.com/yungbote/productflow-backend/internal/domain/products"
	"github.com/yungbote/productflow-backend/internal/pkg/dbctx"
	"github.com/yungbote/productflow-backend/internal/pkg/rangecheck"
)

// Nested-row operations shared by Create and Update. product_id always comes
// from the call, never from the nested payload.

func (a *productAggregate) addProductInput(dbc dbctx.Context, productID uuid.UUID, in products.ProductInputCreate) (*types.ProductInput, error) {
	if err := a.requireInput(dbc, in.InputID); err != nil {
		return nil, err
	}
	return a.deps.ProductInputs.Create(dbc, &types.ProductInput{
		ProductID:   productID,
		InputID:     in.InputID,
		Equivalence: in.Equivalence,
	})
}

func (a *productAggregate) addProductProcess(dbc dbctx.Context, productID uuid.UUID, in products.ProductProcessCreate) (*types.ProductProcess, error) {
	processID, err := a.resolveProcess(dbc, in.Process.Ref)
	if err != nil {
		return nil, err
	}
	pp, err := a.deps.ProductProcesses.Create(dbc, &types.ProductProcess{
		ProductID: productID,
		ProcessID: processID,
		SortOrder: in.SortOrder,
	})
	if err != nil {
		return nil, err
	}
	for _, c := range in.ProductInputProcesses {
		if _, err := a.addConsumption(dbc, productID, pp.ID, c); err != nil {
			return nil, err
		}
	}
	return pp, nil
}

func (a *productAggregate) resolveProcess(dbc dbctx.Context, ref products.ProcessRef) (uuid.UUID, error) {
	switch ref := ref.(type) {
	case products.AssignProcess:
		if err := a.requireProcess(dbc, ref.ProcessID); err != nil {
			return uuid.Nil, err
		}
		return ref.ProcessID, nil
	case products.CreateProcess:
		name := strings.TrimSpace(ref.Process.Name)
		if name == "" {
			return uuid.Nil, InvalidRequestError("new process requires a name")
		}
		created, err := a.deps.Processes.Create(dbc, &types.Process{
			Name:        name,
			Description: ref.Process.Description,
		})
		if err != nil {
			return uuid.Nil, err
		}
		return created.ID, nil
	default:
		return uuid.Nil, InvalidRequestError("product process requires an assign or create_new process")
	}
}

// addConsumption resolves the product-input row by (product, input); it must
// already exist on this product.
func (a *productAggregate) addConsumption(dbc dbctx.Context, productID, productProcessID uuid.UUID, in products.ProductInputProcessCreate) (*types.ProductInputProcess, error) {
	pi, err := a.deps.ProductInputs.GetByProductAndInput(dbc, productID, in.InputID)
	if err != nil {
		return nil, err
	}
	if pi == nil {
		return nil, notFoundf("product input for input %s not found on product %s", in.InputID, productID)
	}
	return a.deps.ProductInputProcesses.Create(dbc, &types.ProductInputProcess{
		ProductID:        productID,
		ProductProcessID: productProcessID,
		ProductInputID:   pi.ID,
		Qty:              in.Qty,
	})
}

func (a *productAggregate) createDiscountRanges(dbc dbctx.Context, productID uuid.UUID, in []products.ProductDiscountRangeCreate) error {
	rows := lo.Map(in, func(r products.ProductDiscountRangeCreate, _ int) types.ProductDiscountRange {
		return newDiscountRange(productID, r)
	})
	if err := checkRanges(rows); err != nil {
		return err
	}
	for i := range rows {
		if _, err := a.deps.DiscountRanges.Create(dbc, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func newDiscountRange(productID uuid.UUID, r products.ProductDiscountRangeCreate) types.ProductDiscountRange {
	return types.ProductDiscountRange{
		ProductID: productID,
		MinQty:    r.MinQty,
		MaxQty:    r.MaxQty,
		UnitPrice: r.UnitPrice,
	}
}

// checkRanges validates a full per-product candidate set.
func checkRanges(candidate []types.ProductDiscountRange) error {
	switch c := rangecheck.Check(candidate, products.RangeMin, products.RangeMax); c {
	case rangecheck.None:
		return nil
	case rangecheck.InvalidRange:
		return InvalidRequestError(string(c))
	default:
		return ConflictError(string(c))
	}
}

func (a *productAggregate) requireInput(dbc dbctx.Context, id uuid.UUID) error {
	in, err := a.deps.Inputs.GetByID(dbc, id)
	if err != nil {
		return err
	}
	if in == nil {
		return notFoundf("input %s not found", id)
	}
	return nil
}

func (a *productAggregate) requireProcess(dbc dbctx.Context, id uuid.UUID) error {
	p, err := a.deps.Processes.GetByID(dbc, id)
	if err != nil {
		return err
	}
	if p == nil {
		return notFoundf("process %s not found", id)
	}
	return nil
}
