package aggregates

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/productflow-backend/internal/data/repos"
	types "github.com/yungbote/productflow-backend/internal/domain"
	domainagg "github.com/yungbote/productflow-backend/internal/domain/aggregates"
	"github.com/yungbote/productflow-backend/internal/domain/products"
	"github.com/yungbote/productflow-backend/internal/jobs/cleanup"
	"github.com/yungbote/productflow-backend/internal/pkg/dbctx"
	"github.com/yungbote/productflow-backend/internal/pkg/patch"
	"github.com/yungbote/productflow-backend/internal/platform/filestore"
)

type ProductAggregateDeps struct {
	Base BaseDeps

	Products              repos.ProductRepo
	Inputs                repos.InputRepo
	Processes             repos.ProcessRepo
	ProductInputs         repos.ProductInputRepo
	ProductProcesses      repos.ProductProcessRepo
	ProductInputProcesses repos.ProductInputProcessRepo
	DiscountRanges        repos.ProductDiscountRangeRepo
	Read                  repos.ProductReadRepo

	Files   filestore.Store
	Cleanup cleanup.Scheduler
}

type productAggregate struct {
	deps ProductAggregateDeps
}

func NewProductAggregate(deps ProductAggregateDeps) domainagg.ProductAggregate {
	deps.Base = deps.Base.withDefaults()
	return &productAggregate{deps: deps}
}

func (a *productAggregate) Contract() domainagg.Contract {
	return domainagg.ProductAggregateContract
}

func (a *productAggregate) configured() bool {
	d := a.deps
	return d.Products != nil && d.Inputs != nil && d.Processes != nil &&
		d.ProductInputs != nil && d.ProductProcesses != nil && d.ProductInputProcesses != nil &&
		d.DiscountRanges != nil && d.Read != nil && d.Files != nil && d.Cleanup != nil
}

func (a *productAggregate) newFileSaga() *fileSaga {
	return newFileSaga(a.deps.Base.Log.With("aggregate", "Products.Product"), a.deps.Files, a.deps.Cleanup)
}

func (a *productAggregate) Create(ctx context.Context, in domainagg.CreateProductInput) (*types.AssembledProduct, error) {
	const op = "Products.Product.Create"
	if !a.configured() {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "product aggregate dependencies not configured", nil)
	}

	saga := a.newFileSaga()
	photo := ""
	if in.Product.Photo != nil {
		photo = strings.TrimSpace(*in.Product.Photo)
	}
	if photo != "" {
		if !a.deps.Files.IsTemporary(photo) {
			return nil, domainagg.NewError(domainagg.CodeInvalidRequest, op, "photo must reference a temporary upload", nil)
		}
		saga.removeOnRollback(photo)
	}

	var out *types.AssembledProduct
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		root, err := a.deps.Products.Create(dbc, in.Product.Row())
		if err != nil {
			return err
		}
		// Anything moved under the new product's directory is an orphan if this call fails.
		saga.cleanupOnRollback(a.deps.Files.EntityDirectory(products.EntityKind, root.ID.String()))

		for _, pi := range in.ProductInputs {
			if _, err := a.addProductInput(dbc, root.ID, pi); err != nil {
				return err
			}
		}
		for _, pp := range in.ProductProcesses {
			if _, err := a.addProductProcess(dbc, root.ID, pp); err != nil {
				return err
			}
		}
		if err := a.createDiscountRanges(dbc, root.ID, in.ProductDiscountRanges); err != nil {
			return err
		}

		if photo != "" {
			final, err := saga.move(photo, products.EntityKind, root.ID.String())
			if err != nil {
				return err
			}
			if _, _, err := a.deps.Products.Update(dbc, root.ID, products.ProductPatch{Photo: patch.Value(final)}); err != nil {
				return err
			}
		}

		assembled, err := a.deps.Read.GetAssembled(dbc, root.ID)
		if err != nil {
			return err
		}
		if assembled == nil {
			return fmt.Errorf("product %s vanished before commit", root.ID)
		}
		out = assembled
		return nil
	})
	saga.settle(err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func notFoundf(format string, args ...any) error {
	return NotFoundError(fmt.Sprintf(format, args...))
}
