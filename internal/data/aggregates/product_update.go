package aggregates

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	types "github.com/yungbote/productflow-backend/internal/domain"
	domainagg "github.com/yungbote/productflow-backend/internal/domain/aggregates"
	"github.com/yungbote/productflow-backend/internal/domain/products"
	"github.com/yungbote/productflow-backend/internal/pkg/dbctx"
	"github.com/yungbote/productflow-backend/internal/pkg/diff"
	"github.com/yungbote/productflow-backend/internal/pkg/patch"
)

type photoIntent struct {
	pending string
	remove  bool
}

// updateRun carries one Update call's transaction and whether anything was written.
type updateRun struct {
	a         *productAggregate
	dbc       dbctx.Context
	productID uuid.UUID
	wrote     bool
}

func (r *updateRun) track(wrote bool, err error) error {
	if err != nil {
		return err
	}
	r.wrote = r.wrote || wrote
	return nil
}

// Update applies the patch and the three collection managers in one transaction.
// On failure only the newly moved photo is scheduled for cleanup, never the whole
// product directory, because that directory still holds the committed photo.
func (a *productAggregate) Update(ctx context.Context, productID uuid.UUID, in domainagg.UpdateProductInput) (*types.AssembledProduct, error) {
	const op = "Products.Product.Update"
	if !a.configured() {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "product aggregate dependencies not configured", nil)
	}
	if productID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeInvalidRequest, op, "missing product id", nil)
	}

	saga := a.newFileSaga()
	var out *types.AssembledProduct
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		existing, err := a.deps.Products.GetForUpdate(dbc, productID)
		if err != nil {
			return err
		}
		if existing == nil {
			return notFoundf("product %s not found", productID)
		}
		if in.ExpectedVersion != nil {
			if err := RequireVersionMatch(existing.Version, *in.ExpectedVersion); err != nil {
				return err
			}
		}

		scalar, photo, err := a.resolvePhoto(existing, in.Product)
		if err != nil {
			return err
		}
		if photo.pending != "" {
			saga.removeOnRollback(photo.pending)
		}

		run := &updateRun{a: a, dbc: dbc, productID: productID}
		_, wrote, err := a.deps.Products.Update(dbc, productID, scalar)
		if err := run.track(wrote, err); err != nil {
			return err
		}
		if !in.ProductDiscountRangesManager.IsEmpty() {
			if err := run.reconcileDiscountRanges(in.ProductDiscountRangesManager); err != nil {
				return err
			}
		}
		if !in.ProductInputsManager.IsEmpty() {
			if err := run.reconcileProductInputs(in.ProductInputsManager); err != nil {
				return err
			}
		}
		if !in.ProductProcessesManager.IsEmpty() {
			if err := run.reconcileProductProcesses(in.ProductProcessesManager); err != nil {
				return err
			}
		}

		switch {
		case photo.pending != "":
			final, err := saga.move(photo.pending, products.EntityKind, productID.String())
			if err != nil {
				return err
			}
			_, wrote, err := a.deps.Products.Update(dbc, productID, products.ProductPatch{Photo: patch.Value(final)})
			if err := run.track(wrote, err); err != nil {
				return err
			}
			if existing.Photo != nil && *existing.Photo != final {
				saga.deleteAfterCommit(*existing.Photo)
			}
		case photo.remove:
			_, wrote, err := a.deps.Products.Update(dbc, productID, products.ProductPatch{Photo: patch.Null[string]()})
			if err := run.track(wrote, err); err != nil {
				return err
			}
			saga.deleteAfterCommit(*existing.Photo)
		}

		if run.wrote {
			if err := a.deps.Base.CASGuard.BumpVersion(dbc, existing.TableName(), productID, existing.Version); err != nil {
				return err
			}
		}

		assembled, err := a.deps.Read.GetAssembled(dbc, productID)
		if err != nil {
			return err
		}
		if assembled == nil {
			return fmt.Errorf("product %s vanished before commit", productID)
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

// resolvePhoto strips the photo from the scalar patch. A temporary upload
// becomes a pending move; null or empty becomes a removal when a photo exists.
func (a *productAggregate) resolvePhoto(existing *types.Product, p products.ProductPatch) (products.ProductPatch, photoIntent, error) {
	var intent photoIntent
	if !p.Photo.Set {
		return p, intent, nil
	}
	null, value := p.Photo.Null, strings.TrimSpace(p.Photo.Value)
	p.Photo = patch.Field[string]{}

	switch {
	case null, value == "":
		intent.remove = existing.Photo != nil
	case a.deps.Files.IsTemporary(value):
		intent.pending = value
	case existing.Photo != nil && *existing.Photo == value:
	default:
		return p, intent, InvalidRequestError("photo must reference a temporary upload")
	}
	return p, intent, nil
}

func (r *updateRun) reconcileDiscountRanges(m products.ProductDiscountRangesManager) error {
	a, dbc, productID := r.a, r.dbc, r.productID
	current := func() ([]types.ProductDiscountRange, error) {
		rows, err := a.deps.DiscountRanges.ListByProduct(dbc, productID)
		if err != nil {
			return nil, err
		}
		return lo.Map(rows, func(row *types.ProductDiscountRange, _ int) types.ProductDiscountRange { return *row }), nil
	}

	before, err := current()
	if err != nil {
		return err
	}

	err = products.Reconcile(m, products.Reconciler[products.ProductDiscountRangeCreate, products.ProductDiscountRangeUpdate]{
		Add: func(c products.ProductDiscountRangeCreate) error {
			existing, err := current()
			if err != nil {
				return err
			}
			row := newDiscountRange(productID, c)
			if err := checkRanges(append(existing, row)); err != nil {
				return err
			}
			_, err = a.deps.DiscountRanges.Create(dbc, &row)
			return r.track(true, err)
		},
		Update: func(u products.ProductDiscountRangeUpdate) error {
			target, err := a.deps.DiscountRanges.GetByID(dbc, productID, u.ID)
			if err != nil {
				return err
			}
			if target == nil {
				return notFoundf("discount range %s not found", u.ID)
			}
			existing, err := current()
			if err != nil {
				return err
			}
			candidate := lo.Reject(existing, func(row types.ProductDiscountRange, _ int) bool { return row.ID == u.ID })
			candidate = append(candidate, u.ApplyTo(*target))
			if err := checkRanges(candidate); err != nil {
				return err
			}
			_, wrote, err := a.deps.DiscountRanges.Update(dbc, productID, u.ID, u.ProductDiscountRangePatch)
			return r.track(wrote, err)
		},
		Delete: func(id uuid.UUID) error {
			target, err := a.deps.DiscountRanges.GetByID(dbc, productID, id)
			if err != nil {
				return err
			}
			if target == nil {
				return notFoundf("discount range %s not found", id)
			}
			return r.track(true, a.deps.DiscountRanges.Delete(dbc, productID, id))
		},
	})
	if err != nil {
		return err
	}

	after, err := current()
	if err != nil {
		return err
	}
	changes := diff.ArrayEntities(rangeSnapshots(before), rangeSnapshots(after), diff.ArrayOptions{})
	a.deps.Base.Log.Debug("Discount ranges reconciled",
		"product_id", productID,
		"added", len(changes.Added),
		"modified", len(changes.Modified),
		"deleted", len(changes.Deleted),
	)
	return nil
}

func rangeSnapshots(rows []types.ProductDiscountRange) []diff.Snapshot {
	return lo.Map(rows, func(row types.ProductDiscountRange, _ int) diff.Snapshot {
		snap := row.Snapshot()
		snap["id"] = row.ID.String()
		return snap
	})
}

func (r *updateRun) reconcileProductInputs(m products.ProductInputsManager) error {
	a, dbc, productID := r.a, r.dbc, r.productID
	return products.Reconcile(m, products.Reconciler[products.ProductInputCreate, products.ProductInputUpdate]{
		Add: func(c products.ProductInputCreate) error {
			_, err := a.addProductInput(dbc, productID, c)
			return r.track(true, err)
		},
		Update: func(u products.ProductInputUpdate) error {
			target, err := a.deps.ProductInputs.GetByID(dbc, productID, u.ID)
			if err != nil {
				return err
			}
			if target == nil {
				return notFoundf("product input %s not found", u.ID)
			}
			if u.InputID != nil && *u.InputID != target.InputID {
				if err := a.requireInput(dbc, *u.InputID); err != nil {
					return err
				}
			}
			_, wrote, err := a.deps.ProductInputs.Update(dbc, productID, u.ID, u.ProductInputPatch)
			return r.track(wrote, err)
		},
		Delete: func(id uuid.UUID) error {
			target, err := a.deps.ProductInputs.GetByID(dbc, productID, id)
			if err != nil {
				return err
			}
			if target == nil {
				return notFoundf("product input %s not found", id)
			}
			return r.track(true, a.deps.ProductInputs.Delete(dbc, productID, id))
		},
	})
}

func (r *updateRun) reconcileProductProcesses(m products.ProductProcessesManager) error {
	a, dbc, productID := r.a, r.dbc, r.productID
	return products.Reconcile(m, products.Reconciler[products.ProductProcessCreate, products.ProductProcessUpdate]{
		Add: func(c products.ProductProcessCreate) error {
			_, err := a.addProductProcess(dbc, productID, c)
			return r.track(true, err)
		},
		Update: func(u products.ProductProcessUpdate) error {
			target, err := a.deps.ProductProcesses.GetByID(dbc, productID, u.ID)
			if err != nil {
				return err
			}
			if target == nil {
				return notFoundf("product process %s not found", u.ID)
			}
			if u.ProcessID != nil && *u.ProcessID != target.ProcessID {
				if err := a.requireProcess(dbc, *u.ProcessID); err != nil {
					return err
				}
			}
			_, wrote, err := a.deps.ProductProcesses.Update(dbc, productID, u.ID, u.ProductProcessPatch)
			if err := r.track(wrote, err); err != nil {
				return err
			}
			if u.ProductInputProcessesManager.IsEmpty() {
				return nil
			}
			return r.reconcileConsumptions(target.ID, u.ProductInputProcessesManager)
		},
		Delete: func(id uuid.UUID) error {
			target, err := a.deps.ProductProcesses.GetByID(dbc, productID, id)
			if err != nil {
				return err
			}
			if target == nil {
				return notFoundf("product process %s not found", id)
			}
			return r.track(true, a.deps.ProductProcesses.Delete(dbc, productID, id))
		},
	})
}

// reconcileConsumptions applies the nested manager of one process step.
func (r *updateRun) reconcileConsumptions(productProcessID uuid.UUID, m products.ProductInputProcessesManager) error {
	a, dbc, productID := r.a, r.dbc, r.productID
	owned := func(id uuid.UUID) error {
		row, err := a.deps.ProductInputProcesses.GetByID(dbc, productID, id)
		if err != nil {
			return err
		}
		if row == nil || row.ProductProcessID != productProcessID {
			return notFoundf("product input process %s not found on product process %s", id, productProcessID)
		}
		return nil
	}

	return products.Reconcile(m, products.Reconciler[products.ProductInputProcessCreate, products.ProductInputProcessUpdate]{
		Add: func(c products.ProductInputProcessCreate) error {
			_, err := a.addConsumption(dbc, productID, productProcessID, c)
			return r.track(true, err)
		},
		Update: func(u products.ProductInputProcessUpdate) error {
			if err := owned(u.ID); err != nil {
				return err
			}
			_, wrote, err := a.deps.ProductInputProcesses.Update(dbc, productID, u.ID, u.ProductInputProcessPatch)
			return r.track(wrote, err)
		},
		Delete: func(id uuid.UUID) error {
			if err := owned(id); err != nil {
				return err
			}
			return r.track(true, a.deps.ProductInputProcesses.Delete(dbc, productID, id))
		},
	})
}
