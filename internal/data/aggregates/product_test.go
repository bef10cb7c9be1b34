package aggregates_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/productflow-backend/internal/data/aggregates"
	aggtestutil "github.com/yungbote/productflow-backend/internal/data/aggregates/testutil"
	"github.com/yungbote/productflow-backend/internal/data/repos"
	"github.com/yungbote/productflow-backend/internal/data/repos/testutil"
	types "github.com/yungbote/productflow-backend/internal/domain"
	domainagg "github.com/yungbote/productflow-backend/internal/domain/aggregates"
	"github.com/yungbote/productflow-backend/internal/domain/products"
	"github.com/yungbote/productflow-backend/internal/pkg/patch"
	"github.com/yungbote/productflow-backend/internal/pkg/pointers"
	"github.com/yungbote/productflow-backend/internal/platform/filestore"
)

type harness struct {
	db        *gorm.DB
	files     filestore.Store
	scheduler *aggtestutil.RecordingScheduler
	hooks     *aggtestutil.HooksRecorder
	runner    *aggtestutil.InjectedTxRunner
	agg       domainagg.ProductAggregate
}

func newHarness(t *testing.T, wrap func(filestore.Store) filestore.Store) *harness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	files, err := filestore.New(log, filestore.Config{Root: t.TempDir(), TempDir: "tmp"})
	require.NoError(t, err)
	h := &harness{
		db:        db,
		files:     files,
		scheduler: &aggtestutil.RecordingScheduler{Remover: files},
		hooks:     &aggtestutil.HooksRecorder{},
		runner:    &aggtestutil.InjectedTxRunner{Inner: aggregates.NewGormTxRunner(db)},
	}
	aggFiles := files
	if wrap != nil {
		aggFiles = wrap(files)
	}
	h.agg = aggregates.NewProductAggregate(aggregates.ProductAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:       db,
			Log:      log,
			Runner:   h.runner,
			Hooks:    h.hooks,
			CASGuard: aggregates.NewCASGuard(db),
		},
		Products:              repos.NewProductRepo(db, log),
		Inputs:                repos.NewInputRepo(db, log),
		Processes:             repos.NewProcessRepo(db, log),
		ProductInputs:         repos.NewProductInputRepo(db, log),
		ProductProcesses:      repos.NewProductProcessRepo(db, log),
		ProductInputProcesses: repos.NewProductInputProcessRepo(db, log),
		DiscountRanges:        repos.NewProductDiscountRangeRepo(db, log),
		Read:                  repos.NewProductReadRepo(db, log),
		Files:                 aggFiles,
		Cleanup:               h.scheduler,
	})
	return h
}

func (h *harness) upload(t *testing.T, name, body string) string {
	t.Helper()
	rel, err := h.files.SaveTemporary(name, bytes.NewBufferString(body))
	require.NoError(t, err)
	return rel
}

func (h *harness) exists(t *testing.T, rel string) bool {
	t.Helper()
	abs, err := h.files.ResolvePath(rel)
	require.NoError(t, err)
	_, err = os.Stat(abs)
	return err == nil
}

func (h *harness) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, h.db.Model(model).Count(&n).Error)
	return n
}

func productCreate(name string) products.ProductCreate {
	return products.ProductCreate{
		Name:      name,
		UnitCost:  decimal.RequireFromString("2.50"),
		UnitPrice: decimal.RequireFromString("4.00"),
		IsActive:  true,
	}
}

func dr(min, max int, price string) products.ProductDiscountRangeCreate {
	return products.ProductDiscountRangeCreate{MinQty: min, MaxQty: max, UnitPrice: decimal.RequireFromString(price)}
}

func requireCode(t *testing.T, err error, code domainagg.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	require.Equalf(t, code, domainagg.CodeOf(err), "unexpected error: %v", err)
}

func TestProductCreateAssemblesFullTree(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	inA := testutil.SeedInput(t, ctx, h.db)
	inB := testutil.SeedInput(t, ctx, h.db)
	photo := h.upload(t, "front.png", "png-bytes")

	got, err := h.agg.Create(ctx, domainagg.CreateProductInput{
		Product: func() products.ProductCreate {
			c := productCreate("Widget")
			c.Photo = pointers.String(photo)
			return c
		}(),
		ProductInputs: []products.ProductInputCreate{
			{InputID: inA.ID, Equivalence: decimal.NewFromInt(1)},
			{InputID: inB.ID, Equivalence: decimal.RequireFromString("0.5")},
		},
		ProductProcesses: []products.ProductProcessCreate{{
			Process: products.ProcessPayload{Ref: products.CreateProcess{
				Process: products.ProcessCreate{Name: "Cutting"},
			}},
			SortOrder: 1,
			ProductInputProcesses: []products.ProductInputProcessCreate{
				{InputID: inA.ID, Qty: decimal.NewFromInt(3)},
			},
		}},
		ProductDiscountRanges: []products.ProductDiscountRangeCreate{dr(1, 10, "3.50")},
	})
	require.NoError(t, err)

	require.Equal(t, 1, got.Version)
	require.Len(t, got.ProductInputs, 2)
	require.Len(t, got.ProductProcesses, 1)
	require.Equal(t, "Cutting", got.ProductProcesses[0].Process.Name)
	require.Len(t, got.ProductProcesses[0].ProductInputProcesses, 1)
	require.Len(t, got.ProductDiscountRanges, 1)

	require.NotNil(t, got.Photo)
	require.True(t, strings.HasPrefix(*got.Photo, "products/"+got.ID.String()+"/"))
	require.True(t, h.exists(t, *got.Photo))
	require.False(t, h.exists(t, photo))

	require.EqualValues(t, 1, h.count(t, &types.Product{}))
	require.EqualValues(t, 2, h.count(t, &types.ProductInput{}))
	require.EqualValues(t, 1, h.count(t, &types.Process{}))
	require.EqualValues(t, 1, h.count(t, &types.ProductProcess{}))
	require.EqualValues(t, 1, h.count(t, &types.ProductInputProcess{}))
	require.EqualValues(t, 1, h.count(t, &types.ProductDiscountRange{}))
	require.Empty(t, h.scheduler.Scheduled())
	require.Equal(t, "success", h.hooks.LastStatus())
}

func TestProductCreateRejectsOverlappingRanges(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	photo := h.upload(t, "p.png", "x")

	c := productCreate("Overlap")
	c.Photo = pointers.String(photo)
	_, err := h.agg.Create(ctx, domainagg.CreateProductInput{
		Product:               c,
		ProductDiscountRanges: []products.ProductDiscountRangeCreate{dr(1, 10, "3"), dr(5, 20, "2")},
	})
	requireCode(t, err, domainagg.CodeConflict)
	require.Equal(t, "overlap", domainagg.MessageOf(err))

	require.EqualValues(t, 0, h.count(t, &types.Product{}))
	require.EqualValues(t, 0, h.count(t, &types.ProductDiscountRange{}))
	require.False(t, h.exists(t, photo))
	require.Len(t, h.hooks.Conflicts, 1)
}

func TestProductCreateRangeErrors(t *testing.T) {
	cases := []struct {
		name   string
		ranges []products.ProductDiscountRangeCreate
		code   domainagg.ErrorCode
		msg    string
	}{
		{"inverted", []products.ProductDiscountRangeCreate{dr(10, 1, "1")}, domainagg.CodeInvalidRequest, "invalid_range"},
		{"duplicate", []products.ProductDiscountRangeCreate{dr(1, 5, "1"), dr(1, 5, "2")}, domainagg.CodeConflict, "duplicate"},
		{"touching", []products.ProductDiscountRangeCreate{dr(1, 5, "1"), dr(5, 9, "2")}, domainagg.CodeConflict, "overlap"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, nil)
			_, err := h.agg.Create(context.Background(), domainagg.CreateProductInput{
				Product:               productCreate("Ranges " + tc.name),
				ProductDiscountRanges: tc.ranges,
			})
			requireCode(t, err, tc.code)
			require.Equal(t, tc.msg, domainagg.MessageOf(err))
			require.EqualValues(t, 0, h.count(t, &types.Product{}))
		})
	}
}

func TestProductCreateUnknownReferencesRollBack(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	in := testutil.SeedInput(t, ctx, h.db)

	_, err := h.agg.Create(ctx, domainagg.CreateProductInput{
		Product:       productCreate("Missing input"),
		ProductInputs: []products.ProductInputCreate{{InputID: uuid.New(), Equivalence: decimal.NewFromInt(1)}},
	})
	requireCode(t, err, domainagg.CodeNotFound)

	// Consumption must reference an input already attached to the product.
	_, err = h.agg.Create(ctx, domainagg.CreateProductInput{
		Product: productCreate("Missing product input"),
		ProductProcesses: []products.ProductProcessCreate{{
			Process: products.ProcessPayload{Ref: products.CreateProcess{Process: products.ProcessCreate{Name: "Paint"}}},
			ProductInputProcesses: []products.ProductInputProcessCreate{
				{InputID: in.ID, Qty: decimal.NewFromInt(1)},
			},
		}},
	})
	requireCode(t, err, domainagg.CodeNotFound)

	require.EqualValues(t, 0, h.count(t, &types.Product{}))
	require.EqualValues(t, 0, h.count(t, &types.Process{}))
}

func TestProductCreateDuplicateNameIsConflict(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	_, err := h.agg.Create(ctx, domainagg.CreateProductInput{Product: productCreate("Same")})
	require.NoError(t, err)
	_, err = h.agg.Create(ctx, domainagg.CreateProductInput{Product: productCreate("Same")})
	requireCode(t, err, domainagg.CodeConflict)
}

func TestProductCreateRejectsNonTemporaryPhoto(t *testing.T) {
	h := newHarness(t, nil)
	c := productCreate("Bad photo")
	c.Photo = pointers.String("products/elsewhere/a.png")

	_, err := h.agg.Create(context.Background(), domainagg.CreateProductInput{Product: c})
	requireCode(t, err, domainagg.CodeInvalidRequest)
	require.EqualValues(t, 0, h.count(t, &types.Product{}))
}

func TestProductCreateMoveFailureCleansUp(t *testing.T) {
	h := newHarness(t, func(s filestore.Store) filestore.Store { return aggtestutil.FailingMoveStore{Store: s} })
	photo := h.upload(t, "p.png", "x")

	c := productCreate("Move fails")
	c.Photo = pointers.String(photo)
	_, err := h.agg.Create(context.Background(), domainagg.CreateProductInput{Product: c})
	requireCode(t, err, domainagg.CodeInternal)

	require.EqualValues(t, 0, h.count(t, &types.Product{}))
	require.False(t, h.exists(t, photo))
	scheduled := h.scheduler.Scheduled()
	require.Len(t, scheduled, 1)
	require.True(t, strings.HasPrefix(scheduled[0], "products/"))
}

func TestProductCreateCommitFailureRemovesMovedPhoto(t *testing.T) {
	h := newHarness(t, nil)
	h.runner.FailCommit = errors.New("commit refused")
	photo := h.upload(t, "p.png", "x")

	c := productCreate("Commit fails")
	c.Photo = pointers.String(photo)
	_, err := h.agg.Create(context.Background(), domainagg.CreateProductInput{Product: c})
	requireCode(t, err, domainagg.CodeInternal)

	require.EqualValues(t, 0, h.count(t, &types.Product{}))
	require.False(t, h.exists(t, photo))
	require.Equal(t, 1, h.runner.RollbackCalls)

	// The product directory and the moved file are both handed to deferred
	// cleanup, which the recording scheduler performs inline.
	scheduled := h.scheduler.Scheduled()
	require.Len(t, scheduled, 2)
	for _, rel := range scheduled {
		require.False(t, h.exists(t, rel))
	}
}

func seedProduct(t *testing.T, h *harness, in domainagg.CreateProductInput) *types.AssembledProduct {
	t.Helper()
	got, err := h.agg.Create(context.Background(), in)
	require.NoError(t, err)
	return got
}

func TestProductUpdateNoopWritesNothing(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	seeded := seedProduct(t, h, domainagg.CreateProductInput{
		Product:               productCreate("Stable"),
		ProductDiscountRanges: []products.ProductDiscountRangeCreate{dr(1, 10, "3")},
	})
	rangeID := seeded.ProductDiscountRanges[0].ID

	counter := testutil.CountWrites(t, h.db)
	got, err := h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		Product: products.ProductPatch{
			Name:      pointers.String("Stable"),
			UnitPrice: pointers.Decimal("4.0000"),
		},
		ProductDiscountRangesManager: products.ProductDiscountRangesManager{
			Updated: []products.ProductDiscountRangeUpdate{{
				ID:                        rangeID,
				ProductDiscountRangePatch: products.ProductDiscountRangePatch{MinQty: pointers.Int(1), MaxQty: pointers.Int(10)},
			}},
		},
	})
	require.NoError(t, err)
	require.Zero(t, counter.Total())
	require.Equal(t, seeded.Version, got.Version)
}

func TestProductUpdateBumpsVersionOnce(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	in := testutil.SeedInput(t, ctx, h.db)
	seeded := seedProduct(t, h, domainagg.CreateProductInput{Product: productCreate("Versioned")})

	got, err := h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		Product:         products.ProductPatch{Description: pointers.String("new"), SKU: patch.Value("SKU-9")},
		ExpectedVersion: pointers.Int(seeded.Version),
		ProductInputsManager: products.ProductInputsManager{
			Added: []products.ProductInputCreate{{InputID: in.ID, Equivalence: decimal.NewFromInt(2)}},
		},
		ProductDiscountRangesManager: products.ProductDiscountRangesManager{
			Added: []products.ProductDiscountRangeCreate{dr(1, 4, "3"), dr(5, 9, "2")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, seeded.Version+1, got.Version)
	require.Equal(t, "new", got.Description)
	require.Equal(t, "SKU-9", pointers.Deref(got.SKU))
	require.Len(t, got.ProductInputs, 1)
	require.Len(t, got.ProductDiscountRanges, 2)

	_, err = h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		Product:         products.ProductPatch{Description: pointers.String("stale")},
		ExpectedVersion: pointers.Int(seeded.Version),
	})
	requireCode(t, err, domainagg.CodeConflict)
}

func TestProductUpdateMissingProduct(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.agg.Update(context.Background(), uuid.New(), domainagg.UpdateProductInput{})
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestProductUpdateRangeConflictsAgainstStoredSet(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	seeded := seedProduct(t, h, domainagg.CreateProductInput{
		Product:               productCreate("Ranged"),
		ProductDiscountRanges: []products.ProductDiscountRangeCreate{dr(1, 10, "3"), dr(11, 20, "2")},
	})
	first := seeded.ProductDiscountRanges[0]

	_, err := h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		Product: products.ProductPatch{Description: pointers.String("should roll back")},
		ProductDiscountRangesManager: products.ProductDiscountRangesManager{
			Added: []products.ProductDiscountRangeCreate{dr(8, 12, "1")},
		},
	})
	requireCode(t, err, domainagg.CodeConflict)
	require.Equal(t, "overlap", domainagg.MessageOf(err))

	// Widening the first range over the second is an overlap as well.
	_, err = h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		ProductDiscountRangesManager: products.ProductDiscountRangesManager{
			Updated: []products.ProductDiscountRangeUpdate{{
				ID:                        first.ID,
				ProductDiscountRangePatch: products.ProductDiscountRangePatch{MaxQty: pointers.Int(15)},
			}},
		},
	})
	requireCode(t, err, domainagg.CodeConflict)

	// Deletions apply after updates, so the widened range still collides.
	_, err = h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		ProductDiscountRangesManager: products.ProductDiscountRangesManager{
			Updated: []products.ProductDiscountRangeUpdate{{
				ID:                        first.ID,
				ProductDiscountRangePatch: products.ProductDiscountRangePatch{MaxQty: pointers.Int(15)},
			}},
			Deleted: []products.EntityRef{{ID: seeded.ProductDiscountRanges[1].ID}},
		},
	})
	requireCode(t, err, domainagg.CodeConflict)

	var stored types.Product
	require.NoError(t, h.db.First(&stored, "id = ?", seeded.ID).Error)
	require.Empty(t, stored.Description)
	require.Equal(t, seeded.Version, stored.Version)
}

func TestProductUpdateReconcilesNestedConsumption(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	inA := testutil.SeedInput(t, ctx, h.db)
	inB := testutil.SeedInput(t, ctx, h.db)
	proc := testutil.SeedProcess(t, ctx, h.db)

	seeded := seedProduct(t, h, domainagg.CreateProductInput{
		Product: productCreate("Nested"),
		ProductInputs: []products.ProductInputCreate{
			{InputID: inA.ID, Equivalence: decimal.NewFromInt(1)},
			{InputID: inB.ID, Equivalence: decimal.NewFromInt(1)},
		},
		ProductProcesses: []products.ProductProcessCreate{{
			Process:   products.ProcessPayload{Ref: products.AssignProcess{ProcessID: proc.ID}},
			SortOrder: 1,
			ProductInputProcesses: []products.ProductInputProcessCreate{
				{InputID: inA.ID, Qty: decimal.NewFromInt(1)},
			},
		}},
	})
	step := seeded.ProductProcesses[0]
	consumption := step.ProductInputProcesses[0]

	got, err := h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		ProductProcessesManager: products.ProductProcessesManager{
			Updated: []products.ProductProcessUpdate{{
				ID:                  step.ID,
				ProductProcessPatch: products.ProductProcessPatch{SortOrder: pointers.Int(2)},
				ProductInputProcessesManager: products.ProductInputProcessesManager{
					Added: []products.ProductInputProcessCreate{{InputID: inB.ID, Qty: decimal.NewFromInt(4)}},
					Updated: []products.ProductInputProcessUpdate{{
						ID:                       consumption.ID,
						ProductInputProcessPatch: products.ProductInputProcessPatch{Qty: pointers.Decimal("7")},
					}},
				},
			}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, seeded.Version+1, got.Version)
	require.Len(t, got.ProductProcesses, 1)
	require.Equal(t, 2, got.ProductProcesses[0].SortOrder)
	require.Len(t, got.ProductProcesses[0].ProductInputProcesses, 2)
	for _, c := range got.ProductProcesses[0].ProductInputProcesses {
		if c.ID == consumption.ID {
			require.True(t, c.Qty.Equal(decimal.NewFromInt(7)))
		}
	}

	// Deleting a product input cascades to its consumption rows.
	got, err = h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		ProductInputsManager: products.ProductInputsManager{
			Deleted: []products.EntityRef{{ID: consumption.ProductInputID}},
		},
	})
	require.NoError(t, err)
	require.Len(t, got.ProductInputs, 1)
	require.Len(t, got.ProductProcesses[0].ProductInputProcesses, 1)

	_, err = h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		ProductProcessesManager: products.ProductProcessesManager{
			Deleted: []products.EntityRef{{ID: uuid.New()}},
		},
	})
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestProductUpdateScopesNestedRowsToProduct(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	other := seedProduct(t, h, domainagg.CreateProductInput{
		Product:               productCreate("Other"),
		ProductDiscountRanges: []products.ProductDiscountRangeCreate{dr(1, 5, "1")},
	})
	mine := seedProduct(t, h, domainagg.CreateProductInput{Product: productCreate("Mine")})

	_, err := h.agg.Update(ctx, mine.ID, domainagg.UpdateProductInput{
		ProductDiscountRangesManager: products.ProductDiscountRangesManager{
			Deleted: []products.EntityRef{{ID: other.ProductDiscountRanges[0].ID}},
		},
	})
	requireCode(t, err, domainagg.CodeNotFound)
	require.EqualValues(t, 1, h.count(t, &types.ProductDiscountRange{}))
}

func TestProductUpdateReplacesPhoto(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	first := h.upload(t, "a.png", "one")
	c := productCreate("Photo")
	c.Photo = pointers.String(first)
	seeded := seedProduct(t, h, domainagg.CreateProductInput{Product: c})
	old := pointers.Deref(seeded.Photo)

	second := h.upload(t, "a.png", "two")
	got, err := h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		Product: products.ProductPatch{Photo: patch.Value(second)},
	})
	require.NoError(t, err)
	final := pointers.Deref(got.Photo)
	require.NotEqual(t, old, final)
	require.True(t, strings.HasPrefix(final, "products/"+seeded.ID.String()+"/"))
	require.True(t, h.exists(t, final))
	require.False(t, h.exists(t, old))
	require.False(t, h.exists(t, second))
	require.Equal(t, seeded.Version+1, got.Version)

	// Resubmitting the stored path is a no-op.
	got, err = h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		Product: products.ProductPatch{Photo: patch.Value(final)},
	})
	require.NoError(t, err)
	require.Equal(t, final, pointers.Deref(got.Photo))
	require.Equal(t, seeded.Version+1, got.Version)

	got, err = h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		Product: products.ProductPatch{Photo: patch.Null[string]()},
	})
	require.NoError(t, err)
	require.Nil(t, got.Photo)
	require.False(t, h.exists(t, final))
}

func TestProductUpdateFailureKeepsStoredPhoto(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	first := h.upload(t, "a.png", "one")
	c := productCreate("Keeps photo")
	c.Photo = pointers.String(first)
	seeded := seedProduct(t, h, domainagg.CreateProductInput{Product: c})
	old := pointers.Deref(seeded.Photo)

	h.runner.FailCommit = errors.New("commit refused")
	pending := h.upload(t, "b.png", "two")
	_, err := h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		Product: products.ProductPatch{Name: pointers.String("Renamed"), Photo: patch.Value(pending)},
	})
	requireCode(t, err, domainagg.CodeInternal)

	var stored types.Product
	require.NoError(t, h.db.First(&stored, "id = ?", seeded.ID).Error)
	require.Equal(t, "Keeps photo", stored.Name)
	require.Equal(t, old, pointers.Deref(stored.Photo))
	require.True(t, h.exists(t, old))
	require.False(t, h.exists(t, pending))
	require.Len(t, h.scheduler.Scheduled(), 1)
	require.NotEqual(t, "products/"+seeded.ID.String(), h.scheduler.Scheduled()[0])
	require.Equal(t, "products/"+seeded.ID.String()+"/b.png", h.scheduler.Scheduled()[0])
}

func TestProductUpdateMoveFailureRollsBack(t *testing.T) {
	h := newHarness(t, func(s filestore.Store) filestore.Store { return aggtestutil.FailingMoveStore{Store: s} })
	ctx := context.Background()
	seeded := seedProduct(t, h, domainagg.CreateProductInput{Product: productCreate("Move update")})

	pending := h.upload(t, "b.png", "x")
	_, err := h.agg.Update(ctx, seeded.ID, domainagg.UpdateProductInput{
		Product: products.ProductPatch{Description: pointers.String("changed"), Photo: patch.Value(pending)},
	})
	requireCode(t, err, domainagg.CodeInternal)

	var stored types.Product
	require.NoError(t, h.db.First(&stored, "id = ?", seeded.ID).Error)
	require.Empty(t, stored.Description)
	require.Nil(t, stored.Photo)
	require.Equal(t, seeded.Version, stored.Version)
	require.False(t, h.exists(t, pending))
}

func TestProductUpdateRejectsForeignPhotoPath(t *testing.T) {
	h := newHarness(t, nil)
	seeded := seedProduct(t, h, domainagg.CreateProductInput{Product: productCreate("Foreign")})

	_, err := h.agg.Update(context.Background(), seeded.ID, domainagg.UpdateProductInput{
		Product: products.ProductPatch{Photo: patch.Value("products/other/x.png")},
	})
	requireCode(t, err, domainagg.CodeInvalidRequest)
}
