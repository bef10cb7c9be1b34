package products

import (
	"maps"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/productflow-backend/internal/pkg/diff"
	"github.com/yungbote/productflow-backend/internal/pkg/patch"
)

// ---- Product ----

type ProductCreate struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	SKU         *string         `json:"sku"`
	Barcode     *string         `json:"barcode"`
	CustomID    *string         `json:"custom_id"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	IsDraft     bool            `json:"is_draft"`
	IsActive    bool            `json:"is_active"`
	// Temporary upload path; moved into the product directory after the row exists.
	Photo *string `json:"photo"`
}

// Row builds the root row without the photo.
func (c ProductCreate) Row() *Product {
	return &Product{
		Name:        c.Name,
		Description: c.Description,
		SKU:         c.SKU,
		Barcode:     c.Barcode,
		CustomID:    c.CustomID,
		UnitCost:    c.UnitCost,
		UnitPrice:   c.UnitPrice,
		IsDraft:     c.IsDraft,
		IsActive:    c.IsActive,
	}
}

// ProductPatch lists the editable product fields. Nullable columns use
// patch.Field so an explicit null clears them.
type ProductPatch struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	SKU         patch.Field[string] `json:"sku"`
	Barcode     patch.Field[string] `json:"barcode"`
	CustomID    patch.Field[string] `json:"custom_id"`
	UnitCost    *decimal.Decimal    `json:"unit_cost,omitempty"`
	UnitPrice   *decimal.Decimal    `json:"unit_price,omitempty"`
	IsDraft     *bool               `json:"is_draft,omitempty"`
	IsActive    *bool               `json:"is_active,omitempty"`
	Photo       patch.Field[string] `json:"photo"`
}

func (p Product) Snapshot() diff.Snapshot {
	return diff.Snapshot{
		"name":        p.Name,
		"description": p.Description,
		"sku":         p.SKU,
		"barcode":     p.Barcode,
		"custom_id":   p.CustomID,
		"unit_cost":   p.UnitCost,
		"unit_price":  p.UnitPrice,
		"is_draft":    p.IsDraft,
		"is_active":   p.IsActive,
		"photo":       p.Photo,
	}
}

func (pp ProductPatch) Merge(base diff.Snapshot) diff.Snapshot {
	out := maps.Clone(base)
	setIf(out, "name", pp.Name)
	setIf(out, "description", pp.Description)
	setNullable(out, "sku", pp.SKU)
	setNullable(out, "barcode", pp.Barcode)
	setNullable(out, "custom_id", pp.CustomID)
	setIf(out, "unit_cost", pp.UnitCost)
	setIf(out, "unit_price", pp.UnitPrice)
	setIf(out, "is_draft", pp.IsDraft)
	setIf(out, "is_active", pp.IsActive)
	setNullable(out, "photo", pp.Photo)
	return out
}

// ---- Process ----

type ProcessPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p Process) Snapshot() diff.Snapshot {
	return diff.Snapshot{"name": p.Name, "description": p.Description}
}

func (pp ProcessPatch) Merge(base diff.Snapshot) diff.Snapshot {
	out := maps.Clone(base)
	setIf(out, "name", pp.Name)
	setIf(out, "description", pp.Description)
	return out
}

// ---- ProductInput ----

type ProductInputCreate struct {
	InputID     uuid.UUID       `json:"input_id"`
	Equivalence decimal.Decimal `json:"equivalence"`
}

type ProductInputPatch struct {
	InputID     *uuid.UUID       `json:"input_id,omitempty"`
	Equivalence *decimal.Decimal `json:"equivalence,omitempty"`
}

type ProductInputUpdate struct {
	ID uuid.UUID `json:"id"`
	ProductInputPatch
}

func (r ProductInput) Snapshot() diff.Snapshot {
	return diff.Snapshot{"input_id": r.InputID, "equivalence": r.Equivalence}
}

func (pp ProductInputPatch) Merge(base diff.Snapshot) diff.Snapshot {
	out := maps.Clone(base)
	setIf(out, "input_id", pp.InputID)
	setIf(out, "equivalence", pp.Equivalence)
	return out
}

// ---- ProductInputProcess ----

// ProductInputProcessCreate names the catalog input; the product-input row is
// resolved by (product, input).
type ProductInputProcessCreate struct {
	InputID uuid.UUID       `json:"input_id"`
	Qty     decimal.Decimal `json:"qty"`
}

type ProductInputProcessPatch struct {
	Qty *decimal.Decimal `json:"qty,omitempty"`
}

type ProductInputProcessUpdate struct {
	ID uuid.UUID `json:"id"`
	ProductInputProcessPatch
}

func (r ProductInputProcess) Snapshot() diff.Snapshot {
	return diff.Snapshot{"qty": r.Qty}
}

func (pp ProductInputProcessPatch) Merge(base diff.Snapshot) diff.Snapshot {
	out := maps.Clone(base)
	setIf(out, "qty", pp.Qty)
	return out
}

type ProductInputProcessesManager = CollectionManager[ProductInputProcessCreate, ProductInputProcessUpdate]

// ---- ProductProcess ----

type ProductProcessCreate struct {
	Process               ProcessPayload              `json:"process"`
	SortOrder             int                         `json:"sort_order"`
	ProductInputProcesses []ProductInputProcessCreate `json:"product_input_processes"`
}

type ProductProcessPatch struct {
	ProcessID *uuid.UUID `json:"process_id,omitempty"`
	SortOrder *int       `json:"sort_order,omitempty"`
}

type ProductProcessUpdate struct {
	ID uuid.UUID `json:"id"`
	ProductProcessPatch
	ProductInputProcessesManager ProductInputProcessesManager `json:"product_input_processes_manager"`
}

func (r ProductProcess) Snapshot() diff.Snapshot {
	return diff.Snapshot{"process_id": r.ProcessID, "sort_order": r.SortOrder}
}

func (pp ProductProcessPatch) Merge(base diff.Snapshot) diff.Snapshot {
	out := maps.Clone(base)
	setIf(out, "process_id", pp.ProcessID)
	setIf(out, "sort_order", pp.SortOrder)
	return out
}

// ---- ProductDiscountRange ----

type ProductDiscountRangeCreate struct {
	MinQty    int             `json:"min_qty"`
	MaxQty    int             `json:"max_qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type ProductDiscountRangePatch struct {
	MinQty    *int             `json:"min_qty,omitempty"`
	MaxQty    *int             `json:"max_qty,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type ProductDiscountRangeUpdate struct {
	ID uuid.UUID `json:"id"`
	ProductDiscountRangePatch
}

func (r ProductDiscountRange) Snapshot() diff.Snapshot {
	return diff.Snapshot{"min_qty": r.MinQty, "max_qty": r.MaxQty, "unit_price": r.UnitPrice}
}

func (pp ProductDiscountRangePatch) Merge(base diff.Snapshot) diff.Snapshot {
	out := maps.Clone(base)
	setIf(out, "min_qty", pp.MinQty)
	setIf(out, "max_qty", pp.MaxQty)
	setIf(out, "unit_price", pp.UnitPrice)
	return out
}

// ApplyTo returns r with the patch applied, for building candidate sets.
func (pp ProductDiscountRangePatch) ApplyTo(r ProductDiscountRange) ProductDiscountRange {
	if pp.MinQty != nil {
		r.MinQty = *pp.MinQty
	}
	if pp.MaxQty != nil {
		r.MaxQty = *pp.MaxQty
	}
	if pp.UnitPrice != nil {
		r.UnitPrice = *pp.UnitPrice
	}
	return r
}

type (
	ProductInputsManager         = CollectionManager[ProductInputCreate, ProductInputUpdate]
	ProductProcessesManager      = CollectionManager[ProductProcessCreate, ProductProcessUpdate]
	ProductDiscountRangesManager = CollectionManager[ProductDiscountRangeCreate, ProductDiscountRangeUpdate]
)

func setIf[T any](out diff.Snapshot, key string, v *T) {
	if v != nil {
		out[key] = *v
	}
}

func setNullable[T any](out diff.Snapshot, key string, f patch.Field[T]) {
	if f.Set {
		out[key] = f.Ptr()
	}
}
