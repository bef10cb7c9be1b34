package aggregates

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/productflow-backend/internal/domain/products"
)

var ProductAggregateContract = Contract{
	Name:             "Products.ProductAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns atomic product, junction, discount-range and photo consistency for create/update.",
}

// ProductAggregate owns product tree invariants.
//
// Write method failures return *aggregates.Error with codes:
// CodeNotFound, CodeConflict, CodeInvalidRequest, CodeInternal.
type ProductAggregate interface {
	Aggregate

	// Create persists a product with all nested rows in one transaction.
	Create(ctx context.Context, in CreateProductInput) (*products.AssembledProduct, error)

	// Update applies scalar changes and reconciles each nested collection in one transaction.
	Update(ctx context.Context, productID uuid.UUID, in UpdateProductInput) (*products.AssembledProduct, error)
}

type CreateProductInput struct {
	Product               products.ProductCreate                `json:"product"`
	ProductInputs         []products.ProductInputCreate         `json:"product_inputs"`
	ProductProcesses      []products.ProductProcessCreate       `json:"product_processes"`
	ProductDiscountRanges []products.ProductDiscountRangeCreate `json:"product_discount_ranges"`
}

type UpdateProductInput struct {
	Product products.ProductPatch `json:"product"`
	// When set, the call fails with CodeConflict unless it matches the stored version.
	ExpectedVersion *int `json:"expected_version,omitempty"`

	ProductInputsManager         products.ProductInputsManager         `json:"product_inputs_manager"`
	ProductProcessesManager      products.ProductProcessesManager      `json:"product_processes_manager"`
	ProductDiscountRangesManager products.ProductDiscountRangesManager `json:"product_discount_ranges_manager"`
}
