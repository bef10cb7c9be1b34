package domain

import "github.com/yungbote/productflow-backend/internal/domain/products"

type Product = products.Product
type Input = products.Input
type Process = products.Process
type ProductInput = products.ProductInput
type ProductProcess = products.ProductProcess
type ProductInputProcess = products.ProductInputProcess
type ProductDiscountRange = products.ProductDiscountRange

type ProductPatch = products.ProductPatch
type ProcessPatch = products.ProcessPatch
type ProductInputPatch = products.ProductInputPatch
type ProductProcessPatch = products.ProductProcessPatch
type ProductInputProcessPatch = products.ProductInputProcessPatch
type ProductDiscountRangePatch = products.ProductDiscountRangePatch

type AssembledProduct = products.AssembledProduct
type AssembledProductInput = products.AssembledProductInput
type AssembledProductProcess = products.AssembledProductProcess

// AllModels lists every persisted row type in migration order.
func AllModels() []any {
	return []any{
		&Product{},
		&Input{},
		&Process{},
		&ProductInput{},
		&ProductProcess{},
		&ProductInputProcess{},
		&ProductDiscountRange{},
	}
}
