package products

// AssembledProduct is the read model returned by aggregate writes: the root
// plus every nested collection, each already scoped to the product.
type AssembledProduct struct {
	Product
	ProductInputs         []AssembledProductInput   `json:"product_inputs"`
	ProductProcesses      []AssembledProductProcess `json:"product_processes"`
	ProductDiscountRanges []ProductDiscountRange    `json:"product_discount_ranges"`
}

type AssembledProductInput struct {
	ProductInput
	Input Input `json:"input"`
}

type AssembledProductProcess struct {
	ProductProcess
	Process               Process               `json:"process"`
	ProductInputProcesses []ProductInputProcess `json:"product_input_processes"`
}
