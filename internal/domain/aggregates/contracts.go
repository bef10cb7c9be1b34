package aggregates

import "fmt"

// WriteTxOwnership says who opens and commits the transaction around a write.
type WriteTxOwnership string

const (
	// WriteTxOwnedByAggregate: write methods run their own transaction; callers never pass one in.
	WriteTxOwnedByAggregate WriteTxOwnership = "aggregate_owned"
)

// ReadPolicy limits which reads an aggregate performs inside its writes.
type ReadPolicy string

const (
	// ReadPolicyInvariantScoped: only reads needed to decide invariants and to
	// return the written tree. Listing and search stay on the table repos.
	ReadPolicyInvariantScoped ReadPolicy = "invariant_scoped_reads"
)

// Contract describes the write boundary an aggregate promises.
type Contract struct {
	Name             string
	WriteTxOwnership WriteTxOwnership
	ReadPolicy       ReadPolicy
	Notes            string
}

// Aggregate is implemented by every aggregate.
type Aggregate interface {
	Contract() Contract
}

func (c Contract) RequiresAggregateOwnedTx() bool {
	return c.WriteTxOwnership == WriteTxOwnedByAggregate
}

// Validate rejects contracts the data layer cannot honour. Every aggregate
// here commits its rows and file effects as one unit, so the transaction must
// be aggregate-owned.
func (c Contract) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("aggregate contract missing name")
	}
	if !c.RequiresAggregateOwnedTx() {
		return fmt.Errorf("aggregate %s: unsupported write tx ownership %q", c.Name, c.WriteTxOwnership)
	}
	if c.ReadPolicy != ReadPolicyInvariantScoped {
		return fmt.Errorf("aggregate %s: unsupported read policy %q", c.Name, c.ReadPolicy)
	}
	return nil
}
