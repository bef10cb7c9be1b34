package products

import "github.com/google/uuid"

type EntityRef struct {
	ID uuid.UUID `json:"id"`
}

// CollectionManager is a client reconciliation instruction for one nested
// collection. The same shape is used at every nesting level.
type CollectionManager[C any, U any] struct {
	Added   []C         `json:"added"`
	Updated []U         `json:"updated"`
	Deleted []EntityRef `json:"deleted"`
}

func (m CollectionManager[C, U]) IsEmpty() bool {
	return len(m.Added) == 0 && len(m.Updated) == 0 && len(m.Deleted) == 0
}

type Reconciler[C any, U any] struct {
	Add    func(C) error
	Update func(U) error
	Delete func(uuid.UUID) error
}

// Reconcile applies m in the order added, updated, deleted and stops at the
// first error.
func Reconcile[C any, U any](m CollectionManager[C, U], r Reconciler[C, U]) error {
	for _, c := range m.Added {
		if err := r.Add(c); err != nil {
			return err
		}
	}
	for _, u := range m.Updated {
		if err := r.Update(u); err != nil {
			return err
		}
	}
	for _, d := range m.Deleted {
		if err := r.Delete(d.ID); err != nil {
			return err
		}
	}
	return nil
}
