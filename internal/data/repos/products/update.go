package products

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/productflow-backend/internal/pkg/diff"
)

// updateChanged writes only the columns that differ between existing and
// candidate. An empty diff issues no statement.
func updateChanged(t *gorm.DB, model any, where map[string]any, existing, candidate diff.Snapshot) (bool, error) {
	changes := diff.Objects(existing, candidate, diff.Options{})
	if len(changes) == 0 {
		return false, nil
	}
	res := t.Model(model).Where(where).Updates(map[string]any(changes))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, ErrNoRowsAffected
	}
	return true, nil
}

func createOne(t *gorm.DB, row any) error {
	res := t.Create(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func deleteWhere(t *gorm.DB, model any, where map[string]any) error {
	res := t.Where(where).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func scoped(productID, id uuid.UUID) map[string]any {
	return map[string]any{"product_id": productID, "id": id}
}
