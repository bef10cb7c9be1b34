package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductInput binds a catalog input to a product with a quantity conversion factor.
type ProductInput struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProductID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_product_input_pair,priority:1" json:"product_id"`
	InputID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_product_input_pair,priority:2" json:"input_id"`

	Equivalence decimal.Decimal `gorm:"column:equivalence;type:numeric(14,4);not null" json:"equivalence"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ProductInput) TableName() string { return "product_input" }

func (r *ProductInput) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ProductProcess places a process at a position in a product's production order.
type ProductProcess struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProcessID uuid.UUID `gorm:"type:uuid;not null;index" json:"process_id"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ProductProcess) TableName() string { return "product_process" }

func (r *ProductProcess) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ProductInputProcess records how much of a product input one process step consumes.
// ProductProcessID and ProductInputID always belong to ProductID.
type ProductInputProcess struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProductID        uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductProcessID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_product_input_process_pair,priority:1" json:"product_process_id"`
	ProductInputID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_product_input_process_pair,priority:2" json:"product_input_id"`

	Qty decimal.Decimal `gorm:"column:qty;type:numeric(14,4);not null" json:"qty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ProductInputProcess) TableName() string { return "product_input_process" }

func (r *ProductInputProcess) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ProductDiscountRange is a volume pricing tier over [MinQty, MaxQty].
type ProductDiscountRange struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	MinQty    int             `gorm:"column:min_qty;not null" json:"min_qty"`
	MaxQty    int             `gorm:"column:max_qty;not null" json:"max_qty"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(14,4);not null" json:"unit_price"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ProductDiscountRange) TableName() string { return "product_discount_range" }

func (r *ProductDiscountRange) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func RangeMin(r ProductDiscountRange) int { return r.MinQty }
func RangeMax(r ProductDiscountRange) int { return r.MaxQty }
