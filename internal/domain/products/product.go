package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EntityKind names the storage directory owned by products.
const EntityKind = "products"

// Product is the aggregate root.
type Product struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string  `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description string  `gorm:"column:description;not null;default:''" json:"description"`
	SKU         *string `gorm:"column:sku;uniqueIndex" json:"sku"`
	Barcode     *string `gorm:"column:barcode;uniqueIndex" json:"barcode"`
	CustomID    *string `gorm:"column:custom_id;uniqueIndex" json:"custom_id"`

	UnitCost  decimal.Decimal `gorm:"column:unit_cost;type:numeric(14,4);not null" json:"unit_cost"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(14,4);not null" json:"unit_price"`

	IsDraft  bool `gorm:"column:is_draft;not null" json:"is_draft"`
	IsActive bool `gorm:"column:is_active;not null" json:"is_active"`

	// Relative to the storage root; temporary uploads never persist here.
	Photo *string `gorm:"column:photo" json:"photo"`

	// Bumped once per update call that writes anything under this product.
	Version int `gorm:"column:version;not null;default:1" json:"version"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "product" }

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}

// Input is a catalog entry consumed by products.
type Input struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name string `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Unit string `gorm:"column:unit;not null;default:''" json:"unit"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Input) TableName() string { return "input" }

func (i *Input) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Process is a production step that products can reference.
type Process struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string `gorm:"column:name;not null;index" json:"name"`
	Description string `gorm:"column:description;not null;default:''" json:"description"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Process) TableName() string { return "process" }

func (p *Process) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
