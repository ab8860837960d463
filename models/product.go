package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry. Variants carry their own price; the base
// Price is the default variant's price.
type Product struct {
	ID            string         `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	OriginalPrice float64        `json:"originalPrice,omitempty"`
	Category      string         `gorm:"index" json:"category"`
	Image         string         `json:"image"`
	Rating        float64        `json:"rating"`
	ReviewCount   int            `json:"reviews"`
	Variants      []Variant      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Featured      bool           `json:"featured"`
	OnSale        bool           `json:"onSale"`
	Discount      int            `json:"discount,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Variant is a named sub-option of a product (e.g. a pack size) with its
// own price.
type Variant struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	ProductID string  `gorm:"index" json:"-"`
	Name      string  `gorm:"not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
}
