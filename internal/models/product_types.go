package models

import "time"

// Product is the subset of the catalog's 'products' table this subsystem
// reads. Catalog CRUD lives elsewhere; fulfillment only snapshots from it.
type Product struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	SKU             *string   `json:"sku,omitempty" db:"sku"`
	Status          string    `json:"status" db:"status"`
	MainImage       *string   `json:"mainImage,omitempty" db:"main_image"`
	HSCode          *string   `json:"hsCode,omitempty" db:"hs_code"`
	CountryOfOrigin *string   `json:"countryOfOrigin,omitempty" db:"country_of_origin"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductVariant is one sellable variation (size, metal, stone) of a product.
// Price is in the storefront's local currency; weight is in WeightUnit.
type ProductVariant struct {
	ID            int64     `json:"id" db:"id"`
	ProductID     int64     `json:"productId" db:"product_id"`
	SKU           *string   `json:"sku,omitempty" db:"sku"`
	Price         float64   `json:"price" db:"price"`
	StockQuantity int       `json:"stock" db:"stock_quantity"`
	Weight        float64   `json:"weight" db:"weight"`
	WeightUnit    string    `json:"weightUnit" db:"weight_unit"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// CatalogVariant is the flattened product+variant view used to snapshot
// order items.
type CatalogVariant struct {
	ProductID       int64
	VariantID       int64
	Name            string
	MainImage       *string
	Price           float64
	Stock           int
	Weight          float64
	WeightUnit      string
	HSCode          *string
	CountryOfOrigin *string
}
