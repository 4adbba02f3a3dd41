// Package catalog is the read-only boundary to the product catalog. The
// catalog's CRUD lives elsewhere; fulfillment only looks variants up to
// snapshot them onto order items.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zayrajewels/zayra-golang/internal/models"
)

// ErrVariantNotFound is returned when a product/variant pair does not
// resolve to a live catalog entry.
var ErrVariantNotFound = errors.New("product variant not found")

// VariantLookup resolves a product/variant pair to the fields snapshotted
// at order time.
type VariantLookup interface {
	GetProductVariant(ctx context.Context, productID, variantID int64) (*models.CatalogVariant, error)
}

// MySQLCatalog implements VariantLookup against the storefront's own
// products tables.
type MySQLCatalog struct {
	DB *sql.DB
}

func NewMySQLCatalog(db *sql.DB) *MySQLCatalog {
	return &MySQLCatalog{DB: db}
}

// GetProductVariant joins the product and variant rows. Only published
// products resolve.
func (c *MySQLCatalog) GetProductVariant(ctx context.Context, productID, variantID int64) (*models.CatalogVariant, error) {
	query := `
		SELECT p.id, v.id, p.name, p.main_image, v.price, v.stock_quantity,
			v.weight, v.weight_unit, p.hs_code, p.country_of_origin
		FROM products p
		JOIN product_variants v ON v.product_id = p.id
		WHERE p.id = ? AND v.id = ? AND p.status = 'published'`

	var (
		cv     models.CatalogVariant
		image  sql.NullString
		hsCode sql.NullString
		origin sql.NullString
	)
	err := c.DB.QueryRowContext(ctx, query, productID, variantID).Scan(
		&cv.ProductID, &cv.VariantID, &cv.Name, &image, &cv.Price, &cv.Stock,
		&cv.Weight, &cv.WeightUnit, &hsCode, &origin,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrVariantNotFound
		}
		return nil, fmt.Errorf("fetch product variant: %w", err)
	}

	if image.Valid {
		cv.MainImage = &image.String
	}
	if hsCode.Valid {
		cv.HSCode = &hsCode.String
	}
	if origin.Valid {
		cv.CountryOfOrigin = &origin.String
	}
	return &cv, nil
}
