// Package orders owns the persisted Order aggregate: creation from a cart
// snapshot, lifecycle updates and shipment details. All updates go through
// optimistic version checks so concurrent admin edits cannot silently
// overwrite each other.
package orders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zayrajewels/zayra-golang/internal/models"
)

// Repository persists orders in MySQL.
type Repository struct {
	DB *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{DB: db}
}

// CreateParams carries everything needed to place an order. Items are
// fully-resolved snapshots; prices are the price-at-add-to-cart values, not
// live catalog prices.
type CreateParams struct {
	UserID          int64
	Items           []models.OrderItem
	ShippingAddress models.Address
	PaymentMethod   string
	PaymentStatus   models.PaymentStatus
}

// Create places an order inside one serializable transaction: stock is
// compare-and-decremented per variant, then the order and its item
// snapshots are inserted. TotalAmount is the sum of priceAtPurchase *
// quantity and is never recomputed afterwards.
func (r *Repository) Create(ctx context.Context, p CreateParams) (*models.Order, error) {
	if len(p.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = models.PaymentPending
	}

	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // safety net

	// Stock check and decrement in one statement per variant. A zero row
	// count means the variant is gone or understocked.
	stockQuery := `
		UPDATE product_variants
		SET stock_quantity = stock_quantity - ?
		WHERE id = ? AND product_id = ? AND stock_quantity >= ?`

	for _, item := range p.Items {
		result, err := tx.ExecContext(ctx, stockQuery, item.Quantity, item.VariantID, item.ProductID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("deduct stock: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("deduct stock: %w", err)
		}
		if affected == 0 {
			return nil, &InsufficientStockError{ProductID: item.ProductID, VariantID: item.VariantID}
		}
	}
	totalAmount := ComputeTotal(p.Items)

	now := time.Now()
	orderQuery := `
		INSERT INTO orders (
			user_id, status, payment_method, payment_status, total_amount,
			ship_full_name, ship_address_line1, ship_address_line2, ship_city,
			ship_state, ship_country, ship_zip_code, ship_phone_number,
			version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`

	result, err := tx.ExecContext(ctx, orderQuery,
		p.UserID, models.StatusPlaced, p.PaymentMethod, p.PaymentStatus, totalAmount,
		p.ShippingAddress.FullName, p.ShippingAddress.AddressLine1, p.ShippingAddress.AddressLine2,
		p.ShippingAddress.City, p.ShippingAddress.State, p.ShippingAddress.Country,
		p.ShippingAddress.ZipCode, p.ShippingAddress.PhoneNumber,
		now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read new order id: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (
			order_id, product_id, variant_id, quantity, price_at_purchase,
			name_at_purchase, main_image_at_purchase, weight_at_purchase,
			weight_unit_at_purchase, hs_code_at_purchase,
			country_of_origin_at_purchase, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i := range p.Items {
		item := &p.Items[i]
		res, err := tx.ExecContext(ctx, itemQuery,
			orderID, item.ProductID, item.VariantID, item.Quantity, item.PriceAtPurchase,
			item.NameAtPurchase, item.MainImageAtPurchase, item.WeightAtPurchase,
			item.WeightUnitAtPurchase, item.HSCodeAtPurchase,
			item.CountryOfOriginAtPurchase, now,
		)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("read new order item id: %w", err)
		}
		item.ID = itemID
		item.OrderID = orderID
		item.CreatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	return &models.Order{
		ID:              orderID,
		UserID:          p.UserID,
		Items:           p.Items,
		ShippingAddress: p.ShippingAddress,
		PaymentMethod:   p.PaymentMethod,
		PaymentStatus:   p.PaymentStatus,
		TotalAmount:     totalAmount,
		Status:          models.StatusPlaced,
		CreatedAt:       now,
		UpdatedAt:       now,
		Version:         1,
	}, nil
}

const orderColumns = `
	id, user_id, status, payment_method, payment_status, total_amount,
	ship_full_name, ship_address_line1, ship_address_line2, ship_city,
	ship_state, ship_country, ship_zip_code, ship_phone_number,
	tracking_number, label_url, tracking_url, shipping_service, shipping_cost,
	pkg_weight, pkg_weight_unit, pkg_length, pkg_width, pkg_height,
	pkg_dimensions_unit, version, created_at, updated_at`

// scanOrder reads one order row, folding the nullable shipment columns into
// a ShipmentDetail only when a shipment exists.
func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	var (
		o           models.Order
		line2       sql.NullString
		tracking    sql.NullString
		labelURL    sql.NullString
		trackingURL sql.NullString
		service     sql.NullString
		cost        sql.NullFloat64
		pkgWeight   sql.NullFloat64
		pkgWeightU  sql.NullString
		pkgLen      sql.NullFloat64
		pkgWid      sql.NullFloat64
		pkgHei      sql.NullFloat64
		pkgDimsU    sql.NullString
	)

	err := row.Scan(
		&o.ID, &o.UserID, &o.Status, &o.PaymentMethod, &o.PaymentStatus, &o.TotalAmount,
		&o.ShippingAddress.FullName, &o.ShippingAddress.AddressLine1, &line2,
		&o.ShippingAddress.City, &o.ShippingAddress.State, &o.ShippingAddress.Country,
		&o.ShippingAddress.ZipCode, &o.ShippingAddress.PhoneNumber,
		&tracking, &labelURL, &trackingURL, &service, &cost,
		&pkgWeight, &pkgWeightU, &pkgLen, &pkgWid, &pkgHei, &pkgDimsU,
		&o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if line2.Valid {
		o.ShippingAddress.AddressLine2 = &line2.String
	}
	if tracking.Valid {
		o.TrackingNumber = &tracking.String
	}
	if labelURL.Valid {
		detail := &models.ShipmentDetail{LabelURL: labelURL.String}
		if trackingURL.Valid {
			detail.TrackingURL = &trackingURL.String
		}
		if service.Valid {
			detail.ShippingService = &service.String
		}
		if cost.Valid {
			detail.ShippingCost = &cost.Float64
		}
		detail.Package = models.PackageSpec{
			Weight:         pkgWeight.Float64,
			WeightUnit:     pkgWeightU.String,
			Length:         pkgLen.Float64,
			Width:          pkgWid.Float64,
			Height:         pkgHei.Float64,
			DimensionsUnit: pkgDimsU.String,
		}
		o.ShipmentDetails = detail
	}

	return &o, nil
}

// GetByID loads an order with its item snapshots.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT"+orderColumns+" FROM orders WHERE id = ?", id)
	o, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch order: %w", err)
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// GetByIDForUser loads an order only if it belongs to userID.
func (r *Repository) GetByIDForUser(ctx context.Context, id, userID int64) (*models.Order, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT"+orderColumns+" FROM orders WHERE id = ? AND user_id = ?", id, userID)
	o, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch order: %w", err)
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *Repository) loadItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, variant_id, quantity, price_at_purchase,
			name_at_purchase, main_image_at_purchase, weight_at_purchase,
			weight_unit_at_purchase, hs_code_at_purchase,
			country_of_origin_at_purchase, created_at
		FROM order_items
		WHERE order_id = ?
		ORDER BY id ASC`

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetch order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var (
			item   models.OrderItem
			image  sql.NullString
			hsCode sql.NullString
			origin sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.VariantID, &item.Quantity,
			&item.PriceAtPurchase, &item.NameAtPurchase, &image, &item.WeightAtPurchase,
			&item.WeightUnitAtPurchase, &hsCode, &origin, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if image.Valid {
			item.MainImageAtPurchase = &image.String
		}
		if hsCode.Valid {
			item.HSCodeAtPurchase = &hsCode.String
		}
		if origin.Valid {
			item.CountryOfOriginAtPurchase = &origin.String
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}
	return items, nil
}

// ListByUser returns a user's orders, newest first, without item snapshots.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT"+orderColumns+" FROM orders WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListAll returns every order, optionally filtered by status (admin view).
func (r *Repository) ListAll(ctx context.Context, status string) ([]models.Order, error) {
	query := "SELECT" + orderColumns + " FROM orders"
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]models.Order, error) {
	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to newStatus. The lifecycle table is enforced
// unless force is set (administrative override). The write is a
// compare-and-swap on the version column.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, newStatus models.OrderStatus, force bool) (*models.Order, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !force && !CanTransition(current.Status, newStatus) {
		return nil, &InvalidTransitionError{From: current.Status, To: newStatus}
	}

	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders
		SET status = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		newStatus, time.Now(), id, current.Version)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if affected == 0 {
		return nil, ErrVersionConflict
	}

	return r.GetByID(ctx, id)
}

// AttachShipment writes the tracking number and shipment details and moves
// the order to shipped, atomically and only if the order is still at
// expectedVersion. Nothing is written on carrier failure, so callers invoke
// this only after a fully successful carrier response.
func (r *Repository) AttachShipment(ctx context.Context, id int64, trackingNumber string, detail models.ShipmentDetail, expectedVersion int) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders
		SET status = ?, tracking_number = ?, label_url = ?, tracking_url = ?,
			shipping_service = ?, shipping_cost = ?,
			pkg_weight = ?, pkg_weight_unit = ?, pkg_length = ?, pkg_width = ?,
			pkg_height = ?, pkg_dimensions_unit = ?,
			version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		models.StatusShipped, trackingNumber, detail.LabelURL, detail.TrackingURL,
		detail.ShippingService, detail.ShippingCost,
		detail.Package.Weight, detail.Package.WeightUnit, detail.Package.Length,
		detail.Package.Width, detail.Package.Height, detail.Package.DimensionsUnit,
		time.Now(), id, expectedVersion)
	if err != nil {
		return fmt.Errorf("attach shipment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("attach shipment: %w", err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// Stats are the back-office order KPIs.
type Stats struct {
	TotalOrders     int     `json:"totalOrders"`
	PlacedCount     int     `json:"placedCount"`
	ProcessingCount int     `json:"processingCount"`
	ShippedCount    int     `json:"shippedCount"`
	DeliveredCount  int     `json:"deliveredCount"`
	CancelledCount  int     `json:"cancelledCount"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// GetStats aggregates order counts by status plus paid revenue.
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	rows, err := r.DB.QueryContext(ctx, "SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan order counts: %w", err)
		}
		stats.TotalOrders += count
		switch models.OrderStatus(status) {
		case models.StatusPlaced:
			stats.PlacedCount = count
		case models.StatusProcessing:
			stats.ProcessingCount = count
		case models.StatusShipped:
			stats.ShippedCount = count
		case models.StatusDelivered:
			stats.DeliveredCount = count
		case models.StatusCancelled:
			stats.CancelledCount = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order counts: %w", err)
	}

	// COALESCE so an empty table reports 0 instead of NULL
	err = r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE payment_status = ? AND status != ?`,
		models.PaymentPaid, models.StatusCancelled).Scan(&stats.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	return stats, nil
}
