package models

import (
	"time"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	StatusPlaced     OrderStatus = "placed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusPlaced, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus tracks whether the order has been paid for.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Weight units accepted on catalog items.
const (
	WeightUnitG  = "G"
	WeightUnitKG = "KG"
	WeightUnitLB = "LB"
)

// Address is the shipping address exactly as the customer entered it.
// Country and state are free text; they are normalized to carrier codes at
// shipment-assembly time only, never persisted in normalized form.
type Address struct {
	FullName     string  `json:"fullName" db:"ship_full_name"`
	AddressLine1 string  `json:"addressLine1" db:"ship_address_line1"`
	AddressLine2 *string `json:"addressLine2,omitempty" db:"ship_address_line2"`
	City         string  `json:"city" db:"ship_city"`
	State        string  `json:"state" db:"ship_state"`
	Country      string  `json:"country" db:"ship_country"`
	ZipCode      string  `json:"zipCode" db:"ship_zip_code"`
	PhoneNumber  string  `json:"phoneNumber" db:"ship_phone_number"`
}

// OrderItem is an immutable snapshot taken at order-creation time.
// Prices and product details are frozen here so later catalog edits never
// change what the customer bought.
type OrderItem struct {
	ID                        int64     `json:"id" db:"id"`
	OrderID                   int64     `json:"orderId" db:"order_id"`
	ProductID                 int64     `json:"productId" db:"product_id"`
	VariantID                 int64     `json:"variantId" db:"variant_id"`
	Quantity                  int       `json:"quantity" db:"quantity"`
	PriceAtPurchase           float64   `json:"priceAtPurchase" db:"price_at_purchase"`
	NameAtPurchase            string    `json:"nameAtPurchase" db:"name_at_purchase"`
	MainImageAtPurchase       *string   `json:"mainImageAtPurchase,omitempty" db:"main_image_at_purchase"`
	WeightAtPurchase          float64   `json:"weightAtPurchase" db:"weight_at_purchase"`
	WeightUnitAtPurchase      string    `json:"weightUnitAtPurchase" db:"weight_unit_at_purchase"`
	HSCodeAtPurchase          *string   `json:"hsCodeAtPurchase,omitempty" db:"hs_code_at_purchase"`
	CountryOfOriginAtPurchase *string   `json:"countryOfOriginAtPurchase,omitempty" db:"country_of_origin_at_purchase"`
	CreatedAt                 time.Time `json:"createdAt" db:"created_at"`
}

// PackageSpec is the physical package handed to the carrier.
type PackageSpec struct {
	Weight         float64 `json:"weight" db:"pkg_weight"`
	WeightUnit     string  `json:"weightUnit" db:"pkg_weight_unit"`
	Length         float64 `json:"length" db:"pkg_length"`
	Width          float64 `json:"width" db:"pkg_width"`
	Height         float64 `json:"height" db:"pkg_height"`
	DimensionsUnit string  `json:"dimensionsUnit" db:"pkg_dimensions_unit"`
}

// ShipmentDetail is written once when a carrier shipment is created.
// A later shipment-creation call overwrites it wholesale; nothing else
// mutates it.
type ShipmentDetail struct {
	LabelURL        string      `json:"labelUrl" db:"label_url"`
	TrackingURL     *string     `json:"trackingUrl,omitempty" db:"tracking_url"`
	ShippingService *string     `json:"shippingService,omitempty" db:"shipping_service"`
	ShippingCost    *float64    `json:"shippingCost,omitempty" db:"shipping_cost"`
	Package         PackageSpec `json:"package"`
}

// Order is the aggregate root for the 'orders' table.
// TotalAmount is derived from the item snapshots at creation time and never
// recomputed. Once TrackingNumber is set the status is at least shipped.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	UserID          int64           `json:"userId" db:"user_id"`
	Items           []OrderItem     `json:"items,omitempty" db:"-"`
	ShippingAddress Address         `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" db:"payment_method"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" db:"payment_status"`
	TotalAmount     float64         `json:"totalAmount" db:"total_amount"`
	Status          OrderStatus     `json:"status" db:"status"`
	TrackingNumber  *string         `json:"trackingNumber,omitempty" db:"tracking_number"`
	ShipmentDetails *ShipmentDetail `json:"shipmentDetails,omitempty"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
	Version         int             `json:"-" db:"version"`
}
