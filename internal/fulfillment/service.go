// Package fulfillment orchestrates the path from a validated cart to a
// placed order, through shipment creation against the carrier, to tracking
// lookups.
package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/zayrajewels/zayra-golang/internal/addressing"
	"github.com/zayrajewels/zayra-golang/internal/cache"
	"github.com/zayrajewels/zayra-golang/internal/carrier"
	"github.com/zayrajewels/zayra-golang/internal/catalog"
	"github.com/zayrajewels/zayra-golang/internal/models"
	"github.com/zayrajewels/zayra-golang/internal/notify"
	"github.com/zayrajewels/zayra-golang/internal/orders"
	"github.com/zayrajewels/zayra-golang/internal/shipment"
)

// ValidationError is a caller mistake detected before any network or
// database write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// OrderStore is the slice of the order repository this service needs.
type OrderStore interface {
	Create(ctx context.Context, p orders.CreateParams) (*models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	AttachShipment(ctx context.Context, id int64, trackingNumber string, detail models.ShipmentDetail, expectedVersion int) error
}

// CarrierAPI is the slice of the carrier client this service needs.
type CarrierAPI interface {
	CreateShipment(ctx context.Context, req *carrier.CreateShipmentRequest) (*carrier.ShipmentResult, error)
	ResolveAddress(ctx context.Context, req *carrier.ResolveAddressRequest) (*carrier.ResolvedAddress, error)
	Track(ctx context.Context, trackingNumber string) (*carrier.TrackInfo, error)
}

// Service wires the order repository, catalog, carrier client, assembler
// and dedupe cache together.
type Service struct {
	Orders    OrderStore
	Catalog   catalog.VariantLookup
	Carrier   CarrierAPI
	Assembler *shipment.Assembler
	// Dedupe is optional; when nil every shipment call goes to the carrier.
	Dedupe    cache.Cache
	DedupeTTL time.Duration
	Notifier  notify.Notifier
	Logger    zerolog.Logger
}

// OrderItemInput is one cart line as submitted at checkout. The price is
// the price-at-add-to-cart; it is snapshotted, not re-fetched.
type OrderItemInput struct {
	ProductID       int64   `json:"productId" binding:"required"`
	VariantID       int64   `json:"variantId" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required,gte=1"`
	PriceAtPurchase float64 `json:"priceAtPurchase" binding:"required,gt=0"`
}

// PlaceOrderInput is the checkout payload.
type PlaceOrderInput struct {
	Items           []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress models.Address   `json:"shippingAddress" binding:"required"`
	PaymentMethod   string           `json:"paymentMethod" binding:"required"`
	PaymentStatus   string           `json:"paymentStatus" binding:"omitempty,oneof=pending paid"`
}

// PlaceOrder resolves every cart line against the catalog, snapshots the
// items and creates the order.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, orders.ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		variant, err := s.Catalog.GetProductVariant(ctx, line.ProductID, line.VariantID)
		if err != nil {
			return nil, err
		}

		items = append(items, models.OrderItem{
			ProductID:                 variant.ProductID,
			VariantID:                 variant.VariantID,
			Quantity:                  line.Quantity,
			PriceAtPurchase:           line.PriceAtPurchase,
			NameAtPurchase:            variant.Name,
			MainImageAtPurchase:       variant.MainImage,
			WeightAtPurchase:          variant.Weight,
			WeightUnitAtPurchase:      variant.WeightUnit,
			HSCodeAtPurchase:          variant.HSCode,
			CountryOfOriginAtPurchase: variant.CountryOfOrigin,
		})
	}

	paymentStatus := models.PaymentStatus(in.PaymentStatus)
	if paymentStatus == "" {
		paymentStatus = models.PaymentPending
	}

	order, err := s.Orders.Create(ctx, orders.CreateParams{
		UserID:          userID,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   paymentStatus,
	})
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.OrderPlaced(ctx, order)
	}
	return order, nil
}

// ShipmentInput carries the package measurements as submitted by the admin.
// They arrive as strings and are validated here before anything else runs.
type ShipmentInput struct {
	Weight string `json:"weight" binding:"required"`
	Length string `json:"length" binding:"required"`
	Width  string `json:"width" binding:"required"`
	Height string `json:"height" binding:"required"`
}

// ShipmentOutcome is the result of a shipment-creation call.
type ShipmentOutcome struct {
	TrackingNumber string `json:"trackingNumber"`
	LabelURL       string `json:"labelUrl"`
	// Deduped is true when a previous successful call for the same order and
	// dimensions was replayed instead of creating a second carrier shipment.
	Deduped bool `json:"deduped,omitempty"`
}

func parseDimension(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ValidationError{Msg: fmt.Sprintf("%s must be numeric, got %q", name, raw)}
	}
	if v <= 0 {
		return 0, &ValidationError{Msg: fmt.Sprintf("%s must be positive", name)}
	}
	return v, nil
}

// CreateShipment builds and submits the carrier shipment for an order, then
// persists the tracking number and shipment details and moves the order to
// shipped. On any carrier failure the order is left exactly as it was.
func (s *Service) CreateShipment(ctx context.Context, orderID int64, in ShipmentInput) (*ShipmentOutcome, error) {
	weight, err := parseDimension("weight", in.Weight)
	if err != nil {
		return nil, err
	}
	length, err := parseDimension("length", in.Length)
	if err != nil {
		return nil, err
	}
	width, err := parseDimension("width", in.Width)
	if err != nil {
		return nil, err
	}
	height, err := parseDimension("height", in.Height)
	if err != nil {
		return nil, err
	}

	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// The dedupe key is deterministic per order+dimensions so a retry or
	// double-click replays the first successful result instead of creating
	// a second carrier shipment.
	dedupeKey := fmt.Sprintf("%d:%s:%s:%s:%s", orderID, in.Weight, in.Length, in.Width, in.Height)
	if s.Dedupe != nil {
		key := s.Dedupe.GenerateKey("shipment", dedupeKey)
		if cached, err := s.Dedupe.Get(ctx, key); err != nil {
			s.Logger.Warn().Err(err).Msg("shipment dedupe cache unavailable, proceeding without it")
		} else if cached != "" {
			var outcome ShipmentOutcome
			if err := json.Unmarshal([]byte(cached), &outcome); err == nil {
				outcome.Deduped = true
				s.Logger.Info().Int64("orderId", orderID).
					Str("trackingNumber", outcome.TrackingNumber).
					Msg("replaying previous shipment result")
				return &outcome, nil
			}
		}
	}

	dims := shipment.PackageDims{Weight: weight, Length: length, Width: width, Height: height}
	req, err := s.Assembler.Build(order, dims)
	if err != nil {
		return nil, err
	}

	result, err := s.Carrier.CreateShipment(ctx, req)
	if err != nil {
		// order status and shipment details remain untouched
		return nil, err
	}

	detail := models.ShipmentDetail{
		LabelURL: result.LabelURL,
		Package: models.PackageSpec{
			Weight:         weight,
			WeightUnit:     models.WeightUnitLB,
			Length:         length,
			Width:          width,
			Height:         height,
			DimensionsUnit: "IN",
		},
	}
	if result.ServiceName != "" {
		service := result.ServiceName
		detail.ShippingService = &service
	}

	if err := s.Orders.AttachShipment(ctx, order.ID, result.TrackingNumber, detail, order.Version); err != nil {
		return nil, err
	}

	outcome := &ShipmentOutcome{TrackingNumber: result.TrackingNumber, LabelURL: result.LabelURL}

	if s.Dedupe != nil {
		key := s.Dedupe.GenerateKey("shipment", dedupeKey)
		if encoded, err := json.Marshal(outcome); err == nil {
			if err := s.Dedupe.Set(ctx, key, string(encoded), s.DedupeTTL); err != nil {
				s.Logger.Warn().Err(err).Msg("failed to record shipment dedupe entry")
			}
		}
	}

	if s.Notifier != nil {
		s.Notifier.OrderShipped(ctx, order, result.TrackingNumber)
	}
	return outcome, nil
}

// ValidateAddress runs the carrier's address resolution as a pre-flight
// check before checkout. Missing required fields fail before any network
// call is made.
func (s *Service) ValidateAddress(ctx context.Context, addr models.Address) (*carrier.ResolvedAddress, error) {
	switch {
	case addr.AddressLine1 == "":
		return nil, &ValidationError{Msg: "street is required"}
	case addr.City == "":
		return nil, &ValidationError{Msg: "city is required"}
	case addr.State == "":
		return nil, &ValidationError{Msg: "state is required"}
	case addr.ZipCode == "":
		return nil, &ValidationError{Msg: "postalCode is required"}
	case addr.Country == "":
		return nil, &ValidationError{Msg: "country is required"}
	}

	countryCode := addressing.FallbackCountryCode
	if country, ok := addressing.LookupCountry(addr.Country); ok {
		countryCode = country.Code
	}

	line2 := ""
	if addr.AddressLine2 != nil {
		line2 = *addr.AddressLine2
	}

	req := &carrier.ResolveAddressRequest{
		AddressesToValidate: []carrier.AddressToValidate{
			{
				Address: carrier.PartyAddress{
					StreetLines:         addressing.SplitStreetLines(addr.AddressLine1, line2),
					City:                addr.City,
					StateOrProvinceCode: addr.State,
					PostalCode:          addr.ZipCode,
					CountryCode:         countryCode,
				},
			},
		},
	}

	return s.Carrier.ResolveAddress(ctx, req)
}

// Track returns the normalized tracking events for a tracking number.
func (s *Service) Track(ctx context.Context, trackingNumber string) (*carrier.TrackInfo, error) {
	if trackingNumber == "" {
		return nil, &ValidationError{Msg: "tracking number is required"}
	}
	return s.Carrier.Track(ctx, trackingNumber)
}
