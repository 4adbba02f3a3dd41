package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zayrajewels/zayra-golang/internal/carrier"
	"github.com/zayrajewels/zayra-golang/internal/catalog"
	"github.com/zayrajewels/zayra-golang/internal/config"
	"github.com/zayrajewels/zayra-golang/internal/models"
	"github.com/zayrajewels/zayra-golang/internal/orders"
	"github.com/zayrajewels/zayra-golang/internal/shipment"
)

// --- fakes ---

type fakeStore struct {
	orders        map[int64]*models.Order
	createdParams []orders.CreateParams
	nextID        int64

	attachCalls   int
	attachedID    int64
	attachedTrack string
	attachedDet   models.ShipmentDetail
	attachedVer   int
	attachErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: map[int64]*models.Order{}, nextID: 100}
}

func (f *fakeStore) Create(ctx context.Context, p orders.CreateParams) (*models.Order, error) {
	f.createdParams = append(f.createdParams, p)
	f.nextID++
	order := &models.Order{
		ID:              f.nextID,
		UserID:          p.UserID,
		Items:           p.Items,
		ShippingAddress: p.ShippingAddress,
		PaymentMethod:   p.PaymentMethod,
		PaymentStatus:   p.PaymentStatus,
		TotalAmount:     orders.ComputeTotal(p.Items),
		Status:          models.StatusPlaced,
		Version:         1,
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, orders.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeStore) AttachShipment(ctx context.Context, id int64, trackingNumber string, detail models.ShipmentDetail, expectedVersion int) error {
	f.attachCalls++
	f.attachedID = id
	f.attachedTrack = trackingNumber
	f.attachedDet = detail
	f.attachedVer = expectedVersion
	if f.attachErr != nil {
		return f.attachErr
	}
	order := f.orders[id]
	order.Status = models.StatusShipped
	order.TrackingNumber = &trackingNumber
	order.ShipmentDetails = &detail
	order.Version++
	return nil
}

type fakeCatalog struct {
	variants map[string]*models.CatalogVariant
}

func (f *fakeCatalog) GetProductVariant(ctx context.Context, productID, variantID int64) (*models.CatalogVariant, error) {
	v, ok := f.variants[fmt.Sprintf("%d:%d", productID, variantID)]
	if !ok {
		return nil, catalog.ErrVariantNotFound
	}
	return v, nil
}

type fakeCarrier struct {
	shipResult *carrier.ShipmentResult
	shipErr    error
	shipCalls  int
	lastShip   *carrier.CreateShipmentRequest

	resolveCalls int
	lastResolve  *carrier.ResolveAddressRequest
	trackCalls   int
}

func (f *fakeCarrier) CreateShipment(ctx context.Context, req *carrier.CreateShipmentRequest) (*carrier.ShipmentResult, error) {
	f.shipCalls++
	f.lastShip = req
	if f.shipErr != nil {
		return nil, f.shipErr
	}
	return f.shipResult, nil
}

func (f *fakeCarrier) ResolveAddress(ctx context.Context, req *carrier.ResolveAddressRequest) (*carrier.ResolvedAddress, error) {
	f.resolveCalls++
	f.lastResolve = req
	return &carrier.ResolvedAddress{City: "NEW YORK", CountryCode: "US"}, nil
}

func (f *fakeCarrier) Track(ctx context.Context, trackingNumber string) (*carrier.TrackInfo, error) {
	f.trackCalls++
	return &carrier.TrackInfo{TrackingNumber: trackingNumber}, nil
}

type fakeCache struct {
	entries map[string]string
	getErr  error
	setErr  error
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[string]string{}} }

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.entries[key], nil
}

func (f *fakeCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("test:%s:%s", operation, key)
}

type fakeNotifier struct {
	placed  []int64
	shipped []string
}

func (f *fakeNotifier) OrderPlaced(ctx context.Context, order *models.Order) {
	f.placed = append(f.placed, order.ID)
}

func (f *fakeNotifier) OrderShipped(ctx context.Context, order *models.Order, trackingNumber string) {
	f.shipped = append(f.shipped, trackingNumber)
}

// --- fixtures ---

func strptr(s string) *string { return &s }

func testService(store *fakeStore, cat *fakeCatalog, carrierAPI *fakeCarrier, dedupe *fakeCache) (*Service, *fakeNotifier) {
	notifier := &fakeNotifier{}
	svc := &Service{
		Orders:  store,
		Catalog: cat,
		Carrier: carrierAPI,
		Assembler: shipment.NewAssembler(&config.Config{
			SettlementCurrency: "USD",
			SettlementRate:     0.012,
			PlaceholderPhone:   "9999999999",
			Carrier:            config.CarrierConfig{AccountNumber: "740561073"},
			Shipper: config.ShipperConfig{
				Name:         "Zayra Jewels",
				PhoneNumber:  "9123456780",
				AddressLine1: "21 Johari Bazaar",
				City:         "Jaipur",
				StateCode:    "RJ",
				PostalCode:   "302003",
				CountryCode:  "IN",
			},
		}),
		DedupeTTL: time.Hour,
		Notifier:  notifier,
		Logger:    zerolog.Nop(),
	}
	if dedupe != nil {
		svc.Dedupe = dedupe
	}
	return svc, notifier
}

func seedOrder(store *fakeStore) *models.Order {
	order := &models.Order{
		ID:     7,
		UserID: 3,
		Status: models.StatusPlaced,
		Items: []models.OrderItem{
			{
				Quantity:             1,
				PriceAtPurchase:      2500,
				NameAtPurchase:       "Emerald Pendant",
				WeightAtPurchase:     20,
				WeightUnitAtPurchase: models.WeightUnitG,
			},
		},
		ShippingAddress: models.Address{
			FullName:     "Emma Clarke",
			AddressLine1: "400 Fifth Avenue",
			City:         "New York",
			State:        "New York",
			Country:      "United States",
			ZipCode:      "10018",
			PhoneNumber:  "2125550134",
		},
		Version: 1,
	}
	store.orders[order.ID] = order
	return order
}

var shipInput = ShipmentInput{Weight: "2.5", Length: "10", Width: "8", Height: "4"}

// --- PlaceOrder ---

func TestPlaceOrderSnapshotsCatalogFields(t *testing.T) {
	store := newFakeStore()
	cat := &fakeCatalog{variants: map[string]*models.CatalogVariant{
		"5:9": {
			ProductID:       5,
			VariantID:       9,
			Name:            "Gold Filigree Jhumka Earrings",
			MainImage:       strptr("https://cdn.example/jhumka.jpg"),
			Price:           1100, // current price differs from the cart price
			Stock:           10,
			Weight:          500,
			WeightUnit:      models.WeightUnitG,
			HSCode:          strptr("711319"),
			CountryOfOrigin: strptr("IN"),
		},
	}}
	svc, notifier := testService(store, cat, &fakeCarrier{}, nil)

	order, err := svc.PlaceOrder(context.Background(), 3, PlaceOrderInput{
		Items: []OrderItemInput{
			{ProductID: 5, VariantID: 9, Quantity: 2, PriceAtPurchase: 1000},
		},
		ShippingAddress: models.Address{FullName: "Emma Clarke"},
		PaymentMethod:   "card",
	})
	require.NoError(t, err)

	require.Len(t, store.createdParams, 1)
	require.Len(t, store.createdParams[0].Items, 1)
	item := store.createdParams[0].Items[0]

	// Catalog details are frozen onto the item; the price is the cart price,
	// not the current catalog price.
	assert.Equal(t, "Gold Filigree Jhumka Earrings", item.NameAtPurchase)
	assert.Equal(t, 1000.0, item.PriceAtPurchase)
	assert.Equal(t, 500.0, item.WeightAtPurchase)
	assert.Equal(t, models.WeightUnitG, item.WeightUnitAtPurchase)
	require.NotNil(t, item.HSCodeAtPurchase)
	assert.Equal(t, "711319", *item.HSCodeAtPurchase)

	// Total is quantity * snapshotted price.
	assert.Equal(t, 2000.0, order.TotalAmount)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, []int64{order.ID}, notifier.placed)
}

func TestPlaceOrderUnknownVariant(t *testing.T) {
	svc, _ := testService(newFakeStore(), &fakeCatalog{variants: map[string]*models.CatalogVariant{}}, &fakeCarrier{}, nil)

	_, err := svc.PlaceOrder(context.Background(), 3, PlaceOrderInput{
		Items:         []OrderItemInput{{ProductID: 1, VariantID: 1, Quantity: 1, PriceAtPurchase: 10}},
		PaymentMethod: "card",
	})
	assert.ErrorIs(t, err, catalog.ErrVariantNotFound)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, _ := testService(newFakeStore(), &fakeCatalog{}, &fakeCarrier{}, nil)

	_, err := svc.PlaceOrder(context.Background(), 3, PlaceOrderInput{PaymentMethod: "card"})
	assert.ErrorIs(t, err, orders.ErrEmptyCart)
}

// --- CreateShipment ---

func TestCreateShipmentInvalidDimensions(t *testing.T) {
	tests := []struct {
		name  string
		input ShipmentInput
	}{
		{"non-numeric weight", ShipmentInput{Weight: "abc", Length: "10", Width: "8", Height: "4"}},
		{"negative length", ShipmentInput{Weight: "2.5", Length: "-1", Width: "8", Height: "4"}},
		{"zero width", ShipmentInput{Weight: "2.5", Length: "10", Width: "0", Height: "4"}},
		{"empty height", ShipmentInput{Weight: "2.5", Length: "10", Width: "8", Height: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			seedOrder(store)
			carrierAPI := &fakeCarrier{}
			svc, _ := testService(store, &fakeCatalog{}, carrierAPI, nil)

			_, err := svc.CreateShipment(context.Background(), 7, tt.input)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			// Rejected before the order is even loaded or the carrier called.
			assert.Zero(t, carrierAPI.shipCalls)
			assert.Zero(t, store.attachCalls)
		})
	}
}

func TestCreateShipmentSuccess(t *testing.T) {
	store := newFakeStore()
	order := seedOrder(store)
	carrierAPI := &fakeCarrier{shipResult: &carrier.ShipmentResult{
		TrackingNumber: "794843185271",
		LabelURL:       "https://labels.example/794843185271.pdf",
		ServiceName:    "FedEx International Priority",
	}}
	dedupe := newFakeCache()
	svc, notifier := testService(store, &fakeCatalog{}, carrierAPI, dedupe)

	outcome, err := svc.CreateShipment(context.Background(), order.ID, shipInput)
	require.NoError(t, err)

	assert.Equal(t, "794843185271", outcome.TrackingNumber)
	assert.Equal(t, "https://labels.example/794843185271.pdf", outcome.LabelURL)
	assert.False(t, outcome.Deduped)

	// Shipment details persisted against the version read before the call.
	require.Equal(t, 1, store.attachCalls)
	assert.Equal(t, order.ID, store.attachedID)
	assert.Equal(t, "794843185271", store.attachedTrack)
	assert.Equal(t, 1, store.attachedVer)
	assert.Equal(t, 2.5, store.attachedDet.Package.Weight)
	assert.Equal(t, models.WeightUnitLB, store.attachedDet.Package.WeightUnit)
	assert.Equal(t, "IN", store.attachedDet.Package.DimensionsUnit)
	require.NotNil(t, store.attachedDet.ShippingService)
	assert.Equal(t, "FedEx International Priority", *store.attachedDet.ShippingService)

	// The successful outcome is recorded for dedupe.
	assert.Len(t, dedupe.entries, 1)
	assert.Equal(t, []string{"794843185271"}, notifier.shipped)
}

func TestCreateShipmentCarrierFailureLeavesOrderUntouched(t *testing.T) {
	store := newFakeStore()
	order := seedOrder(store)
	carrierAPI := &fakeCarrier{shipErr: &carrier.RequestError{StatusCode: 503, Body: "unavailable"}}
	dedupe := newFakeCache()
	svc, notifier := testService(store, &fakeCatalog{}, carrierAPI, dedupe)

	_, err := svc.CreateShipment(context.Background(), order.ID, shipInput)
	require.Error(t, err)

	var reqErr *carrier.RequestError
	assert.ErrorAs(t, err, &reqErr)

	// No write, no status change, no dedupe entry, no notification.
	assert.Zero(t, store.attachCalls)
	assert.Equal(t, models.StatusPlaced, store.orders[order.ID].Status)
	assert.Nil(t, store.orders[order.ID].TrackingNumber)
	assert.Empty(t, dedupe.entries)
	assert.Empty(t, notifier.shipped)
}

func TestCreateShipmentDeduped(t *testing.T) {
	store := newFakeStore()
	order := seedOrder(store)
	carrierAPI := &fakeCarrier{}
	dedupe := newFakeCache()

	previous, err := json.Marshal(ShipmentOutcome{
		TrackingNumber: "794843185271",
		LabelURL:       "https://labels.example/794843185271.pdf",
	})
	require.NoError(t, err)
	dedupe.entries["test:shipment:7:2.5:10:8:4"] = string(previous)

	svc, _ := testService(store, &fakeCatalog{}, carrierAPI, dedupe)

	outcome, err := svc.CreateShipment(context.Background(), order.ID, shipInput)
	require.NoError(t, err)

	// Replayed result, no second carrier shipment.
	assert.True(t, outcome.Deduped)
	assert.Equal(t, "794843185271", outcome.TrackingNumber)
	assert.Zero(t, carrierAPI.shipCalls)
	assert.Zero(t, store.attachCalls)
}

func TestCreateShipmentDifferentDimensionsNotDeduped(t *testing.T) {
	store := newFakeStore()
	order := seedOrder(store)
	carrierAPI := &fakeCarrier{shipResult: &carrier.ShipmentResult{
		TrackingNumber: "794843185272",
		LabelURL:       "https://labels.example/794843185272.pdf",
	}}
	dedupe := newFakeCache()
	dedupe.entries["test:shipment:7:2.5:10:8:4"] = `{"trackingNumber":"794843185271","labelUrl":"x"}`

	svc, _ := testService(store, &fakeCatalog{}, carrierAPI, dedupe)

	outcome, err := svc.CreateShipment(context.Background(), order.ID,
		ShipmentInput{Weight: "3.0", Length: "10", Width: "8", Height: "4"})
	require.NoError(t, err)
	assert.False(t, outcome.Deduped)
	assert.Equal(t, 1, carrierAPI.shipCalls)
}

func TestCreateShipmentCacheUnavailable(t *testing.T) {
	store := newFakeStore()
	order := seedOrder(store)
	carrierAPI := &fakeCarrier{shipResult: &carrier.ShipmentResult{
		TrackingNumber: "794843185271",
		LabelURL:       "https://labels.example/794843185271.pdf",
	}}
	dedupe := newFakeCache()
	dedupe.getErr = fmt.Errorf("connection refused")

	svc, _ := testService(store, &fakeCatalog{}, carrierAPI, dedupe)

	// The cache is advisory: an outage must not block shipment creation.
	outcome, err := svc.CreateShipment(context.Background(), order.ID, shipInput)
	require.NoError(t, err)
	assert.False(t, outcome.Deduped)
	assert.Equal(t, 1, carrierAPI.shipCalls)
}

func TestCreateShipmentOrderNotFound(t *testing.T) {
	svc, _ := testService(newFakeStore(), &fakeCatalog{}, &fakeCarrier{}, nil)

	_, err := svc.CreateShipment(context.Background(), 404, shipInput)
	assert.ErrorIs(t, err, orders.ErrNotFound)
}

func TestCreateShipmentVersionConflictSurfaces(t *testing.T) {
	store := newFakeStore()
	order := seedOrder(store)
	store.attachErr = orders.ErrVersionConflict
	carrierAPI := &fakeCarrier{shipResult: &carrier.ShipmentResult{
		TrackingNumber: "794843185271",
		LabelURL:       "https://labels.example/794843185271.pdf",
	}}
	svc, _ := testService(store, &fakeCatalog{}, carrierAPI, newFakeCache())

	_, err := svc.CreateShipment(context.Background(), order.ID, shipInput)
	assert.ErrorIs(t, err, orders.ErrVersionConflict)
}

// --- ValidateAddress / Track ---

func TestValidateAddressMissingFields(t *testing.T) {
	carrierAPI := &fakeCarrier{}
	svc, _ := testService(newFakeStore(), &fakeCatalog{}, carrierAPI, nil)

	base := models.Address{
		AddressLine1: "400 Fifth Avenue",
		City:         "New York",
		State:        "NY",
		Country:      "United States",
		ZipCode:      "10018",
	}

	tests := []struct {
		name  string
		strip func(a *models.Address)
	}{
		{"street", func(a *models.Address) { a.AddressLine1 = "" }},
		{"city", func(a *models.Address) { a.City = "" }},
		{"state", func(a *models.Address) { a.State = "" }},
		{"postal code", func(a *models.Address) { a.ZipCode = "" }},
		{"country", func(a *models.Address) { a.Country = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := base
			tt.strip(&addr)
			_, err := svc.ValidateAddress(context.Background(), addr)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}

	// None of the rejected addresses reached the carrier.
	assert.Zero(t, carrierAPI.resolveCalls)
}

func TestValidateAddressUnknownCountryFallsBack(t *testing.T) {
	carrierAPI := &fakeCarrier{}
	svc, _ := testService(newFakeStore(), &fakeCatalog{}, carrierAPI, nil)

	_, err := svc.ValidateAddress(context.Background(), models.Address{
		AddressLine1: "1 Ocean Drive",
		City:         "Lost City",
		State:        "Somewhere",
		Country:      "Atlantis",
		ZipCode:      "00000",
	})
	require.NoError(t, err)

	require.NotNil(t, carrierAPI.lastResolve)
	require.Len(t, carrierAPI.lastResolve.AddressesToValidate, 1)
	assert.Equal(t, "IN", carrierAPI.lastResolve.AddressesToValidate[0].Address.CountryCode)
}

func TestTrackRequiresNumber(t *testing.T) {
	carrierAPI := &fakeCarrier{}
	svc, _ := testService(newFakeStore(), &fakeCatalog{}, carrierAPI, nil)

	_, err := svc.Track(context.Background(), "")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, carrierAPI.trackCalls)

	info, err := svc.Track(context.Background(), "794843185271")
	require.NoError(t, err)
	assert.Equal(t, "794843185271", info.TrackingNumber)
}
