package shipment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zayrajewels/zayra-golang/internal/config"
	"github.com/zayrajewels/zayra-golang/internal/models"
)

func testAssembler() *Assembler {
	return NewAssembler(&config.Config{
		SettlementCurrency: "USD",
		SettlementRate:     0.012,
		PlaceholderPhone:   "9999999999",
		Carrier: config.CarrierConfig{
			AccountNumber: "740561073",
		},
		Shipper: config.ShipperConfig{
			Name:         "Zayra Jewels",
			PhoneNumber:  "9123456780",
			AddressLine1: "21 Johari Bazaar",
			City:         "Jaipur",
			StateCode:    "RJ",
			PostalCode:   "302003",
			CountryCode:  "IN",
		},
	})
}

func strptr(s string) *string { return &s }

func testOrder() *models.Order {
	return &models.Order{
		ID:     41,
		UserID: 7,
		Status: models.StatusPlaced,
		Items: []models.OrderItem{
			{
				ID:                        1,
				Quantity:                  2,
				PriceAtPurchase:           1000,
				NameAtPurchase:            "Gold Filigree Jhumka Earrings",
				WeightAtPurchase:          500,
				WeightUnitAtPurchase:      models.WeightUnitG,
				HSCodeAtPurchase:          strptr("711319"),
				CountryOfOriginAtPurchase: strptr("IN"),
			},
		},
		ShippingAddress: models.Address{
			FullName:     "Emma Clarke",
			AddressLine1: "400 Fifth Avenue",
			City:         "New York",
			State:        "New York",
			Country:      "United States",
			ZipCode:      "10018",
			PhoneNumber:  "(212) 555-0134",
		},
	}
}

func TestBuildCommodityConversions(t *testing.T) {
	a := testAssembler()

	req, err := a.Build(testOrder(), PackageDims{Weight: 2.5, Length: 10, Width: 8, Height: 4})
	require.NoError(t, err)

	customs := req.RequestedShipment.CustomsClearanceDetail
	require.NotNil(t, customs)
	require.Len(t, customs.Commodities, 1)

	c := customs.Commodities[0]
	// Commodity weight is per unit, not multiplied by quantity.
	assert.Equal(t, "LB", c.Weight.Units)
	assert.InDelta(t, 1.10231, c.Weight.Value, 0.0001)

	// 1000 INR at 0.012 -> 12.00 USD per unit; 24.00 declared for qty 2.
	assert.Equal(t, 12.00, c.UnitPrice.Amount)
	assert.Equal(t, "USD", c.UnitPrice.Currency)
	assert.Equal(t, 24.00, c.CustomsValue.Amount)
	assert.Equal(t, 24.00, customs.TotalCustomsValue.Amount)
	assert.Equal(t, "USD", customs.TotalCustomsValue.Currency)

	assert.Equal(t, 2, c.Quantity)
	assert.Equal(t, "PCS", c.QuantityUnits)
	assert.Equal(t, "711319", c.HarmonizedCode)
	assert.Equal(t, "IN", c.CountryOfManufacture)
}

func TestBuildCustomsValueFloors(t *testing.T) {
	a := testAssembler()

	order := testOrder()
	order.Items = []models.OrderItem{
		// 10 INR * 0.012 = 0.12 USD, below the minimum declarable value.
		{Quantity: 1, PriceAtPurchase: 10, NameAtPurchase: "Silver Nose Pin", WeightAtPurchase: 2, WeightUnitAtPurchase: models.WeightUnitG},
		{Quantity: 1, PriceAtPurchase: 20, NameAtPurchase: "Toe Ring", WeightAtPurchase: 3, WeightUnitAtPurchase: models.WeightUnitG},
	}

	req, err := a.Build(order, PackageDims{Weight: 0.5, Length: 6, Width: 4, Height: 2})
	require.NoError(t, err)

	customs := req.RequestedShipment.CustomsClearanceDetail
	require.Len(t, customs.Commodities, 2)
	assert.Equal(t, 1.00, customs.Commodities[0].CustomsValue.Amount)
	assert.Equal(t, 1.00, customs.Commodities[1].CustomsValue.Amount)
	// Aggregate is the sum of already-floored lines.
	assert.Equal(t, 2.00, customs.TotalCustomsValue.Amount)
}

func TestBuildCommodityWeightFloor(t *testing.T) {
	a := testAssembler()

	order := testOrder()
	order.Items[0].WeightAtPurchase = 0.1 // 0.1 G is below the minimum billable weight

	req, err := a.Build(order, PackageDims{Weight: 0.5, Length: 6, Width: 4, Height: 2})
	require.NoError(t, err)
	assert.Equal(t, 0.001, req.RequestedShipment.CustomsClearanceDetail.Commodities[0].Weight.Value)
}

func TestBuildTruncatesDescription(t *testing.T) {
	a := testAssembler()

	order := testOrder()
	order.Items[0].NameAtPurchase = strings.Repeat("Antique Kundan Polki Necklace ", 3)

	req, err := a.Build(order, PackageDims{Weight: 1, Length: 6, Width: 4, Height: 2})
	require.NoError(t, err)
	assert.Len(t, req.RequestedShipment.CustomsClearanceDetail.Commodities[0].Description, maxCommodityDescription)
}

func TestBuildOriginFallsBackToShipper(t *testing.T) {
	a := testAssembler()

	order := testOrder()
	order.Items[0].CountryOfOriginAtPurchase = nil

	req, err := a.Build(order, PackageDims{Weight: 1, Length: 6, Width: 4, Height: 2})
	require.NoError(t, err)
	assert.Equal(t, "IN", req.RequestedShipment.CustomsClearanceDetail.Commodities[0].CountryOfManufacture)
}

func TestBuildRecipientNormalized(t *testing.T) {
	a := testAssembler()

	req, err := a.Build(testOrder(), PackageDims{Weight: 1, Length: 6, Width: 4, Height: 2})
	require.NoError(t, err)

	require.Len(t, req.RequestedShipment.Recipients, 1)
	addr := req.RequestedShipment.Recipients[0].Address
	assert.Equal(t, "US", addr.CountryCode)
	assert.Equal(t, "NY", addr.StateOrProvinceCode)
	assert.Equal(t, []string{"400 Fifth Avenue"}, addr.StreetLines)
	assert.Equal(t, "2125550134", req.RequestedShipment.Recipients[0].Contact.PhoneNumber)
}

func TestBuildPackageLineItem(t *testing.T) {
	a := testAssembler()

	req, err := a.Build(testOrder(), PackageDims{Weight: 2.5, Length: 10, Width: 8, Height: 4})
	require.NoError(t, err)

	require.Len(t, req.RequestedShipment.RequestedPackageLineItems, 1)
	pkg := req.RequestedShipment.RequestedPackageLineItems[0]
	assert.Equal(t, "LB", pkg.Weight.Units)
	assert.Equal(t, 2.5, pkg.Weight.Value)
	require.NotNil(t, pkg.Dimensions)
	assert.Equal(t, "IN", pkg.Dimensions.Units)
	assert.Equal(t, 10.0, pkg.Dimensions.Length)

	// Both charge payments bill the shipper account.
	assert.Equal(t, "740561073", req.AccountNumber.Value)
	assert.Equal(t, "SENDER", req.RequestedShipment.ShippingChargesPayment.PaymentType)
}

func TestBuildEmptyOrderFails(t *testing.T) {
	a := testAssembler()

	order := testOrder()
	order.Items = nil

	_, err := a.Build(order, PackageDims{Weight: 1, Length: 6, Width: 4, Height: 2})
	require.Error(t, err)
}
