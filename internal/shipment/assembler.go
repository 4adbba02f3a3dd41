// Package shipment turns a stored Order into a carrier shipment-creation
// request: recipient normalization, per-item customs commodities and the
// package line item.
package shipment

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zayrajewels/zayra-golang/internal/addressing"
	"github.com/zayrajewels/zayra-golang/internal/carrier"
	"github.com/zayrajewels/zayra-golang/internal/config"
	"github.com/zayrajewels/zayra-golang/internal/models"
	"github.com/zayrajewels/zayra-golang/internal/units"
)

// Carrier constants for every shipment this storefront creates.
const (
	serviceType          = "INTERNATIONAL_PRIORITY"
	packagingType        = "YOUR_PACKAGING"
	pickupType           = "USE_SCHEDULED_PICKUP"
	labelResponseOptions = "URL_ONLY"
	labelImageType       = "PDF"
	labelStockType       = "PAPER_85X11_TOP_HALF_LABEL"
	paymentTypeSender    = "SENDER"
	quantityUnits        = "PCS"

	// maxCommodityDescription is the carrier's limit on customs line text.
	maxCommodityDescription = 35
)

// PackageDims are the parsed package measurements for one shipment:
// weight in LB, dimensions in IN.
type PackageDims struct {
	Weight float64
	Length float64
	Width  float64
	Height float64
}

// Assembler builds carrier requests from orders using the fixed shipper
// block and settlement-currency policy from config.
type Assembler struct {
	shipper    config.ShipperConfig
	account    string
	normalizer *addressing.Normalizer
	rate       float64
	settleCur  string
}

func NewAssembler(cfg *config.Config) *Assembler {
	return &Assembler{
		shipper:    cfg.Shipper,
		account:    cfg.Carrier.AccountNumber,
		normalizer: addressing.NewNormalizer(cfg.PlaceholderPhone),
		rate:       cfg.SettlementRate,
		settleCur:  cfg.SettlementCurrency,
	}
}

// Build assembles the full shipment-creation request for an order.
func (a *Assembler) Build(order *models.Order, dims PackageDims) (*carrier.CreateShipmentRequest, error) {
	commodities, totalCustomsValue, err := a.buildCommodities(order.Items)
	if err != nil {
		return nil, err
	}

	recipient := a.normalizer.Normalize(order.ShippingAddress)

	payment := carrier.Payment{PaymentType: paymentTypeSender, Payor: &carrier.Payor{}}
	payment.Payor.ResponsibleParty.AccountNumber.Value = a.account

	req := &carrier.CreateShipmentRequest{
		LabelResponseOptions: labelResponseOptions,
		AccountNumber:        carrier.AccountNumber{Value: a.account},
		RequestedShipment: carrier.RequestedShipment{
			Shipper: carrier.Party{
				Contact: carrier.Contact{
					PersonName:  a.shipper.Name,
					PhoneNumber: a.shipper.PhoneNumber,
				},
				Address: carrier.PartyAddress{
					StreetLines:         addressing.SplitStreetLines(a.shipper.AddressLine1, a.shipper.AddressLine2),
					City:                a.shipper.City,
					StateOrProvinceCode: a.shipper.StateCode,
					PostalCode:          a.shipper.PostalCode,
					CountryCode:         a.shipper.CountryCode,
				},
			},
			Recipients: []carrier.Party{
				{
					Contact: carrier.Contact{
						PersonName:  recipient.FullName,
						PhoneNumber: recipient.PhoneNumber,
					},
					Address: carrier.PartyAddress{
						StreetLines:         recipient.StreetLines,
						City:                recipient.City,
						StateOrProvinceCode: recipient.StateCode,
						PostalCode:          recipient.PostalCode,
						CountryCode:         recipient.CountryCode,
					},
				},
			},
			ShipDatestamp:          time.Now().Format("2006-01-02"),
			ServiceType:            serviceType,
			PackagingType:          packagingType,
			PickupType:             pickupType,
			ShippingChargesPayment: payment,
			LabelSpecification: carrier.LabelSpecification{
				ImageType:      labelImageType,
				LabelStockType: labelStockType,
			},
			CustomsClearanceDetail: &carrier.CustomsClearanceDetail{
				DutiesPayment:     payment,
				TotalCustomsValue: carrier.Money{Amount: totalCustomsValue, Currency: a.settleCur},
				Commodities:       commodities,
			},
			RequestedPackageLineItems: []carrier.RequestedPackageLineItem{
				{
					Weight: carrier.Weight{Units: models.WeightUnitLB, Value: dims.Weight},
					Dimensions: &carrier.Dimensions{
						Length: dims.Length,
						Width:  dims.Width,
						Height: dims.Height,
						Units:  "IN",
					},
				},
			},
		},
	}

	return req, nil
}

// buildCommodities derives one customs line per order item and the floored
// aggregate customs value.
func (a *Assembler) buildCommodities(items []models.OrderItem) ([]carrier.Commodity, float64, error) {
	if len(items) == 0 {
		return nil, 0, fmt.Errorf("order has no items to declare")
	}

	commodities := make([]carrier.Commodity, 0, len(items))
	total := decimal.Zero

	for _, item := range items {
		weightLB, err := units.WeightToPounds(item.WeightAtPurchase, item.WeightUnitAtPurchase)
		if err != nil {
			return nil, 0, fmt.Errorf("item %d: %w", item.ID, err)
		}

		unitPrice := units.ConvertCurrency(item.PriceAtPurchase, a.rate)
		customsValue := units.FloorCustomsValue(units.LineTotal(unitPrice, item.Quantity))

		origin := a.shipper.CountryCode
		if item.CountryOfOriginAtPurchase != nil && *item.CountryOfOriginAtPurchase != "" {
			origin = *item.CountryOfOriginAtPurchase
		}

		commodity := carrier.Commodity{
			Description:          truncate(item.NameAtPurchase, maxCommodityDescription),
			CountryOfManufacture: origin,
			Quantity:             item.Quantity,
			QuantityUnits:        quantityUnits,
			UnitPrice:            carrier.Money{Amount: unitPrice, Currency: a.settleCur},
			CustomsValue:         carrier.Money{Amount: customsValue, Currency: a.settleCur},
			Weight:               carrier.Weight{Units: models.WeightUnitLB, Value: weightLB},
		}
		if item.HSCodeAtPurchase != nil {
			commodity.HarmonizedCode = *item.HSCodeAtPurchase
		}

		commodities = append(commodities, commodity)
		total = total.Add(decimal.NewFromFloat(customsValue))
	}

	totalFloat, _ := total.Round(2).Float64()
	return commodities, units.FloorCustomsValue(totalFloat), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
