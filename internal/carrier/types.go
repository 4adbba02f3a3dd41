package carrier

// Wire types for the carrier's REST API. Field names follow the carrier's
// JSON contract; only the fields this system reads or writes are modeled.

// Money is an amount in a named currency.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Weight is a weight with its unit (LB for customs lines).
type Weight struct {
	Units string  `json:"units"`
	Value float64 `json:"value"`
}

// Dimensions are package dimensions in Units (IN or CM).
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Units  string  `json:"units"`
}

// Commodity is one customs-declarable line item.
type Commodity struct {
	Description          string `json:"description"`
	CountryOfManufacture string `json:"countryOfManufacture"`
	Quantity             int    `json:"quantity"`
	QuantityUnits        string `json:"quantityUnits"`
	UnitPrice            Money  `json:"unitPrice"`
	CustomsValue         Money  `json:"customsValue"`
	Weight               Weight `json:"weight"`
	HarmonizedCode       string `json:"harmonizedCode,omitempty"`
}

// Contact identifies a person on a shipment party.
type Contact struct {
	PersonName  string `json:"personName"`
	PhoneNumber string `json:"phoneNumber"`
}

// PartyAddress is a street address in carrier form.
type PartyAddress struct {
	StreetLines         []string `json:"streetLines"`
	City                string   `json:"city"`
	StateOrProvinceCode string   `json:"stateOrProvinceCode"`
	PostalCode          string   `json:"postalCode"`
	CountryCode         string   `json:"countryCode"`
}

// Party is a shipper or recipient.
type Party struct {
	Contact Contact      `json:"contact"`
	Address PartyAddress `json:"address"`
}

// AccountNumber wraps the carrier account.
type AccountNumber struct {
	Value string `json:"value"`
}

// Payor names the account responsible for a payment.
type Payor struct {
	ResponsibleParty struct {
		AccountNumber AccountNumber `json:"accountNumber"`
	} `json:"responsibleParty"`
}

// Payment describes who pays shipping charges or duties.
type Payment struct {
	PaymentType string `json:"paymentType"`
	Payor       *Payor `json:"payor,omitempty"`
}

// CustomsClearanceDetail is the customs declaration block.
type CustomsClearanceDetail struct {
	DutiesPayment     Payment     `json:"dutiesPayment"`
	TotalCustomsValue Money       `json:"totalCustomsValue"`
	Commodities       []Commodity `json:"commodities"`
}

// RequestedPackageLineItem is one physical package on the shipment.
type RequestedPackageLineItem struct {
	Weight     Weight      `json:"weight"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
}

// LabelSpecification selects label output format.
type LabelSpecification struct {
	ImageType      string `json:"imageType"`
	LabelStockType string `json:"labelStockType"`
}

// RequestedShipment is the body of a shipment-creation call.
type RequestedShipment struct {
	Shipper                   Party                      `json:"shipper"`
	Recipients                []Party                    `json:"recipients"`
	ShipDatestamp             string                     `json:"shipDatestamp"`
	ServiceType               string                     `json:"serviceType"`
	PackagingType             string                     `json:"packagingType"`
	PickupType                string                     `json:"pickupType"`
	ShippingChargesPayment    Payment                    `json:"shippingChargesPayment"`
	LabelSpecification        LabelSpecification         `json:"labelSpecification"`
	CustomsClearanceDetail    *CustomsClearanceDetail    `json:"customsClearanceDetail,omitempty"`
	RequestedPackageLineItems []RequestedPackageLineItem `json:"requestedPackageLineItems"`
}

// CreateShipmentRequest is the top-level shipment-creation payload.
type CreateShipmentRequest struct {
	LabelResponseOptions string            `json:"labelResponseOptions"`
	RequestedShipment    RequestedShipment `json:"requestedShipment"`
	AccountNumber        AccountNumber     `json:"accountNumber"`
}

// Shipment-creation response shapes.

type packageDocument struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
}

type pieceResponse struct {
	TrackingNumber   string            `json:"trackingNumber"`
	PackageDocuments []packageDocument `json:"packageDocuments"`
}

type transactionShipment struct {
	MasterTrackingNumber string          `json:"masterTrackingNumber"`
	ServiceType          string          `json:"serviceType"`
	ServiceName          string          `json:"serviceName"`
	ShipDatestamp        string          `json:"shipDatestamp"`
	PieceResponses       []pieceResponse `json:"pieceResponses"`
}

type createShipmentResponse struct {
	TransactionID string `json:"transactionId"`
	Output        struct {
		TransactionShipments []transactionShipment `json:"transactionShipments"`
	} `json:"output"`
}

// ShipmentResult is what the rest of the system needs from a successful
// shipment creation.
type ShipmentResult struct {
	TrackingNumber string
	LabelURL       string
	ServiceType    string
	ServiceName    string
}

// Address validation shapes.

// ResolveAddressRequest validates a single address.
type ResolveAddressRequest struct {
	AddressesToValidate []AddressToValidate `json:"addressesToValidate"`
}

// AddressToValidate wraps one address for the resolution endpoint.
type AddressToValidate struct {
	Address PartyAddress `json:"address"`
}

type resolveAddressResponse struct {
	TransactionID string `json:"transactionId"`
	Output        struct {
		ResolvedAddresses []ResolvedAddress `json:"resolvedAddresses"`
	} `json:"output"`
}

// ResolvedAddress is the carrier's corrected view of an address.
type ResolvedAddress struct {
	StreetLinesToken    []string `json:"streetLinesToken"`
	City                string   `json:"city"`
	StateOrProvinceCode string   `json:"stateOrProvinceCode"`
	PostalCode          string   `json:"postalCode"`
	CountryCode         string   `json:"countryCode"`
	Classification      string   `json:"classification"`
}

// Tracking shapes.

type trackRequest struct {
	IncludeDetailedScans bool                `json:"includeDetailedScans"`
	TrackingInfo         []trackingInfoEntry `json:"trackingInfo"`
}

type trackingInfoEntry struct {
	TrackingNumberInfo trackingNumberInfo `json:"trackingNumberInfo"`
}

type trackingNumberInfo struct {
	TrackingNumber string `json:"trackingNumber"`
}

type scanLocation struct {
	City                string `json:"city"`
	StateOrProvinceCode string `json:"stateOrProvinceCode"`
	CountryCode         string `json:"countryCode"`
}

type scanEvent struct {
	Date                 string       `json:"date"`
	EventDescription     string       `json:"eventDescription"`
	ExceptionDescription string       `json:"exceptionDescription"`
	ScanLocation         scanLocation `json:"scanLocation"`
}

type latestStatusDetail struct {
	Description string `json:"description"`
}

// trackResultNode carries scan events either directly or nested one level
// deeper under trackResults; real responses use both shapes.
type trackResultNode struct {
	TrackingNumberInfo trackingNumberInfo  `json:"trackingNumberInfo"`
	LatestStatusDetail *latestStatusDetail `json:"latestStatusDetail"`
	ScanEvents         []scanEvent         `json:"scanEvents"`
	TrackResults       []trackResultNode   `json:"trackResults"`
}

type trackResponse struct {
	TransactionID string `json:"transactionId"`
	Output        struct {
		CompleteTrackResults []trackResultNode `json:"completeTrackResults"`
	} `json:"output"`
}

// TrackLocation is a normalized scan location.
type TrackLocation struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// TrackEvent is one normalized tracking scan.
type TrackEvent struct {
	Date        string        `json:"date"`
	Description string        `json:"description"`
	Exception   *string       `json:"exception,omitempty"`
	Location    TrackLocation `json:"location"`
}

// TrackInfo is the normalized tracking result returned to callers.
type TrackInfo struct {
	TrackingNumber string       `json:"trackingNumber"`
	LatestStatus   string       `json:"latestStatus"`
	Events         []TrackEvent `json:"events"`
}
