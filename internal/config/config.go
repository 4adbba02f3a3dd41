package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// CarrierCredentials is one OAuth client-credentials pair.
// The shipping and tracking pairs are separate carrier products and are
// never interchangeable.
type CarrierCredentials struct {
	ClientID     string
	ClientSecret string
}

// CarrierConfig holds everything needed to talk to the carrier API.
type CarrierConfig struct {
	BaseURL       string
	AccountNumber string
	Shipping      CarrierCredentials
	Tracking      CarrierCredentials
}

// ShipperConfig is the fixed origin address printed on every shipment.
type ShipperConfig struct {
	Name         string
	PhoneNumber  string
	AddressLine1 string
	AddressLine2 string
	City         string
	StateCode    string
	PostalCode   string
	CountryCode  string
}

// Config is the full process configuration. It is built once in main and
// passed explicitly to the components that need it; nothing reads the
// environment after startup.
type Config struct {
	ServerAddr string
	CORSOrigin string

	DBDSN     string
	JWTSecret string

	// RedisAddr is optional; when empty the shipment dedupe cache is disabled.
	RedisAddr         string
	ShipmentDedupeTTL time.Duration

	Carrier CarrierConfig
	Shipper ShipperConfig

	// Customs values are declared in the settlement currency; prices in the
	// catalog are in the local currency.
	LocalCurrency      string
	SettlementCurrency string
	SettlementRate     float64

	// PlaceholderPhone is substituted when a recipient phone number is too
	// short for the carrier to accept.
	PlaceholderPhone string
}

// Load reads the .env file (if present) and builds the Config.
// It fails fast on anything the fulfillment engine cannot run without.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg := &Config{
		ServerAddr:         getEnv("SERVER_ADDR", ":8080"),
		CORSOrigin:         getEnv("CORS_ORIGIN", "http://localhost:5173"),
		DBDSN:              os.Getenv("DB_DSN"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		ShipmentDedupeTTL:  getEnvDuration("SHIPMENT_DEDUPE_TTL", 24*time.Hour),
		LocalCurrency:      getEnv("LOCAL_CURRENCY", "INR"),
		SettlementCurrency: getEnv("SETTLEMENT_CURRENCY", "USD"),
		SettlementRate:     getEnvFloat("SETTLEMENT_RATE", 0.012),
		PlaceholderPhone:   getEnv("CARRIER_PLACEHOLDER_PHONE", "9999999999"),
		Carrier: CarrierConfig{
			BaseURL:       getEnv("CARRIER_BASE_URL", "https://apis-sandbox.fedex.com"),
			AccountNumber: os.Getenv("CARRIER_ACCOUNT_NUMBER"),
			Shipping: CarrierCredentials{
				ClientID:     os.Getenv("CARRIER_SHIPPING_CLIENT_ID"),
				ClientSecret: os.Getenv("CARRIER_SHIPPING_CLIENT_SECRET"),
			},
			Tracking: CarrierCredentials{
				ClientID:     os.Getenv("CARRIER_TRACKING_CLIENT_ID"),
				ClientSecret: os.Getenv("CARRIER_TRACKING_CLIENT_SECRET"),
			},
		},
		Shipper: ShipperConfig{
			Name:         getEnv("SHIPPER_NAME", "Zayra Jewels"),
			PhoneNumber:  os.Getenv("SHIPPER_PHONE"),
			AddressLine1: os.Getenv("SHIPPER_ADDRESS_LINE1"),
			AddressLine2: os.Getenv("SHIPPER_ADDRESS_LINE2"),
			City:         os.Getenv("SHIPPER_CITY"),
			StateCode:    os.Getenv("SHIPPER_STATE_CODE"),
			PostalCode:   os.Getenv("SHIPPER_POSTAL_CODE"),
			CountryCode:  getEnv("SHIPPER_COUNTRY_CODE", "IN"),
		},
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if cfg.Carrier.AccountNumber == "" {
		return nil, fmt.Errorf("CARRIER_ACCOUNT_NUMBER environment variable is required")
	}
	if cfg.Carrier.Shipping.ClientID == "" || cfg.Carrier.Shipping.ClientSecret == "" {
		return nil, fmt.Errorf("CARRIER_SHIPPING_CLIENT_ID / CARRIER_SHIPPING_CLIENT_SECRET are required")
	}
	if cfg.Carrier.Tracking.ClientID == "" || cfg.Carrier.Tracking.ClientSecret == "" {
		return nil, fmt.Errorf("CARRIER_TRACKING_CLIENT_ID / CARRIER_TRACKING_CLIENT_SECRET are required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("WARNING: invalid float for %s (%q), using default %v", key, v, fallback)
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("WARNING: invalid duration for %s (%q), using default %v", key, v, fallback)
		return fallback
	}
	return d
}
