package main

import (
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/zayrajewels/zayra-golang/internal/auth"
	"github.com/zayrajewels/zayra-golang/internal/cache"
	"github.com/zayrajewels/zayra-golang/internal/carrier"
	"github.com/zayrajewels/zayra-golang/internal/catalog"
	"github.com/zayrajewels/zayra-golang/internal/config"
	"github.com/zayrajewels/zayra-golang/internal/database"
	"github.com/zayrajewels/zayra-golang/internal/fulfillment"
	"github.com/zayrajewels/zayra-golang/internal/handlers"
	"github.com/zayrajewels/zayra-golang/internal/notify"
	"github.com/zayrajewels/zayra-golang/internal/orders"
	"github.com/zayrajewels/zayra-golang/internal/routes"
	"github.com/zayrajewels/zayra-golang/internal/shipment"
)

func main() {
	// 1. --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// 2. --- Database Connection ---
	db, err := database.Open(cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 3. --- Shipment Dedupe Cache (optional) ---
	var dedupe cache.Cache
	if cfg.RedisAddr != "" {
		dedupe = cache.NewRedisCache(cfg.RedisAddr, "zayra")
		log.Println("Shipment dedupe cache enabled")
	} else {
		log.Println("WARNING: REDIS_ADDR not set, shipment dedupe cache disabled")
	}

	// 4. --- Fulfillment Wiring ---
	orderRepo := orders.NewRepository(db)
	carrierClient := carrier.NewClient(cfg.Carrier, logger)

	service := &fulfillment.Service{
		Orders:    orderRepo,
		Catalog:   catalog.NewMySQLCatalog(db),
		Carrier:   carrierClient,
		Assembler: shipment.NewAssembler(cfg),
		Dedupe:    dedupe,
		DedupeTTL: cfg.ShipmentDedupeTTL,
		Notifier:  notify.NewLogNotifier(logger),
		Logger:    logger.With().Str("component", "fulfillment").Logger(),
	}

	app := &handlers.Handlers{
		DB:          db,
		Config:      cfg,
		Tokens:      auth.NewTokenManager(cfg.JWTSecret),
		Orders:      orderRepo,
		Fulfillment: service,
	}

	// 5. --- Router & Server ---
	router := routes.SetupRouter(app)

	log.Printf("Starting Zayra Jewels API server on %s...", cfg.ServerAddr)
	if err := router.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
