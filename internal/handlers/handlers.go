package handlers

import (
	"database/sql"

	"github.com/zayrajewels/zayra-golang/internal/auth"
	"github.com/zayrajewels/zayra-golang/internal/config"
	"github.com/zayrajewels/zayra-golang/internal/fulfillment"
	"github.com/zayrajewels/zayra-golang/internal/orders"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB          *sql.DB
	Config      *config.Config
	Tokens      *auth.TokenManager
	Orders      *orders.Repository
	Fulfillment *fulfillment.Service
}
