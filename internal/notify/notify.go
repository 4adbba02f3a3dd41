// Package notify is the boundary to customer notifications. Transactional
// email delivery is an external collaborator; this package only defines the
// events fulfillment emits and a logging implementation for environments
// without a mail provider wired up.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/zayrajewels/zayra-golang/internal/models"
)

// Notifier receives order lifecycle events. Implementations must not block
// fulfillment: failures are logged, never propagated.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *models.Order)
	OrderShipped(ctx context.Context, order *models.Order, trackingNumber string)
}

// LogNotifier writes events to the structured log.
type LogNotifier struct {
	Logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger.With().Str("component", "notify").Logger()}
}

func (n *LogNotifier) OrderPlaced(ctx context.Context, order *models.Order) {
	n.Logger.Info().Int64("orderId", order.ID).Int64("userId", order.UserID).
		Float64("totalAmount", order.TotalAmount).Msg("order placed")
}

func (n *LogNotifier) OrderShipped(ctx context.Context, order *models.Order, trackingNumber string) {
	n.Logger.Info().Int64("orderId", order.ID).Str("trackingNumber", trackingNumber).
		Msg("order shipped")
}
