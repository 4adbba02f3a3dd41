package orders

import (
	"fmt"

	"github.com/zayrajewels/zayra-golang/internal/models"
)

// transitions is the allowed forward path of the order lifecycle.
// Cancelled is reachable from any non-terminal state. Shipped is normally
// entered through shipment creation, which also writes the tracking number;
// an admin may force past the table for exceptional cases.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPlaced:     {models.StatusProcessing, models.StatusShipped, models.StatusCancelled},
	models.StatusProcessing: {models.StatusShipped, models.StatusCancelled},
	models.StatusShipped:    {models.StatusDelivered, models.StatusCancelled},
	models.StatusDelivered:  {},
	models.StatusCancelled:  {},
}

// CanTransition reports whether from → to is an allowed lifecycle step.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from s.
func IsTerminal(s models.OrderStatus) bool {
	return len(transitions[s]) == 0
}

// InvalidTransitionError is returned when a status update violates the
// lifecycle and was not forced.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition: %s -> %s", e.From, e.To)
}
