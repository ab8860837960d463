package lifecycle

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ashishpimple94/boultindia-api/models"
)

// CancellationWindow is how long after placement a non-shipped order may
// be self-cancelled by the customer.
const CancellationWindow = 24 * time.Hour

// statusOrder is the canonical linear progression. Cancelled sits outside
// it and replaces the whole projection.
var statusOrder = []models.OrderStatus{
	models.OrderStatusPending,
	models.OrderStatusProcessing,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
}

var ErrInvalidStatus = errors.New("invalid order status")

// ParseStatus maps a request string to a known status.
func ParseStatus(s string) (models.OrderStatus, error) {
	switch models.OrderStatus(strings.ToLower(s)) {
	case models.OrderStatusPending:
		return models.OrderStatusPending, nil
	case models.OrderStatusProcessing:
		return models.OrderStatusProcessing, nil
	case models.OrderStatusShipped:
		return models.OrderStatusShipped, nil
	case models.OrderStatusDelivered:
		return models.OrderStatusDelivered, nil
	case models.OrderStatusCancelled:
		return models.OrderStatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Step is one entry of the linear progress projection.
type Step struct {
	Status    models.OrderStatus `json:"status"`
	Label     string             `json:"label"`
	Completed bool               `json:"completed"`
	Active    bool               `json:"active"`
}

var stepLabels = map[models.OrderStatus]string{
	models.OrderStatusPending:    "Order Placed",
	models.OrderStatusProcessing: "Processing",
	models.OrderStatusShipped:    "Shipped",
	models.OrderStatusDelivered:  "Delivered",
}

// Progress projects an order status onto the canonical steps. A step is
// completed when its index <= the current status index and active when it
// equals it. A cancelled order has no projection; callers render the
// cancelled terminal state instead.
func Progress(status models.OrderStatus) []Step {
	if status == models.OrderStatusCancelled {
		return nil
	}
	current := -1
	for i, s := range statusOrder {
		if s == status {
			current = i
		}
	}
	steps := make([]Step, len(statusOrder))
	for i, s := range statusOrder {
		steps[i] = Step{
			Status:    s,
			Label:     stepLabels[s],
			Completed: i <= current,
			Active:    i == current,
		}
	}
	return steps
}

// CanCancel reports whether the customer may still cancel: not once
// shipped, delivered or already cancelled, and only strictly inside the
// cancellation window.
func CanCancel(status models.OrderStatus, placedAt, now time.Time) bool {
	switch status {
	case models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled:
		return false
	}
	return now.Sub(placedAt) < CancellationWindow
}

// TimeRemaining renders the remaining cancellation window: minutes when
// under an hour remains, whole hours otherwise.
func TimeRemaining(placedAt, now time.Time) string {
	elapsed := now.Sub(placedAt).Hours()
	remaining := math.Max(0, CancellationWindow.Hours()-elapsed)

	if remaining == 0 {
		return "Cancellation period expired"
	}
	if remaining < 1 {
		return fmt.Sprintf("%d minutes remaining", int(math.Round(remaining*60)))
	}
	return fmt.Sprintf("%d hours remaining", int(math.Round(remaining)))
}

// CanTransition validates a status change. Customer cancellation goes
// through CanCancel; this guards the admin path: the linear flow only
// moves forward one step at a time, and cancellation is reachable from
// pending and processing only.
func CanTransition(from, to models.OrderStatus) bool {
	if from == to {
		return false
	}
	switch from {
	case models.OrderStatusPending:
		return to == models.OrderStatusProcessing || to == models.OrderStatusCancelled
	case models.OrderStatusProcessing:
		return to == models.OrderStatusShipped || to == models.OrderStatusCancelled
	case models.OrderStatusShipped:
		return to == models.OrderStatusDelivered
	default:
		// delivered and cancelled are terminal
		return false
	}
}
