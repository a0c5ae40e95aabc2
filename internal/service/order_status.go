package service

import (
	"strings"

	"github.com/artisanhub/internal/constants"
)

// forwardOrder lifecycle positions; a move may skip ahead but never go back
var forwardOrder = map[string]int{
	constants.OrderStatusPending:    0,
	constants.OrderStatusConfirmed:  1,
	constants.OrderStatusProcessing: 2,
	constants.OrderStatusShipped:    3,
	constants.OrderStatusDelivered:  4,
}

// cancellableFrom cancellation is only possible before processing starts
var cancellableFrom = map[string]bool{
	constants.OrderStatusPending:   true,
	constants.OrderStatusConfirmed: true,
}

var knownOrderStatuses = map[string]struct{}{
	constants.OrderStatusPending:    {},
	constants.OrderStatusConfirmed:  {},
	constants.OrderStatusProcessing: {},
	constants.OrderStatusShipped:    {},
	constants.OrderStatusDelivered:  {},
	constants.OrderStatusCancelled:  {},
}

func normalizeOrderStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// isKnownOrderStatus empty counts as unknown
func isKnownOrderStatus(status string) bool {
	_, ok := knownOrderStatuses[status]
	return ok
}

func isTransitionAllowed(current, target string) bool {
	if target == constants.OrderStatusCancelled {
		return cancellableFrom[current]
	}
	from, ok := forwardOrder[current]
	if !ok {
		return false
	}
	to, ok := forwardOrder[target]
	return ok && to > from
}

func isCancellable(status string) bool {
	return isTransitionAllowed(status, constants.OrderStatusCancelled)
}
