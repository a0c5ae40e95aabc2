package service

import (
	"testing"

	"github.com/artisanhub/internal/constants"
)

func TestIsTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusProcessing, true},
		{constants.OrderStatusPending, constants.OrderStatusDelivered, true},
		{constants.OrderStatusPending, constants.OrderStatusPending, false},
		{constants.OrderStatusConfirmed, constants.OrderStatusProcessing, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusCancelled, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusShipped, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusPending, false},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped, true},
		{constants.OrderStatusProcessing, constants.OrderStatusCancelled, false},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipped, constants.OrderStatusCancelled, false},
		{constants.OrderStatusShipped, constants.OrderStatusProcessing, false},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{constants.OrderStatusCancelled, constants.OrderStatusPending, false},
		{constants.OrderStatusDelivered, constants.OrderStatusShipped, false},
		{constants.OrderStatusCancelled, constants.OrderStatusDelivered, false},
		{"unknown", constants.OrderStatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := isTransitionAllowed(tc.from, tc.to); got != tc.want {
			t.Errorf("%s -> %s: want %v got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestNormalizeOrderStatus(t *testing.T) {
	if got := normalizeOrderStatus("  Shipped "); got != constants.OrderStatusShipped {
		t.Fatalf("want shipped got %q", got)
	}
	if isKnownOrderStatus("") {
		t.Fatalf("empty status must not be known")
	}
	if !isCancellable(constants.OrderStatusConfirmed) || isCancellable(constants.OrderStatusShipped) {
		t.Fatalf("cancellable set wrong")
	}
}
