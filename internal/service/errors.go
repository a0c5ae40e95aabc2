package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrProductNotFound      = fmt.Errorf("product %w", ErrNotFound)
	ErrOrderNotFound        = fmt.Errorf("order %w", ErrNotFound)
	ErrReviewNotFound       = fmt.Errorf("review %w", ErrNotFound)
	ErrCartItemNotFound     = fmt.Errorf("cart item %w", ErrNotFound)
	ErrWishlistItemNotFound = fmt.Errorf("wishlist item %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)

	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("invalid token: %w", ErrUnauthorized)
	ErrTokenRevoked       = fmt.Errorf("token revoked: %w", ErrUnauthorized)
	ErrUserDisabled       = fmt.Errorf("account disabled: %w", ErrForbidden)

	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidPassword    = errors.New("current password is incorrect")
	ErrRoleNotAllowed     = errors.New("role must be either customer or artisan")
	ErrProfileEmpty       = errors.New("nothing to update")
	ErrProductUnavailable = errors.New("product is not available")

	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicateReview   = errors.New("product already reviewed for this order")
	ErrReviewNotEligible = errors.New("only delivered purchases can be reviewed")
	ErrAlreadyInWishlist = errors.New("product already in wishlist")

	ErrOrderCreateFailed = errors.New("order create failed")
	ErrOrderUpdateFailed = errors.New("order update failed")
)

// StockError a line asks for more than the product holds
type StockError struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Available   int    `json:"available"`
	Requested   int    `json:"requested"`
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d", e.ProductName, e.Available, e.Requested)
}

func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// TransitionError requested status is not reachable from the current one
type TransitionError struct {
	Current   string `json:"current_status"`
	Requested string `json:"requested_status"`
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.Current, e.Requested)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
