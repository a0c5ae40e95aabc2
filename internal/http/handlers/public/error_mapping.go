package public

import (
	handlershared "github.com/artisanhub/internal/http/handlers/shared"
	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = handlershared.MappedError

var authErrorRules = []mappedHandlerError{
	{Target: service.ErrEmailExists, Code: response.CodeBadRequest, Message: "User already exists with this email"},
	{Target: service.ErrRoleNotAllowed, Code: response.CodeBadRequest, Message: "Role must be either customer or artisan"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Message: "Invalid email or password"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Message: "Current password is incorrect"},
	{Target: service.ErrProfileEmpty, Code: response.CodeBadRequest, Message: "No profile fields to update"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Message: "User not found"},
}

var productErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Message: "Product not found"},
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Message: "You can only manage your own products"},
}

var cartErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Message: "Product not found"},
	{Target: service.ErrProductUnavailable, Code: response.CodeBadRequest, Message: "Product is not available"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Message: "Item not found in cart"},
}

var orderErrorRules = []mappedHandlerError{
	{Target: service.ErrEmptyCart, Code: response.CodeBadRequest, Message: "Cart is empty"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Message: "Order not found"},
}

var reviewErrorRules = []mappedHandlerError{
	{Target: service.ErrReviewNotFound, Code: response.CodeNotFound, Message: "Review not found"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Message: "Product not found"},
	{Target: service.ErrDuplicateReview, Code: response.CodeBadRequest, Message: "You have already reviewed this product for this order"},
	{Target: service.ErrReviewNotEligible, Code: response.CodeBadRequest, Message: "You can only review products from delivered orders"},
}

var wishlistErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Message: "Product not found or inactive"},
	{Target: service.ErrAlreadyInWishlist, Code: response.CodeBadRequest, Message: "Product already in wishlist"},
	{Target: service.ErrWishlistItemNotFound, Code: response.CodeNotFound, Message: "Product not found in wishlist"},
}

var notificationErrorRules = []mappedHandlerError{
	{Target: service.ErrNotificationNotFound, Code: response.CodeNotFound, Message: "Notification not found"},
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackMsg string) {
	handlershared.RespondMappedError(c, err, rules, fallbackMsg)
}

func respondAuthError(c *gin.Context, err error, fallbackMsg string) {
	respondWithMappedError(c, err, authErrorRules, fallbackMsg)
}

func respondProductError(c *gin.Context, err error, fallbackMsg string) {
	respondWithMappedError(c, err, productErrorRules, fallbackMsg)
}

func respondCartError(c *gin.Context, err error, fallbackMsg string) {
	respondWithMappedError(c, err, cartErrorRules, fallbackMsg)
}

func respondOrderError(c *gin.Context, err error, fallbackMsg string) {
	respondWithMappedError(c, err, handlershared.ConcatMappedErrors(orderErrorRules, cartErrorRules), fallbackMsg)
}

func respondReviewError(c *gin.Context, err error, fallbackMsg string) {
	respondWithMappedError(c, err, reviewErrorRules, fallbackMsg)
}
