package service

import "errors"

var (
	ErrValidation              = errors.New("validation failed")
	ErrNotFound                = errors.New("not found")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrNotLoggedIn             = errors.New("not logged in")
	ErrSessionNotFound         = errors.New("session not found")
	ErrForbidden               = errors.New("forbidden")
	ErrCartEmpty               = errors.New("cart is empty")
	ErrInvalidQuantity         = errors.New("invalid quantity")
	ErrProductNotFound         = errors.New("product not found")
	ErrProductOutOfStock       = errors.New("product out of stock")
	ErrProductFetchFailed      = errors.New("product fetch failed")
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderSubmitFailed       = errors.New("order submit failed")
	ErrOrderFetchFailed        = errors.New("order fetch failed")
	ErrOrderStatusInvalid      = errors.New("order status invalid")
	ErrOrderTransitionInvalid  = errors.New("order status transition not allowed")
	ErrOrderUpdateFailed       = errors.New("order update failed")
	ErrNotificationFetchFailed = errors.New("notification fetch failed")
)
