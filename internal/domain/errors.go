package domain

import "errors"

var (
	// Product errors
	ErrProductNotFound = errors.New("product not found")
	ErrNameRequired    = errors.New("product name is required")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrNegativeStock   = errors.New("stock must not be negative")

	// Sale errors
	ErrEmptyCart         = errors.New("at least one line item required")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrSaleNotFound      = errors.New("sale not found")

	// Expense errors
	ErrNegativeAmount = errors.New("amount must not be negative")
)
