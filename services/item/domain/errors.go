package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrMerchantMustExist indicates an item refers to a merchant that does not exist.
	// It is a field-level validation failure on "merchant".
	ErrMerchantMustExist = errors.New("merchant must exist")

	// ErrMerchantNotFound indicates the merchant whose items were requested does not exist.
	ErrMerchantNotFound = errors.New("merchant not found")
)
