package domain

import "errors"

// Sentinel errors for the merchant domain. Use errors.Is() to check these.
var (
	// ErrMerchantNotFound indicates the requested merchant does not exist.
	ErrMerchantNotFound = errors.New("merchant not found")

	// ErrInvalidMerchantName indicates the merchant name is blank or too long.
	ErrInvalidMerchantName = errors.New("invalid merchant name")
)
