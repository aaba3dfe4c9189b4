package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MerchantName is a value object for a merchant's display name.
// It is never blank and at most 255 characters; surrounding whitespace is kept.
type MerchantName string

const maxMerchantNameLength = 255

// NewMerchantName validates s.
func NewMerchantName(s string) (MerchantName, error) {
	if strings.TrimSpace(s) == "" {
		return "", errors.New("merchant name must not be blank")
	}
	if utf8.RuneCountInString(s) > maxMerchantNameLength {
		return "", fmt.Errorf("merchant name must not exceed %d characters", maxMerchantNameLength)
	}
	return MerchantName(s), nil
}

// String returns the underlying string value.
func (n MerchantName) String() string {
	return string(n)
}
