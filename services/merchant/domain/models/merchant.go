package models

import "time"

// Merchant is the aggregate root of this bounded context. It owns items and
// invoices; those are reached through their own contexts by merchant id.
type Merchant struct {
	ID        int64 // assigned by the store on save
	Name      MerchantName
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMerchant builds an unsaved Merchant.
func NewMerchant(name MerchantName) *Merchant {
	now := time.Now().UTC()
	return &Merchant{Name: name, CreatedAt: now, UpdatedAt: now}
}
