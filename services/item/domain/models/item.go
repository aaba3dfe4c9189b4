package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is the core aggregate for this bounded context. Every item belongs to
// exactly one merchant; the owner may change on update.
type Item struct {
	ID          int64 // assigned by the store on save
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	MerchantID  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewItem constructs an unsaved Item with current timestamps. Item attributes
// carry no presence rules; empty strings and a zero price are valid.
func NewItem(name, description string, unitPrice decimal.Decimal, merchantID int64) *Item {
	now := time.Now().UTC()
	return &Item{
		Name:        name,
		Description: description,
		UnitPrice:   unitPrice,
		MerchantID:  merchantID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Attribute names, as used in patches and change lists.
const (
	AttrName        = "name"
	AttrDescription = "description"
	AttrUnitPrice   = "unit_price"
	AttrMerchantID  = "merchant_id"
)

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	UnitPrice   *decimal.Decimal
	MerchantID  *int64
}

// IsEmpty reports whether the patch supplies no attributes.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.UnitPrice == nil && p.MerchantID == nil
}

// Apply writes the supplied attributes onto item and returns the names of
// those whose value actually changed. UpdatedAt moves only when something did.
func (p Patch) Apply(item *Item) []string {
	var changed []string
	if p.Name != nil && *p.Name != item.Name {
		item.Name = *p.Name
		changed = append(changed, AttrName)
	}
	if p.Description != nil && *p.Description != item.Description {
		item.Description = *p.Description
		changed = append(changed, AttrDescription)
	}
	if p.UnitPrice != nil && !p.UnitPrice.Equal(item.UnitPrice) {
		item.UnitPrice = *p.UnitPrice
		changed = append(changed, AttrUnitPrice)
	}
	if p.MerchantID != nil && *p.MerchantID != item.MerchantID {
		item.MerchantID = *p.MerchantID
		changed = append(changed, AttrMerchantID)
	}
	if len(changed) > 0 {
		item.UpdatedAt = time.Now().UTC()
	}
	return changed
}
