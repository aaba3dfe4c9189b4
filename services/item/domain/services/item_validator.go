// Package services contains stateless domain services for the item bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"

	itemdomain "github.com/ghuser/storefront/services/item/domain"
	"github.com/ghuser/storefront/services/item/domain/models"
)

// ValidateItemForSave checks the rules an item must satisfy before it is
// written. Name, description and price carry no presence rules; the only
// structural requirement is an owner reference. Whether that merchant exists
// is checked by the caller against the merchant context.
func ValidateItemForSave(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if item.MerchantID <= 0 {
		return itemdomain.ErrMerchantMustExist
	}
	return nil
}
