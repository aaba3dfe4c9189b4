package handlers

import (
	"encoding/json"
	"reflect"

	"github.com/shopspring/decimal"

	"github.com/ghuser/storefront/services/item/domain/models"
)

// ItemParams are the permitted attributes under "item". Anything else in the
// body is ignored.
type ItemParams struct {
	Name        *string `json:"name"        example:"Widget"`
	Description *string `json:"description" example:"A widget"`
	UnitPrice   *Price  `json:"unit_price"  example:"9.99" swaggertype:"number"`
	MerchantID  *int64  `json:"merchant_id" example:"1"`
} // @name ItemParams

// ItemRequest is the body of POST /items and PATCH /items/{id}.
type ItemRequest struct {
	Item *ItemParams `json:"item" validate:"required"`
} // @name ItemRequest

// Price accepts a JSON number or a numeric string and keeps it exact.
// Values must have at most maxPriceIntegerDigits digits before the decimal
// point and maxPriceScale after it, which keeps them finite as float64 and
// bounds the text sent to Postgres.
type Price decimal.Decimal

const (
	maxPriceIntegerDigits = 15
	maxPriceScale         = 30
)

var priceType = reflect.TypeOf(decimal.Decimal{})

func (p *Price) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil || !priceInRange(d) {
		// Reported as a type error so the decoder attaches the field path.
		return &json.UnmarshalTypeError{Value: "price " + string(b), Type: priceType}
	}
	*p = Price(d)
	return nil
}

// priceInRange inspects only the exponent and coefficient; comparing against
// a bound would rescale and expand an exponent like 1e100000000.
func priceInRange(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -maxPriceScale {
		return false
	}
	return int64(d.NumDigits())+exp <= maxPriceIntegerDigits
}

func (p *ItemParams) empty() bool {
	return p.Name == nil && p.Description == nil && p.UnitPrice == nil && p.MerchantID == nil
}

func (p *ItemParams) patch() models.Patch {
	patch := models.Patch{
		Name:        p.Name,
		Description: p.Description,
		MerchantID:  p.MerchantID,
	}
	if p.UnitPrice != nil {
		d := decimal.Decimal(*p.UnitPrice)
		patch.UnitPrice = &d
	}
	return patch
}
