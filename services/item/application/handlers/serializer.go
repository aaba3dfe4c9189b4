package handlers

import (
	"github.com/ghuser/storefront/pkg/jsonapi"
	"github.com/ghuser/storefront/services/item/domain/models"
)

// ItemAttributes are the attributes of an "item" resource.
type ItemAttributes struct {
	Name        string        `json:"name"        example:"Widget"`
	Description string        `json:"description" example:"A widget"`
	UnitPrice   jsonapi.Float `json:"unit_price"  example:"9.99" swaggertype:"number"`
	MerchantID  int64         `json:"merchant_id" example:"1"`
} // @name ItemAttributes

// ItemResource documents one "item" entry of data.
type ItemResource struct {
	ID         string         `json:"id"   example:"1"`
	Type       string         `json:"type" example:"item"`
	Attributes ItemAttributes `json:"attributes"`
} // @name ItemResource

// ItemDocument documents a single-item response.
type ItemDocument struct {
	Data ItemResource `json:"data"`
} // @name ItemDocument

// ItemListDocument documents an item collection response.
type ItemListDocument struct {
	Data []ItemResource `json:"data"`
} // @name ItemListDocument

// ErrorResponse is returned for not-found and unexpected errors.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ItemErrorResponse

// ValidationErrorResponse is returned when the request is rejected.
type ValidationErrorResponse struct {
	Errors []jsonapi.ErrorObject `json:"errors"`
} // @name ValidationErrorResponse

// ItemSerializer renders items as "item" resources. The price is exact in
// the domain and a JSON float on the wire.
type ItemSerializer struct{}

var _ jsonapi.Serializer[*models.Item] = ItemSerializer{}

func (ItemSerializer) Type() string { return "item" }

func (ItemSerializer) ID(it *models.Item) int64 { return it.ID }

func (ItemSerializer) Attributes(it *models.Item) any {
	return ItemAttributes{
		Name:        it.Name,
		Description: it.Description,
		UnitPrice:   jsonapi.Float(it.UnitPrice.InexactFloat64()),
		MerchantID:  it.MerchantID,
	}
}
