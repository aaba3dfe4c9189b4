package handlers

import (
	"github.com/ghuser/storefront/pkg/jsonapi"
	"github.com/ghuser/storefront/services/merchant/domain/models"
)

// MerchantAttributes are the attributes of a "merchant" resource.
type MerchantAttributes struct {
	Name string `json:"name" example:"Schroeder-Jerde"`
} // @name MerchantAttributes

// MerchantResource documents one "merchant" entry of data.
type MerchantResource struct {
	ID         string             `json:"id"   example:"1"`
	Type       string             `json:"type" example:"merchant"`
	Attributes MerchantAttributes `json:"attributes"`
} // @name MerchantResource

// MerchantDocument documents a single-merchant response.
type MerchantDocument struct {
	Data MerchantResource `json:"data"`
} // @name MerchantDocument

// MerchantListDocument documents a merchant collection response.
type MerchantListDocument struct {
	Data []MerchantResource `json:"data"`
} // @name MerchantListDocument

// ErrorResponse is returned for not-found and unexpected errors.
type ErrorResponse struct {
	Error string `json:"error" example:"merchant not found"`
} // @name ErrorResponse

// MerchantSerializer renders merchants as "merchant" resources.
type MerchantSerializer struct{}

var _ jsonapi.Serializer[*models.Merchant] = MerchantSerializer{}

func (MerchantSerializer) Type() string { return "merchant" }

func (MerchantSerializer) ID(m *models.Merchant) int64 { return m.ID }

func (MerchantSerializer) Attributes(m *models.Merchant) any {
	return MerchantAttributes{Name: m.Name.String()}
}
