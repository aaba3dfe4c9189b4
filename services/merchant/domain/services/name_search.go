// Package services contains stateless domain services for the merchant
// bounded context.
package services

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ghuser/storefront/services/merchant/domain/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern turns a free-text query into a LIKE/ILIKE pattern matching any
// name that contains query literally. % and _ in the query match themselves.
func LikePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

// NameContains reports whether name contains query, ignoring case.
// An empty query matches every name.
func NameContains(name models.MerchantName, query string) bool {
	return strings.Contains(strings.ToLower(name.String()), strings.ToLower(query))
}

// SortByName orders merchants by the bytes of their name, so uppercase sorts
// before lowercase, breaking ties by id. The Postgres queries order with
// COLLATE "C" to match.
func SortByName(ms []*models.Merchant) {
	slices.SortStableFunc(ms, func(a, b *models.Merchant) int {
		if c := strings.Compare(a.Name.String(), b.Name.String()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
