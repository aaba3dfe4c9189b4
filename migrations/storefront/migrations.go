// Package storefront embeds the goose migrations of the storefront schema.
package storefront

import "embed"

// FS holds every migration file, versioned by filename prefix.
//
//go:embed *.sql
var FS embed.FS
