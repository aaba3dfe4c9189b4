// Package errhttp maps domain sentinel errors to HTTP responses.
// Add a case to classify for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/ghuser/storefront/pkg/httpx"
	"github.com/ghuser/storefront/pkg/jsonapi"
	"github.com/ghuser/storefront/pkg/logger"
	"github.com/ghuser/storefront/pkg/telemetry"
	itemdomain "github.com/ghuser/storefront/services/item/domain"
	merchantdomain "github.com/ghuser/storefront/services/merchant/domain"
)

// Options controls how unexpected errors are reported.
type Options struct {
	// Production hides 5xx messages from clients.
	Production bool
	Logger     logger.Logger
}

var opts atomic.Pointer[Options]

func init() {
	opts.Store(&Options{Logger: logger.Nop()})
}

// Configure replaces the package options. Call once at startup.
func Configure(o Options) {
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	opts.Store(&o)
}

// WriteError maps err to a response and writes it.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
//
//   - not found: 404 {"error": msg}
//   - field validation failures: 400 {"errors":[{"detail":{...}}]}
//   - anything else: 500 {"error": msg}, logged and reported to Sentry
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, fields := classify(err)
	if fields != nil {
		jsonapi.WriteErrors(w, status, fields)
		return
	}

	o := opts.Load()
	if status >= http.StatusInternalServerError {
		o.Logger.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
		telemetry.CaptureError(r.Context(), err, map[string]string{"path": r.URL.Path})
	}
	httpx.JSONError(w, status, httpx.SafeError(err, status, o.Production))
}

func classify(err error) (int, jsonapi.FieldErrors) {
	switch {
	case errors.Is(err, merchantdomain.ErrMerchantNotFound),
		errors.Is(err, itemdomain.ErrMerchantNotFound),
		errors.Is(err, itemdomain.ErrItemNotFound),
		errors.Is(err, httpx.ErrInvalidID):
		return http.StatusNotFound, nil // 404
	case errors.Is(err, itemdomain.ErrMerchantMustExist):
		return http.StatusBadRequest, jsonapi.FieldErrors{"merchant": {"must exist"}}
	case errors.Is(err, merchantdomain.ErrInvalidMerchantName):
		return http.StatusBadRequest, jsonapi.FieldErrors{"name": {"is invalid"}}
	default:
		return http.StatusInternalServerError, nil // 500
	}
}
