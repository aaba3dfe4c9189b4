// Package jsonapi renders resources into the JSON:API-style envelope used by
// every /api/v1 endpoint:
//
//	{"data": {"id": "1", "type": "item", "attributes": {...}}}
//	{"data": [{...}, {...}]}
//
// Identifiers are always strings on the wire. Resource types are lowercase and
// singular. Errors use {"errors": [{"detail": {"field": ["message"]}}]}.
package jsonapi

import (
	"net/http"
	"strconv"

	"github.com/ghuser/storefront/pkg/httpx"
)

// Resource is a single entry of "data".
type Resource struct {
	ID         *string `json:"id"`
	Type       *string `json:"type"`
	Attributes any     `json:"attributes"`
}

// Document is a response envelope holding one resource or a list of them.
type Document struct {
	Data any `json:"data"`
}

// FieldErrors maps an attribute name to its human-readable problems,
// e.g. {"merchant": ["must exist"]}.
type FieldErrors map[string][]string

// Add appends msg to the messages for field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// ErrorObject is one entry of "errors".
type ErrorObject struct {
	Detail FieldErrors `json:"detail"`
}

// ErrorDocument is the envelope for validation failures.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

// Serializer converts a domain value into its resource type, id and attributes.
type Serializer[T any] interface {
	Type() string
	ID(v T) int64
	Attributes(v T) any
}

// NewResource builds a Resource from an id, type and attributes.
func NewResource(id int64, typ string, attrs any) Resource {
	sid := strconv.FormatInt(id, 10)
	return Resource{ID: &sid, Type: &typ, Attributes: attrs}
}

// One wraps a single value.
func One[T any](s Serializer[T], v T) Document {
	return Document{Data: NewResource(s.ID(v), s.Type(), s.Attributes(v))}
}

// Many wraps a list of values, preserving order. A nil or empty list renders as [].
func Many[T any](s Serializer[T], vs []T) Document {
	data := make([]Resource, 0, len(vs))
	for _, v := range vs {
		data = append(data, NewResource(s.ID(v), s.Type(), s.Attributes(v)))
	}
	return Document{Data: data}
}

// EmptyShell is the "no match" sentinel: a successful body whose resource has
// null id and type and no attributes.
func EmptyShell() Document {
	return Document{Data: Resource{Attributes: struct{}{}}}
}

// Write renders doc with the given status.
func Write(w http.ResponseWriter, status int, doc Document) {
	httpx.JSON(w, status, doc)
}

// WriteErrors renders a field error envelope with the given status.
func WriteErrors(w http.ResponseWriter, status int, fields FieldErrors) {
	httpx.JSON(w, status, ErrorDocument{Errors: []ErrorObject{{Detail: fields}}})
}
