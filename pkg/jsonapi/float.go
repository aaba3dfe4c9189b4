package jsonapi

import (
	"bytes"
	"encoding/json"
)

// Float is a float64 that always renders as a JSON floating-point literal.
// encoding/json prints float64(1) as 1, which clients decode as an integer;
// Float prints 1.0 instead.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(float64(f))
	if err != nil {
		return nil, err
	}
	if !bytes.ContainsAny(b, ".eE") {
		b = append(b, ".0"...)
	}
	return b, nil
}
