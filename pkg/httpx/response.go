package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// encodeFailure is written instead of v when v cannot be encoded.
var encodeFailure = []byte(`{"error":"Internal Server Error"}` + "\n")

// JSON encodes v and writes it with the given status. v is encoded before
// the header goes out, so a value that cannot be encoded becomes a 500 with
// an error body instead of a success status with an empty body.
func JSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	body := encodeFailure
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
	} else {
		body = buf.Bytes()
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// NoContent writes a 204 with an empty body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// SafeError returns the error message for client responses.
// In production, 5xx messages are replaced with the generic status text.
func SafeError(err error, status int, isProduction bool) string {
	if isProduction && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
