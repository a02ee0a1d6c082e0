// Package response writes the API's JSON bodies. Handlers never touch the
// encoder directly; going through these helpers keeps the Content-Type and
// the error envelope identical across every endpoint.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorBody is the envelope for every non-2xx response. Error is a short,
// stable description; Detail carries the underlying error text when there is
// one and is omitted from the JSON when empty.
type ErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// RespondJSON writes data as JSON with the given status. Nil data writes the
// status line only. Once the header has gone out an encoding failure can no
// longer reach the client, so it is logged and the response left short.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
	}
}

// RespondError writes the error envelope. detail is usually err.Error() and
// may be empty when the message alone says everything.
func RespondError(w http.ResponseWriter, status int, message, detail string) {
	RespondJSON(w, status, ErrorBody{Error: message, Detail: detail})
}
