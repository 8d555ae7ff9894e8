package api

import (
	"net/http"

	"github.com/okian/featurelab/internal/domain/coerce"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// writeJSON encodes v without HTML escaping so messages echo input verbatim.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := coerce.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"Internal Server Error"}`)
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: publicMessage(err)})
}
