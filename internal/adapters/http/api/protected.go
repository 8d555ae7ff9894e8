package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/okian/featurelab/pkg/logger"
	"github.com/okian/featurelab/pkg/metrics"
)

const (
	apiKeyHeader       = "Api-Key"
	apiKeyErrorMessage = "Invalid or missing API key."
	protectedPayload   = "This is protected data."
)

type dataResponse struct {
	Data string `json:"data"`
}

// ProtectedHandler handles GET /protected-data.
type ProtectedHandler struct {
	apiKey []byte
	logger logger.Logger
}

// NewProtectedHandler creates a handler guarded by apiKey.
func NewProtectedHandler(apiKey string, log logger.Logger) *ProtectedHandler {
	return &ProtectedHandler{apiKey: []byte(apiKey), logger: log}
}

// HandleProtectedData requires the api-key header to equal the configured
// key exactly. Repeated headers are joined with ", " before comparing, so
// they never match.
func (h *ProtectedHandler) HandleProtectedData(w http.ResponseWriter, r *http.Request) {
	const op = "api.protected_data"

	key := strings.Join(r.Header.Values(apiKeyHeader), ", ")
	if subtle.ConstantTimeCompare([]byte(key), h.apiKey) != 1 {
		metrics.RecordAPIKeyRejection()
		h.logger.Warn(r.Context(), "api key rejected",
			logger.String("request_id", RequestIDFrom(r.Context())),
			logger.Error(NewKind(op, ErrUnauthorized)),
		)
		writeError(w, NewKind(op, ErrUnauthorized))
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: protectedPayload})
}
