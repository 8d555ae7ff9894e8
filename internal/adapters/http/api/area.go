package api

import (
	"net/http"

	"github.com/okian/featurelab/internal/domain/calc"
	"github.com/okian/featurelab/internal/domain/coerce"
	"github.com/okian/featurelab/pkg/logger"
)

// areaResponse echoes the sides as received; undefined sides are omitted.
type areaResponse struct {
	Width  coerce.Value  `json:"width,omitzero"`
	Height coerce.Value  `json:"height,omitzero"`
	Area   coerce.Number `json:"area"`
}

// AreaHandler handles POST /area/rectangle.
type AreaHandler struct {
	maxBodyBytes int64
	logger       logger.Logger
}

// NewAreaHandler creates a new area handler.
func NewAreaHandler(maxBodyBytes int64, log logger.Logger) *AreaHandler {
	return &AreaHandler{maxBodyBytes: maxBodyBytes, logger: log}
}

// HandleRectangle multiplies width by height after numeric coercion.
func (h *AreaHandler) HandleRectangle(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r, h.maxBodyBytes)
	if err != nil {
		h.logger.Debug(r.Context(), "rejecting rectangle body", logger.Error(err))
		writeError(w, err)
		return
	}

	width := coerce.Field(body, "width")
	height := coerce.Field(body, "height")
	area := calc.RectangleArea(width.Number(), height.Number())
	recordNaN("area_rectangle", area)

	writeJSON(w, http.StatusOK, areaResponse{Width: width, Height: height, Area: area})
}
