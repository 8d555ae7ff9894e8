package api

import (
	"net/http"
	"slices"
)

type colorsResponse struct {
	Colors []string `json:"colors"`
}

// ColorsHandler handles GET /colors.
type ColorsHandler struct {
	colors []string
}

// NewColorsHandler copies colors; a nil list is served as [].
func NewColorsHandler(colors []string) *ColorsHandler {
	c := slices.Clone(colors)
	if c == nil {
		c = []string{}
	}
	return &ColorsHandler{colors: c}
}

// HandleColors handles GET /colors requests.
func (h *ColorsHandler) HandleColors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, colorsResponse{Colors: h.colors})
}
