package api

import (
	"net/http"

	"github.com/okian/featurelab/internal/domain/cities"
)

// CityHandler handles GET /city/{city_name}?details=true.
type CityHandler struct {
	directory *cities.Directory
}

// NewCityHandler creates a new city handler.
func NewCityHandler(d *cities.Directory) *CityHandler {
	return &CityHandler{directory: d}
}

// HandleCity echoes the city name as given and looks it up case-insensitively.
// Only the literal details=true selects the detailed page.
func (h *CityHandler) HandleCity(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("city_name")
	info := h.directory.Describe(name)

	if details, _ := queryValue(r, "details"); details == "true" {
		writeHTML(w, http.StatusOK, "<h3>"+name+"</h3><p><strong>Details:</strong> "+info+
			"</p><p><em>Population data and weather info would go here.</em></p>")
		return
	}
	writeHTML(w, http.StatusOK, "<h3>"+name+"</h3><p>"+info+"</p>")
}
