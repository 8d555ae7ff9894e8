package api

import "net/http"

// RootHandler serves the banner page.
type RootHandler struct {
	page string
}

// NewRootHandler renders the banner once.
func NewRootHandler(banner string) *RootHandler {
	return &RootHandler{page: "<h1>" + banner + "</h1>"}
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeHTML(w, http.StatusOK, h.page)
}
