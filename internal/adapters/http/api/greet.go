package api

import (
	"net/http"
)

const (
	defaultGuestName = "Guest"
	usernameCookie   = "username"
)

type greetingResponse struct {
	Greeting string `json:"greeting"`
}

// GreetHandler handles the query-string and cookie greetings.
type GreetHandler struct{}

// NewGreetHandler creates a new greet handler.
func NewGreetHandler() *GreetHandler {
	return &GreetHandler{}
}

// HandleGreet handles GET /greet?name=... requests. An empty name counts
// as missing.
func (h *GreetHandler) HandleGreet(w http.ResponseWriter, r *http.Request) {
	name, _ := queryValue(r, "name")
	if name == "" {
		name = defaultGuestName
	}
	writeHTML(w, http.StatusOK, "<h2>Hello, "+name+"!</h2>")
}

// HandleCookieGreet handles GET /cookie-greet, reading the username cookie.
func (h *GreetHandler) HandleCookieGreet(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(usernameCookie); err == nil && c.Value != "" {
		writeJSON(w, http.StatusOK, greetingResponse{Greeting: "Welcome back, " + c.Value + "!"})
		return
	}
	writeJSON(w, http.StatusOK, greetingResponse{Greeting: "Hello, new visitor!"})
}
