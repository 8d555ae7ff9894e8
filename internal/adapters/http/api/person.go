package api

import (
	"fmt"
	"net/http"

	"github.com/okian/featurelab/internal/domain/coerce"
	"github.com/okian/featurelab/pkg/logger"
)

const adultAge = 18

type messageResponse struct {
	Message string `json:"message"`
}

// PersonHandler handles POST /person.
type PersonHandler struct {
	maxBodyBytes int64
	logger       logger.Logger
}

// NewPersonHandler creates a new person handler.
func NewPersonHandler(maxBodyBytes int64, log logger.Logger) *PersonHandler {
	return &PersonHandler{maxBodyBytes: maxBodyBytes, logger: log}
}

// HandlePerson classifies {name, age} as minor or adult. Fields are not type
// checked: age is compared numerically after coercion, so a missing or
// non-numeric age is an adult, and both fields are echoed as text.
func (h *PersonHandler) HandlePerson(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r, h.maxBodyBytes)
	if err != nil {
		h.logger.Debug(r.Context(), "rejecting person body", logger.Error(err))
		writeError(w, err)
		return
	}

	name := coerce.Field(body, "name")
	age := coerce.Field(body, "age")

	status := "adult"
	if age.Number() < adultAge {
		status = "minor"
	}
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("%s is %s years old and is an %s.", name, age, status),
	})
}
