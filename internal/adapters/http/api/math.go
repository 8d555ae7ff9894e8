package api

import (
	"fmt"
	"net/http"

	"github.com/okian/featurelab/internal/domain/calc"
	"github.com/okian/featurelab/internal/domain/coerce"
	"github.com/okian/featurelab/pkg/metrics"
)

const (
	formatHTML      = "html"
	defaultExponent = 2
)

type sumResponse struct {
	Sum coerce.Number `json:"sum"`
}

type factorialResponse struct {
	N         coerce.Number `json:"n"`
	Factorial coerce.Number `json:"factorial"`
}

// MathHandler serves the arithmetic routes. Unparseable operands become NaN
// and flow through to the response instead of being rejected.
type MathHandler struct{}

// NewMathHandler creates a new math handler.
func NewMathHandler() *MathHandler {
	return &MathHandler{}
}

// HandleCube handles GET /cube/{number} requests.
func (h *MathHandler) HandleCube(w http.ResponseWriter, r *http.Request) {
	n := coerce.ParseInt(r.PathValue("number"))
	cube := calc.Cube(n)
	recordNaN("cube", cube)
	writeHTML(w, http.StatusOK, fmt.Sprintf("<h3>Number: %s</h3><p>Cube: %s</p>", n, cube))
}

// HandleAdd handles GET /add?a=..&b=.. requests.
func (h *MathHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	a := coerce.ParseOptionalInt(queryValue(r, "a"))
	b := coerce.ParseOptionalInt(queryValue(r, "b"))
	sum := calc.Add(a, b)
	recordNaN("add", sum)
	writeJSON(w, http.StatusOK, sumResponse{Sum: sum})
}

// HandleFactorial handles GET /factorial/{n}?format=json|html requests.
// Any format other than html answers with JSON.
func (h *MathHandler) HandleFactorial(w http.ResponseWriter, r *http.Request) {
	n := coerce.ParseInt(r.PathValue("n"))
	result := calc.Factorial(n)

	if format, _ := queryValue(r, "format"); format == formatHTML {
		writeHTML(w, http.StatusOK, fmt.Sprintf("<h3>Factorial of %s</h3><p>Result: %s</p>", n, result))
		return
	}
	writeJSON(w, http.StatusOK, factorialResponse{N: n, Factorial: result})
}

// HandlePower handles GET /power/{base}?exp=.. requests. A missing, zero or
// unparseable exponent falls back to 2.
func (h *MathHandler) HandlePower(w http.ResponseWriter, r *http.Request) {
	base := coerce.ParseInt(r.PathValue("base"))
	exp := coerce.ParseOptionalInt(queryValue(r, "exp"))
	if !exp.Truthy() {
		exp = defaultExponent
	}
	result := calc.Pow(base, exp)
	recordNaN("power", result)
	writeHTML(w, http.StatusOK, fmt.Sprintf("<h3>Power Calculation</h3><p>%s<sup>%s</sup> = %s</p>", base, exp, result))
}

func recordNaN(endpoint string, n coerce.Number) {
	if n.IsNaN() {
		metrics.RecordNaNResult(endpoint)
	}
}
