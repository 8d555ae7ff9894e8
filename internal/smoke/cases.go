package smoke

import (
	"net/http"
)

const jsonContentType = "application/json"

// DefaultCases covers every feature route once, including the failure
// branches that do not depend on server configuration.
func DefaultCases(apiKey string) []Case {
	jsonBody := map[string]string{"Content-Type": jsonContentType}

	return []Case{
		{Name: "root", Method: http.MethodGet, Path: "/", WantStatus: http.StatusOK, WantContains: []string{"<h1>"}},
		{Name: "greet", Method: http.MethodGet, Path: "/greet?name=Aniket", WantStatus: http.StatusOK,
			WantContains: []string{"<h2>Hello, Aniket!</h2>"}},
		{Name: "greet_guest", Method: http.MethodGet, Path: "/greet", WantStatus: http.StatusOK,
			WantContains: []string{"Hello, Guest!"}},
		{Name: "cube", Method: http.MethodGet, Path: "/cube/3", WantStatus: http.StatusOK,
			WantContains: []string{"<h3>Number: 3</h3><p>Cube: 27</p>"}},
		{Name: "cube_nan", Method: http.MethodGet, Path: "/cube/abc", WantStatus: http.StatusOK,
			WantContains: []string{"Cube: NaN"}},
		{Name: "add", Method: http.MethodGet, Path: "/add?a=5&b=7", WantStatus: http.StatusOK,
			WantContains: []string{`{"sum":12}`}},
		{Name: "add_missing", Method: http.MethodGet, Path: "/add?a=5", WantStatus: http.StatusOK,
			WantContains: []string{`{"sum":null}`}},
		{Name: "factorial", Method: http.MethodGet, Path: "/factorial/5", WantStatus: http.StatusOK,
			WantContains: []string{`"factorial":120`}},
		{Name: "factorial_html", Method: http.MethodGet, Path: "/factorial/5?format=html", WantStatus: http.StatusOK,
			WantContains: []string{"<h3>Factorial of 5</h3>", "120"}},
		{Name: "factorial_negative", Method: http.MethodGet, Path: "/factorial/-3", WantStatus: http.StatusOK,
			WantContains: []string{`"factorial":1`}},
		{Name: "person_minor", Method: http.MethodPost, Path: "/person", Headers: jsonBody,
			Body: `{"name":"Sam","age":15}`, WantStatus: http.StatusOK, WantContains: []string{"is an minor."}},
		{Name: "person_adult", Method: http.MethodPost, Path: "/person", Headers: jsonBody,
			Body: `{"name":"Sam","age":30}`, WantStatus: http.StatusOK, WantContains: []string{"is an adult."}},
		{Name: "person_malformed", Method: http.MethodPost, Path: "/person", Headers: jsonBody,
			Body: `{"name":`, WantStatus: http.StatusBadRequest, WantContains: []string{`"error"`}},
		{Name: "city_details", Method: http.MethodGet, Path: "/city/Boston?details=true", WantStatus: http.StatusOK,
			WantContains: []string{"<h3>Boston</h3>", "Details"}},
		{Name: "city_unknown", Method: http.MethodGet, Path: "/city/Atlanta", WantStatus: http.StatusOK,
			WantContains: []string{"No info for this city."}},
		{Name: "area_rectangle", Method: http.MethodPost, Path: "/area/rectangle", Headers: jsonBody,
			Body: `{"width":4,"height":2.5}`, WantStatus: http.StatusOK, WantContains: []string{`"area":10`}},
		{Name: "power", Method: http.MethodGet, Path: "/power/2?exp=8", WantStatus: http.StatusOK,
			WantContains: []string{"2<sup>8</sup> = 256"}},
		{Name: "power_default", Method: http.MethodGet, Path: "/power/3", WantStatus: http.StatusOK,
			WantContains: []string{"3<sup>2</sup> = 9"}},
		{Name: "colors", Method: http.MethodGet, Path: "/colors", WantStatus: http.StatusOK,
			WantContains: []string{`"colors":[`}},
		{Name: "protected_data", Method: http.MethodGet, Path: "/protected-data",
			Headers: map[string]string{"api-key": apiKey}, WantStatus: http.StatusOK,
			WantContains: []string{"This is protected data."}},
		{Name: "protected_data_rejected", Method: http.MethodGet, Path: "/protected-data",
			Headers: map[string]string{"api-key": apiKey + "-wrong"}, WantStatus: http.StatusUnauthorized,
			WantContains: []string{"Invalid or missing API key."}},
		{Name: "cookie_greet", Method: http.MethodGet, Path: "/cookie-greet",
			Headers: map[string]string{"Cookie": "username=Sam"}, WantStatus: http.StatusOK,
			WantContains: []string{"Welcome back, Sam!"}},
		{Name: "cookie_greet_new", Method: http.MethodGet, Path: "/cookie-greet", WantStatus: http.StatusOK,
			WantContains: []string{"Hello, new visitor!"}},
	}
}
