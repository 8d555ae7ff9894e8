package smoke

import (
	"net/http"
	"time"
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL string        // Base URL of the service
	APIKey  string        // Key sent to GET /protected-data
	Rounds  int           // Passes over the case list; two or more enables the idempotence check
	Workers int           // Number of concurrent requests
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every case, not only failures
}

// Case is one request and what its response must contain.
type Case struct {
	Name         string
	Method       string
	Path         string
	Body         string
	Headers      map[string]string
	WantStatus   int
	WantContains []string
}

// idempotent reports whether repeated calls must return the same body.
func (c Case) idempotent() bool {
	return c.Method == http.MethodGet || c.Method == http.MethodHead
}

// Result is the outcome of one case in one round.
type Result struct {
	Case   string
	Round  int
	Status int
	Body   string
	Err    error
}

// Stats holds run statistics.
type Stats struct {
	Requests      int
	Passed        int
	Failed        int
	NonIdempotent int
	Failures      []string
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}
