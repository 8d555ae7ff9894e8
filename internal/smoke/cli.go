package smoke

import (
	"fmt"
	"io"

	"github.com/okian/featurelab/pkg/logger"
)

// SetupLogging initializes the global logger with colorized output.
func SetupLogging(w io.Writer, verbose bool) error {
	if err := logger.Init(logger.WithFormat(logger.FormatTint), logger.WithWriter(w)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Feature Lab Smoke Tool
======================

Drives every route of a running Feature Lab service and checks the responses.
GET routes are called once per round and must answer identically each time.

Usage:
  go run ./cmd/smoke [options]

Options:
  --url string
        Base URL of the service (default "http://localhost:8080")
  --api-key string
        Key sent to /protected-data (default "mysecretkey")
  --rounds int
        Passes over the route list (default 2)
  --workers int
        Number of concurrent requests (default 4)
  --timeout duration
        HTTP request timeout (default 10s)
  --verbose
        Log every case
  -h, --help
        Show this help message

Examples:
  # Check a local instance
  go run ./cmd/smoke

  # Check a deployed instance with its own key
  go run ./cmd/smoke --url https://lab.example.com --api-key s3cret --rounds 3
`)
}
