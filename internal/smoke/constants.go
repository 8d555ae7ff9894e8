package smoke

import "time"

// Defaults for the smoke CLI.
const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultAPIKey  = "mysecretkey"
	DefaultRounds  = 2
	DefaultWorkers = 4
	DefaultTimeout = 10 * time.Second
)

// PercentageMultiplier converts a ratio to a percentage.
const PercentageMultiplier = 100
