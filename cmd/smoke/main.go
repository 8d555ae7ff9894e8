package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/okian/featurelab/internal/smoke"
)

const defaultRunTimeout = 2 * time.Minute

func main() {
	var (
		baseURL = pflag.String("url", smoke.DefaultBaseURL, "Base URL of the service")
		apiKey  = pflag.String("api-key", smoke.DefaultAPIKey, "Key sent to /protected-data")
		rounds  = pflag.Int("rounds", smoke.DefaultRounds, "Passes over the route list")
		workers = pflag.Int("workers", smoke.DefaultWorkers, "Number of concurrent requests")
		timeout = pflag.Duration("timeout", smoke.DefaultTimeout, "HTTP request timeout")
		verbose = pflag.Bool("verbose", false, "Log every case")
		help    = pflag.BoolP("help", "h", false, "Show help")
	)
	pflag.Parse()

	if *help {
		smoke.ShowHelp(os.Stdout)
		return
	}

	if err := smoke.SetupLogging(os.Stdout, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to setup logging: "+err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	stats, err := smoke.Run(ctx, &smoke.Config{
		BaseURL: *baseURL,
		APIKey:  *apiKey,
		Rounds:  *rounds,
		Workers: *workers,
		Timeout: *timeout,
		Verbose: *verbose,
	})
	if err != nil {
		for _, f := range stats.Failures {
			fmt.Fprintln(os.Stderr, "  "+f)
		}
		fmt.Fprintln(os.Stderr, "Smoke run failed: "+err.Error())
		os.Exit(1)
	}
}
