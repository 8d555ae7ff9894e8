package smoke

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/featurelab/pkg/logger"
)

// ErrChecksFailed is returned when any case fails or any GET route answers
// differently across rounds.
var ErrChecksFailed = errors.New("smoke checks failed")

// Run executes DefaultCases against cfg.BaseURL.
// Unset fields take their defaults, including the API key the cases send.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	cfg = withDefaults(cfg)
	return RunCases(ctx, cfg, DefaultCases(cfg.APIKey))
}

// RunCases executes cases for cfg.Rounds rounds with cfg.Workers requests in
// flight, then compares idempotent cases across rounds.
func RunCases(ctx context.Context, cfg *Config, cases []Case) (*Stats, error) {
	cfg = withDefaults(cfg)
	log := logger.Get()
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting smoke run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("cases", len(cases)),
		logger.Int("rounds", cfg.Rounds),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout))

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	results := make([][]Result, cfg.Rounds)
	for round := range cfg.Rounds {
		rs, err := runRound(ctx, client, cfg.Workers, round, cases)
		if err != nil {
			return stats, err
		}
		results[round] = rs
	}

	for round, rs := range results {
		for i, res := range rs {
			stats.Requests++
			if msg := check(cases[i], res); msg != "" {
				stats.Failed++
				stats.Failures = append(stats.Failures, fmt.Sprintf("round %d: %s: %s", round+1, res.Case, msg))
				log.Warn(ctx, "case failed", logger.String("case", res.Case), logger.Int("round", round+1), logger.String("reason", msg))
				continue
			}
			stats.Passed++
			if cfg.Verbose {
				log.Info(ctx, "case passed", logger.String("case", res.Case), logger.Int("round", round+1), logger.Int("status", res.Status))
			}
		}
	}

	for i, c := range cases {
		if !c.idempotent() {
			continue
		}
		for round := 1; round < len(results); round++ {
			first, again := results[0][i], results[round][i]
			if first.Err != nil || again.Err != nil {
				continue
			}
			if first.Status != again.Status || first.Body != again.Body {
				stats.NonIdempotent++
				stats.Failures = append(stats.Failures, fmt.Sprintf("%s: response changed in round %d", c.Name, round+1))
				log.Warn(ctx, "non-idempotent response", logger.String("case", c.Name), logger.Int("round", round+1))
				break
			}
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.Failed > 0 || stats.NonIdempotent > 0 {
		return stats, ErrChecksFailed
	}
	log.Info(ctx, "smoke run completed successfully")
	return stats, nil
}

func withDefaults(cfg *Config) *Config {
	out := Config{BaseURL: DefaultBaseURL, APIKey: DefaultAPIKey, Rounds: DefaultRounds, Workers: DefaultWorkers, Timeout: DefaultTimeout}
	if cfg == nil {
		return &out
	}
	if cfg.BaseURL != "" {
		out.BaseURL = cfg.BaseURL
	}
	if cfg.APIKey != "" {
		out.APIKey = cfg.APIKey
	}
	if cfg.Rounds > 0 {
		out.Rounds = cfg.Rounds
	}
	if cfg.Workers > 0 {
		out.Workers = cfg.Workers
	}
	if cfg.Timeout > 0 {
		out.Timeout = cfg.Timeout
	}
	out.Verbose = cfg.Verbose
	return &out
}

// runRound sends every case once. Transport errors are recorded on the
// result; only cancellation aborts the round.
func runRound(ctx context.Context, client *HTTPClient, workers, round int, cases []Case) ([]Result, error) {
	results := make([]Result, len(cases))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range cases {
		g.Go(func() error {
			status, body, err := client.Do(gctx, c)
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			mu.Lock()
			results[i] = Result{Case: c.Name, Round: round, Status: status, Body: body, Err: err}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("round %d interrupted: %w", round+1, err)
	}
	return results, nil
}

// check returns "" when res satisfies c, otherwise the reason it does not.
func check(c Case, res Result) string {
	if res.Err != nil {
		return res.Err.Error()
	}
	if res.Status != c.WantStatus {
		return fmt.Sprintf("status %d, want %d", res.Status, c.WantStatus)
	}
	for _, want := range c.WantContains {
		if !strings.Contains(res.Body, want) {
			return fmt.Sprintf("body %q does not contain %q", res.Body, want)
		}
	}
	return ""
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	status, _, err := client.Do(ctx, Case{Method: http.MethodGet, Path: "/healthz"})
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", status)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate float64
	if stats.Requests > 0 {
		successRate = float64(stats.Passed) / float64(stats.Requests) * PercentageMultiplier
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("requests", stats.Requests),
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.Int("nonIdempotent", stats.NonIdempotent),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate))
}
