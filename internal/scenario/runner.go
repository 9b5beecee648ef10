// Package scenario drives a running service through its observable
// behaviours and reports every mismatch.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/okian/nexera/pkg/logger"
)

// ErrChecksFailed is returned by Run when at least one check did not hold.
var ErrChecksFailed = errors.New("scenario checks failed")

// checker records check outcomes from concurrent walkthroughs.
type checker struct {
	mu      sync.Mutex
	stats   *Stats
	verbose bool
	log     logger.Logger
}

func (c *checker) check(ctx context.Context, name string, ok bool, detail string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Checks++
	if ok {
		c.stats.Passed++
		if c.verbose {
			c.log.Info(ctx, "check passed", logger.String("check", name))
		}
		return
	}
	c.stats.Failed++
	msg := name + ": " + fmt.Sprintf(detail, args...)
	c.stats.Failures = append(c.stats.Failures, msg)
	c.log.Warn(ctx, "check failed", logger.String("check", name), logger.String("detail", msg))
}

// Run executes every scenario against cfg.BaseURL.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	applyDefaults(cfg)
	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("scenario")
	c := &checker{stats: stats, verbose: cfg.Verbose, log: log}
	client := newHTTPClient(strings.TrimRight(cfg.BaseURL, "/"), cfg.Timeout)

	log.Info(ctx, "starting scenario run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("sessions", cfg.Sessions),
		logger.Duration("timeout", cfg.Timeout),
	)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Stateless classification and pose
	if err := runClassification(ctx, client, c); err != nil {
		return stats, err
	}
	if err := runPose(ctx, client, c); err != nil {
		return stats, err
	}

	// Step 3: Concurrent session walkthroughs
	var wg sync.WaitGroup
	errs := make(chan error, cfg.Sessions)
	for i := 0; i < cfg.Sessions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := runSession(ctx, client, c, cfg.Settle); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	if err, ok := <-errs; ok {
		return stats, fmt.Errorf("session walkthrough failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "scenario run finished",
		logger.Int("checks", stats.Checks),
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
	)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrChecksFailed, stats.Failed, stats.Checks)
	}
	return stats, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}
	if cfg.Sessions <= 0 {
		cfg.Sessions = DefaultSessions
	}
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	status, err := client.do(ctx, "GET", "/healthz", nil, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if status != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", status)
	}
	return nil
}

type entryView struct {
	Key     string  `json:"key"`
	Model   string  `json:"model"`
	Color   string  `json:"color"`
	Scale   float64 `json:"scale"`
	Summary string  `json:"summary"`
}

type commandView struct {
	Action      string `json:"action"`
	Explanation string `json:"explanation"`
}

type vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type poseView struct {
	LeftArm  vec3 `json:"left_arm"`
	RightArm vec3 `json:"right_arm"`
	Body     vec3 `json:"body"`
}

func runClassification(ctx context.Context, client *HTTPClient, c *checker) error {
	for _, tc := range assetCases {
		var out struct {
			Entry entryView `json:"entry"`
		}
		status, err := client.do(ctx, "POST", "/classify/asset", map[string]string{"input": tc.Input}, &out)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("asset %q", tc.Input)
		c.check(ctx, name, status == StatusOK, "status %d", status)
		c.check(ctx, name, out.Entry.Key == tc.Key, "key %q, want %q", out.Entry.Key, tc.Key)
		c.check(ctx, name, out.Entry.Color == tc.Color, "color %q, want %q", out.Entry.Color, tc.Color)
		c.check(ctx, name, out.Entry.Scale == tc.Scale, "scale %v, want %v", out.Entry.Scale, tc.Scale)
		if tc.Key == "custom" {
			c.check(ctx, name, strings.Contains(out.Entry.Summary, tc.Input), "summary %q does not quote input", out.Entry.Summary)
		}
	}

	for _, tc := range commandCases {
		var out commandView
		status, err := client.do(ctx, "POST", "/classify/command", map[string]string{"input": tc.Input}, &out)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("command %q", tc.Input)
		c.check(ctx, name, status == StatusOK, "status %d", status)
		c.check(ctx, name, out.Action == tc.Action, "action %q, want %q", out.Action, tc.Action)
		c.check(ctx, name, out.Explanation != "", "empty explanation")
	}
	return nil
}

func getPose(ctx context.Context, client *HTTPClient, action string, t float64) (poseView, error) {
	var out struct {
		Pose poseView `json:"pose"`
	}
	q := url.Values{"action": {action}, "t": {fmt.Sprint(t)}}
	if _, err := client.do(ctx, "GET", "/pose?"+q.Encode(), nil, &out); err != nil {
		return poseView{}, err
	}
	return out.Pose, nil
}

func runPose(ctx context.Context, client *HTTPClient, c *checker) error {
	const eps = 1e-9

	walk, err := getPose(ctx, client, "walk", 0)
	if err != nil {
		return err
	}
	c.check(ctx, "walk pose at 0", math.Abs(walk.LeftArm.Z-0.3) < eps, "leftArm.z %v", walk.LeftArm.Z)
	c.check(ctx, "walk pose at 0", math.Abs(walk.RightArm.Z+0.3) < eps, "rightArm.z %v", walk.RightArm.Z)
	c.check(ctx, "walk pose at 0", math.Abs(walk.Body.X) < eps, "body.x %v", walk.Body.X)

	base, err := getPose(ctx, client, "idle", 0)
	if err != nil {
		return err
	}
	for _, t := range []float64{0.5, 1.7, 42, 1e6} {
		p, err := getPose(ctx, client, "idle", t)
		if err != nil {
			return err
		}
		c.check(ctx, "idle pose is time invariant", p == base, "pose at t=%v differs", t)
	}
	return nil
}
