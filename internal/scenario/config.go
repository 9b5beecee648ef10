package scenario

import "time"

// Config holds configuration for a scenario run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Sessions int           // Number of concurrent session walkthroughs
	Timeout  time.Duration // HTTP request timeout
	Settle   time.Duration // Upper bound for a pending submission to resolve
	Verbose  bool          // Log every check, not only failures
}

// Stats holds run statistics.
type Stats struct {
	Checks    int
	Passed    int
	Failed    int
	Failures  []string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// assetCase expects input to resolve to the entry with key.
type assetCase struct {
	Input string
	Key   string
	Color string
	Scale float64
}

// commandCase expects input to resolve to action.
type commandCase struct {
	Input  string
	Action string
}
