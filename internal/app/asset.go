package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/nexera/internal/domain/asset"
	"github.com/okian/nexera/pkg/logger"
	"github.com/okian/nexera/pkg/metrics"
)

// AssetState is the asset pipeline as a renderer sees it.
type AssetState struct {
	Processing bool         `json:"processing"`
	Input      string       `json:"input"`
	Entry      *asset.Entry `json:"entry,omitempty"`
}

// AssetController owns one asset pipeline: the last submitted text, the busy
// flag and the resolved entry.
type AssetController struct {
	cfg controllerConfig

	mu         sync.Mutex
	input      string
	processing bool
	current    *asset.Entry
	timer      *time.Timer
	closed     bool
}

// NewAssetController returns an idle controller with no asset loaded.
func NewAssetController(opts ...ControllerOption) *AssetController {
	return &AssetController{cfg: newControllerConfig(DefaultAssetDelay, opts)}
}

// Submit starts resolving input after the asset delay. It returns false and
// changes nothing when input is blank, a submission is already in flight, or
// the controller is closed.
func (c *AssetController) Submit(ctx context.Context, input string) bool {
	if asset.IsBlank(input) {
		metrics.RecordSubmission(metrics.PipelineAsset, metrics.OutcomeBlank)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		metrics.RecordSubmission(metrics.PipelineAsset, metrics.OutcomeClosed)
		return false
	}
	if c.processing {
		metrics.RecordSubmission(metrics.PipelineAsset, metrics.OutcomeBusy)
		c.cfg.logger.Debug(ctx, "asset submission ignored", logger.String("input", input))
		return false
	}

	c.input = input
	c.processing = true
	start := c.cfg.now()
	c.timer = time.AfterFunc(c.cfg.delay, func() { c.resolve(input, start) })

	metrics.RecordSubmission(metrics.PipelineAsset, metrics.OutcomeAccepted)
	c.cfg.logger.Info(ctx, "generating asset",
		logger.String("input", input),
		logger.Duration("delay", c.cfg.delay),
	)
	return true
}

func (c *AssetController) resolve(input string, start time.Time) {
	entry := asset.Classify(input)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.current = &entry
	c.processing = false
	c.timer = nil

	metrics.RecordClassification(metrics.PipelineAsset, entry.Key)
	metrics.RecordSubmission(metrics.PipelineAsset, metrics.OutcomeApplied)
	metrics.RecordProcessingDelay(metrics.PipelineAsset, float64(c.cfg.now().Sub(start).Milliseconds()))

	ctx := context.Background()
	c.cfg.logger.Info(ctx, "asset generated",
		logger.String("input", input),
		logger.String("key", entry.Key),
		logger.String("model", string(entry.Model)),
		logger.Bool("custom", entry.IsCustom()),
	)
	for _, step := range asset.PipelineSteps() {
		c.cfg.logger.Debug(ctx, "asset pipeline", logger.String("step", step))
	}
}

// Snapshot returns a copy of the current state.
func (c *AssetController) Snapshot() AssetState {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := AssetState{Processing: c.processing, Input: c.input}
	if c.current != nil {
		e := *c.current
		s.Entry = &e
	}
	return s
}

// Closed reports whether Close was called. A closed controller rejects every
// submission, so a false Submit on a closed controller is not a busy one.
func (c *AssetController) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close cancels a pending resolution. Later submissions are ignored.
func (c *AssetController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
		metrics.RecordSubmission(metrics.PipelineAsset, metrics.OutcomeCanceled)
	}
}
