package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/nexera/internal/domain/avatar"
	"github.com/okian/nexera/pkg/logger"
	"github.com/okian/nexera/pkg/metrics"
)

// AvatarState is the avatar pipeline as a renderer sees it.
type AvatarState struct {
	Processing  bool          `json:"processing"`
	Command     string        `json:"command"`
	Action      avatar.Action `json:"action"`
	Explanation string        `json:"explanation"`
}

// AvatarController owns one avatar: command text, busy flag, current action
// and explanation. The pose clock starts when the controller is created.
type AvatarController struct {
	cfg     controllerConfig
	started time.Time

	mu          sync.Mutex
	command     string
	processing  bool
	action      avatar.Action
	explanation string
	timer       *time.Timer
	closed      bool
}

// NewAvatarController returns a controller in the idle action with no explanation.
func NewAvatarController(opts ...ControllerOption) *AvatarController {
	cfg := newControllerConfig(DefaultCommandDelay, opts)
	return &AvatarController{
		cfg:     cfg,
		started: cfg.now(),
		action:  avatar.ActionIdle,
	}
}

// Submit classifies command and applies the result after the command delay.
// It returns false and changes nothing when command is blank, a submission is
// in flight, or the controller is closed.
func (c *AvatarController) Submit(ctx context.Context, command string) bool {
	if avatar.IsBlank(command) {
		metrics.RecordSubmission(metrics.PipelineAvatar, metrics.OutcomeBlank)
		return false
	}
	action, explanation := avatar.Classify(command)
	return c.schedule(ctx, command, action, explanation, c.cfg.delay)
}

// RunExample sets the command text to the named quick example and applies its
// action after the example delay. It returns ErrUnknownExample for names not
// listed by avatar.QuickExamples.
func (c *AvatarController) RunExample(ctx context.Context, name string) (bool, error) {
	ex, ok := avatar.LookupExample(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownExample, name)
	}
	return c.schedule(ctx, ex.Command, ex.Action, avatar.Explain(ex.Action), c.cfg.exampleDelay), nil
}

func (c *AvatarController) schedule(ctx context.Context, command string, action avatar.Action, explanation string, delay time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		metrics.RecordSubmission(metrics.PipelineAvatar, metrics.OutcomeClosed)
		return false
	}
	if c.processing {
		metrics.RecordSubmission(metrics.PipelineAvatar, metrics.OutcomeBusy)
		c.cfg.logger.Debug(ctx, "avatar command ignored", logger.String("command", command))
		return false
	}

	c.command = command
	c.processing = true
	start := c.cfg.now()
	c.timer = time.AfterFunc(delay, func() { c.resolve(command, action, explanation, start) })

	metrics.RecordSubmission(metrics.PipelineAvatar, metrics.OutcomeAccepted)
	c.cfg.logger.Info(ctx, "processing command",
		logger.String("command", command),
		logger.Duration("delay", delay),
	)
	return true
}

func (c *AvatarController) resolve(command string, action avatar.Action, explanation string, start time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.action = action
	c.explanation = explanation
	c.processing = false
	c.timer = nil

	metrics.RecordClassification(metrics.PipelineAvatar, action.String())
	metrics.RecordSubmission(metrics.PipelineAvatar, metrics.OutcomeApplied)
	metrics.RecordProcessingDelay(metrics.PipelineAvatar, float64(c.cfg.now().Sub(start).Milliseconds()))

	ctx := context.Background()
	c.cfg.logger.Info(ctx, "command applied",
		logger.String("command", command),
		logger.String("action", action.String()),
	)
	for _, step := range avatar.PipelineSteps() {
		c.cfg.logger.Debug(ctx, "avatar pipeline", logger.String("step", step))
	}
}

// Snapshot returns the current state.
func (c *AvatarController) Snapshot() AvatarState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return AvatarState{
		Processing:  c.processing,
		Command:     c.command,
		Action:      c.action,
		Explanation: c.explanation,
	}
}

// Elapsed returns seconds since the controller was created.
func (c *AvatarController) Elapsed() float64 {
	return c.cfg.now().Sub(c.started).Seconds()
}

// Pose evaluates the current action at t seconds and returns the action the
// sample was computed for.
func (c *AvatarController) Pose(t float64) (avatar.Action, avatar.Sample) {
	c.mu.Lock()
	action := c.action
	c.mu.Unlock()

	metrics.RecordPoseEvaluation(action.String())
	return action, avatar.Pose(action, t)
}

// Closed reports whether Close was called.
func (c *AvatarController) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close cancels a pending command. Later submissions are ignored.
func (c *AvatarController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
		metrics.RecordSubmission(metrics.PipelineAvatar, metrics.OutcomeCanceled)
	}
}
