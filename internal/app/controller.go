package service

import (
	"time"

	"github.com/okian/nexera/pkg/logger"
)

// ControllerOption configures an AssetController or AvatarController.
type ControllerOption func(*controllerConfig)

type controllerConfig struct {
	delay        time.Duration
	exampleDelay time.Duration
	logger       logger.Logger
	now          func() time.Time
}

// Defaults match the simulated latency of each pipeline.
const (
	DefaultAssetDelay   = 800 * time.Millisecond
	DefaultCommandDelay = 500 * time.Millisecond
	DefaultExampleDelay = 300 * time.Millisecond
)

// WithDelay sets the processing delay applied to Submit.
func WithDelay(d time.Duration) ControllerOption {
	return func(c *controllerConfig) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithExampleDelay sets the delay applied to AvatarController.RunExample.
func WithExampleDelay(d time.Duration) ControllerOption {
	return func(c *controllerConfig) {
		if d >= 0 {
			c.exampleDelay = d
		}
	}
}

// WithControllerLogger sets the logger a controller reports through.
func WithControllerLogger(l logger.Logger) ControllerOption {
	return func(c *controllerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithControllerClock overrides the clock used for elapsed pose time.
func WithControllerClock(now func() time.Time) ControllerOption {
	return func(c *controllerConfig) {
		if now != nil {
			c.now = now
		}
	}
}

func newControllerConfig(delay time.Duration, opts []ControllerOption) controllerConfig {
	c := controllerConfig{
		delay:        delay,
		exampleDelay: DefaultExampleDelay,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = logger.Get()
	}
	return c
}
