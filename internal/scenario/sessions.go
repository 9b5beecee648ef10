package scenario

import (
	"context"
	"fmt"
	"time"
)

type avatarView struct {
	Processing  bool   `json:"processing"`
	Command     string `json:"command"`
	Action      string `json:"action"`
	Explanation string `json:"explanation"`
}

type assetView struct {
	Processing bool       `json:"processing"`
	Input      string     `json:"input"`
	Entry      *entryView `json:"entry"`
}

// runSession walks one session through the delayed pipelines, including the
// busy-flag rule: a second submission while one is pending changes nothing.
func runSession(ctx context.Context, client *HTTPClient, c *checker, settle time.Duration) error {
	var sess struct {
		ID string `json:"id"`
	}
	status, err := client.do(ctx, "POST", "/sessions", nil, &sess)
	if err != nil {
		return err
	}
	if status != StatusCreated || sess.ID == "" {
		return fmt.Errorf("create session: status %d", status)
	}
	base := "/sessions/" + sess.ID
	defer func() { _, _ = client.do(context.Background(), "DELETE", base, nil, nil) }()

	// Command with a busy re-submission.
	status, err = client.do(ctx, "POST", base+"/command", map[string]string{"input": "walk to table"}, nil)
	if err != nil {
		return err
	}
	c.check(ctx, "session command accepted", status == StatusAccepted, "status %d", status)

	status, err = client.do(ctx, "POST", base+"/command", map[string]string{"input": "wave hello"}, nil)
	if err != nil {
		return err
	}
	c.check(ctx, "session resubmission while busy", status == StatusConflict, "status %d", status)

	var pending avatarView
	if _, err := client.do(ctx, "GET", base+"/avatar", nil, &pending); err != nil {
		return err
	}
	if pending.Processing {
		c.check(ctx, "pending state unchanged", pending.Action == "idle" && pending.Explanation == "",
			"action %q explanation %q before resolve", pending.Action, pending.Explanation)
		c.check(ctx, "pending command text", pending.Command == "walk to table", "command %q", pending.Command)
	}

	done, err := waitAvatar(ctx, client, base, settle)
	if err != nil {
		return err
	}
	c.check(ctx, "session command resolved", done.Action == "walk", "action %q", done.Action)
	c.check(ctx, "session explanation", done.Explanation != "", "empty explanation")

	// Quick example.
	status, err = client.do(ctx, "POST", base+"/examples/wave", nil, nil)
	if err != nil {
		return err
	}
	c.check(ctx, "quick example accepted", status == StatusAccepted, "status %d", status)
	done, err = waitAvatar(ctx, client, base, settle)
	if err != nil {
		return err
	}
	c.check(ctx, "quick example resolved", done.Action == "wave" && done.Command == "wave hello",
		"action %q command %q", done.Action, done.Command)

	// Asset pipeline.
	status, err = client.do(ctx, "POST", base+"/asset", map[string]string{"input": "safety vest"}, nil)
	if err != nil {
		return err
	}
	c.check(ctx, "session asset accepted", status == StatusAccepted, "status %d", status)
	asset, err := waitAsset(ctx, client, base, settle)
	if err != nil {
		return err
	}
	c.check(ctx, "session asset resolved", asset.Entry != nil && asset.Entry.Key == "safety vest", "entry %+v", asset.Entry)

	status, err = client.do(ctx, "POST", base+"/asset", map[string]string{"input": "   "}, nil)
	if err != nil {
		return err
	}
	c.check(ctx, "blank asset rejected", status != StatusAccepted, "status %d", status)
	return nil
}

func waitAvatar(ctx context.Context, client *HTTPClient, base string, settle time.Duration) (avatarView, error) {
	var v avatarView
	err := poll(ctx, settle, func() (bool, error) {
		if _, err := client.do(ctx, "GET", base+"/avatar", nil, &v); err != nil {
			return false, err
		}
		return !v.Processing, nil
	})
	return v, err
}

func waitAsset(ctx context.Context, client *HTTPClient, base string, settle time.Duration) (assetView, error) {
	var v assetView
	err := poll(ctx, settle, func() (bool, error) {
		if _, err := client.do(ctx, "GET", base+"/asset", nil, &v); err != nil {
			return false, err
		}
		return !v.Processing, nil
	})
	return v, err
}

// poll calls fn every pollInterval until it reports done or settle elapses.
func poll(ctx context.Context, settle time.Duration, fn func() (bool, error)) error {
	ctx, cancel := context.WithTimeout(ctx, settle)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		done, err := fn()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("pending submission did not resolve: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
