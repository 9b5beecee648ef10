package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/okian/nexera/internal/adapters/http/api"
	service "github.com/okian/nexera/internal/app"
	"github.com/okian/nexera/internal/config"
	"github.com/okian/nexera/internal/domain/avatar"
	"github.com/okian/nexera/internal/scenario"
	"github.com/okian/nexera/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// resetFlags restores every package-level flag to its default after t.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		logLevel, logFormat = "", ""
		cfg = nil
		serveAddr = ""
		assetDelayMS, commandDelayMS, exampleName = -1, -1, ""
		poseAction, poseT, poseFrames, poseStep, poseRig = string(avatar.ActionIdle), 0, 0, 1.0/60, false
		scenarioURL, scenarioSessions, scenarioVerbose = "http://localhost:9080", scenario.DefaultSessions, false
		scenarioTimeout, scenarioSettle = scenario.DefaultTimeout, scenario.DefaultSettle
	})
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	return cmd, &out
}

func TestRunAsset(t *testing.T) {
	resetFlags(t)
	assetDelayMS = 0

	cmd, out := newTestCmd()
	require.NoError(t, runAsset(cmd, []string{"Yellow", "HARD", "HAT", "please"}))

	var got assetOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "Yellow HARD HAT please", got.Input)
	assert.Equal(t, "hard hat", got.Entry.Key)
	assert.Equal(t, 1.2, got.Entry.Scale)
	assert.NotEmpty(t, got.Scene.Primitives)
	assert.Len(t, got.Steps, 6)
}

func TestRunAsset_Custom(t *testing.T) {
	resetFlags(t)
	assetDelayMS = 20

	cmd, out := newTestCmd()
	require.NoError(t, runAsset(cmd, []string{"ladder"}))

	var got assetOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "custom", got.Entry.Key)
	assert.Contains(t, got.Entry.Summary, "ladder")
}

func TestRunAsset_Blank(t *testing.T) {
	resetFlags(t)
	cmd, out := newTestCmd()
	err := runAsset(cmd, []string{"   "})
	assert.ErrorIs(t, err, ErrBlankInput)
	assert.Empty(t, out.String())
}

func TestRunAsset_Canceled(t *testing.T) {
	resetFlags(t)
	assetDelayMS = 10_000

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	cmd, _ := newTestCmd()
	cmd.SetContext(ctx)

	err := runAsset(cmd, []string{"hard hat"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunCommand(t *testing.T) {
	resetFlags(t)
	commandDelayMS = 0

	cmd, out := newTestCmd()
	require.NoError(t, runCommand(cmd, []string{"walk", "and", "wave"}))

	var got commandOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "walk and wave", got.Command)
	assert.Equal(t, avatar.ActionWalk, got.Action)
	assert.Equal(t, avatar.Explain(avatar.ActionWalk), got.Explanation)
	assert.Equal(t, avatar.PipelineSteps(), got.Steps)
}

func TestRunCommand_Example(t *testing.T) {
	resetFlags(t)
	exampleName = "point"

	cmd, out := newTestCmd()
	require.NoError(t, runCommand(cmd, nil))

	var got commandOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "point at screen", got.Command)
	assert.Equal(t, avatar.ActionPoint, got.Action)
}

func TestRunCommand_Errors(t *testing.T) {
	resetFlags(t)

	cmd, _ := newTestCmd()
	assert.ErrorIs(t, runCommand(cmd, nil), ErrBlankInput)

	exampleName = "dance"
	assert.ErrorIs(t, runCommand(cmd, nil), service.ErrUnknownExample)
}

func TestRunPose(t *testing.T) {
	resetFlags(t)
	poseAction = "walk"

	cmd, out := newTestCmd()
	require.NoError(t, runPose(cmd, nil))

	var got poseOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, avatar.ActionWalk, got.Action)
	assert.Equal(t, avatar.Pose(avatar.ActionWalk, 0), got.Pose)
	assert.Nil(t, got.Rig)
}

func TestRunPose_TrackAndRig(t *testing.T) {
	resetFlags(t)
	poseAction = "wave"

	cmd, out := newTestCmd()
	poseFrames = 5
	require.NoError(t, runPose(cmd, nil))

	var track trackOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &track))
	assert.Len(t, track.Frames, 5)
	assert.Equal(t, avatar.Track(avatar.ActionWave, 0, 1.0/60, 5), track.Frames)

	out.Reset()
	poseFrames = 0
	poseRig = true
	require.NoError(t, runPose(cmd, nil))

	var single poseOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &single))
	assert.NotNil(t, single.Rig)
}

func TestPoseActionFlagListsActions(t *testing.T) {
	usage := poseCmd.Flags().Lookup("action").Usage
	for _, a := range avatar.Actions() {
		assert.Contains(t, usage, string(a))
	}
}

func TestRunPose_Invalid(t *testing.T) {
	resetFlags(t)
	cmd, _ := newTestCmd()

	poseAction = "dance"
	assert.ErrorIs(t, runPose(cmd, nil), avatar.ErrUnknownAction)

	poseAction = "idle"
	poseFrames = -1
	assert.Error(t, runPose(cmd, nil))
}

func TestRootCommand(t *testing.T) {
	resetFlags(t)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"--log-format", "json", "--log-level", "debug", "pose", "--action", "safety", "--t", "1"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		require.NoError(t, logger.Init(logger.WithWriter(io.Discard)))
	})

	require.NoError(t, Execute(context.Background()))

	var got poseOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, avatar.ActionSafety, got.Action)
	assert.Equal(t, 1.0, got.T)
	require.NotNil(t, cfg)
	assert.Equal(t, config.New().Addr, cfg.Addr)
}

func TestRootCommand_BadLogLevel(t *testing.T) {
	resetFlags(t)

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--log-level", "loud", "pose"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		require.NoError(t, logger.Init(logger.WithWriter(io.Discard)))
	})

	assert.Error(t, Execute(context.Background()))
}

func TestServe(t *testing.T) {
	resetFlags(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	c := config.New()
	c.AssetDelayMS = 10
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, c, ln) }()

	base := "http://" + ln.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/catalog")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	for _, path := range []string{"/", "/api-docs", "/healthz"} {
		resp, err := http.Get(base + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunServe_BadAddr(t *testing.T) {
	resetFlags(t)
	serveAddr = "not-an-address"

	cmd, _ := newTestCmd()
	assert.Error(t, runServe(cmd, nil))
}

func TestRunScenario(t *testing.T) {
	resetFlags(t)

	svc := service.New(
		service.WithAssetDelay(20*time.Millisecond),
		service.WithCommandDelay(150*time.Millisecond),
		service.WithSessionExampleDelay(20*time.Millisecond),
	)
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	scenarioURL = srv.URL
	scenarioSessions = 2
	scenarioTimeout = 2 * time.Second
	scenarioSettle = 2 * time.Second

	cmd, out := newTestCmd()
	require.NoError(t, runScenario(cmd, nil))
	assert.Contains(t, out.String(), "failed: 0")
	assert.NotContains(t, out.String(), "FAIL")
}

func TestRunScenario_Unreachable(t *testing.T) {
	resetFlags(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	scenarioURL = srv.URL
	srv.Close()
	scenarioTimeout = time.Second

	cmd, _ := newTestCmd()
	err := runScenario(cmd, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, scenario.ErrChecksFailed))
}
