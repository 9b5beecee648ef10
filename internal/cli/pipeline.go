package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	service "github.com/okian/nexera/internal/app"
	"github.com/okian/nexera/internal/domain/asset"
	"github.com/okian/nexera/internal/domain/avatar"
	"github.com/okian/nexera/internal/domain/scene"
	"github.com/okian/nexera/pkg/logger"
	"github.com/spf13/cobra"
)

const pollInterval = 10 * time.Millisecond

var (
	assetDelayMS   int
	commandDelayMS int
	exampleName    string
)

var assetCmd = &cobra.Command{
	Use:   "asset <description>",
	Short: "Resolve a description to a catalog asset",
	Long: `Run the asset pipeline on a description: submit it, wait out the
configured processing delay and print the resolved entry with its scene.

Descriptions that name no catalog item resolve to a custom asset.`,
	Example: `  nexera asset "safety helmet"
  nexera asset --delay-ms 0 "a red fire extinguisher"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsset,
}

var commandCmd = &cobra.Command{
	Use:   "command [text]",
	Short: "Resolve a command to an avatar action",
	Long: `Run the avatar pipeline on a command: submit it, wait out the
configured processing delay and print the action with its explanation.

With --example, run one of the quick examples (walk, wave, point) instead.`,
	Example: `  nexera command "wave hello"
  nexera command --example point`,
	RunE: runCommand,
}

func init() {
	assetCmd.Flags().IntVar(&assetDelayMS, "delay-ms", -1, "Processing delay in milliseconds (-1 uses config)")
	commandCmd.Flags().IntVar(&commandDelayMS, "delay-ms", -1, "Processing delay in milliseconds (-1 uses config)")
	commandCmd.Flags().StringVar(&exampleName, "example", "", "Run a quick example by name")
}

type assetOutput struct {
	Input string      `json:"input"`
	Entry asset.Entry `json:"entry"`
	Scene scene.Group `json:"scene"`
	Steps []string    `json:"steps"`
}

type commandOutput struct {
	Command     string        `json:"command"`
	Action      avatar.Action `json:"action"`
	Explanation string        `json:"explanation"`
	Steps       []string      `json:"steps"`
}

func runAsset(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	input := strings.Join(args, " ")
	if asset.IsBlank(input) {
		return ErrBlankInput
	}

	delay := loadedConfig().AssetDelay()
	if assetDelayMS >= 0 {
		delay = time.Duration(assetDelayMS) * time.Millisecond
	}

	c := service.NewAssetController(
		service.WithDelay(delay),
		service.WithControllerLogger(logger.Named("asset")),
	)
	defer c.Close()

	if !c.Submit(ctx, input) {
		return fmt.Errorf("%w: %q", ErrRejected, input)
	}
	if err := waitIdle(ctx, func() bool { return c.Snapshot().Processing }); err != nil {
		return err
	}

	state := c.Snapshot()
	return printJSON(cmd.OutOrStdout(), assetOutput{
		Input: state.Input,
		Entry: *state.Entry,
		Scene: scene.ForAsset(*state.Entry),
		Steps: asset.PipelineSteps(),
	})
}

func runCommand(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	c := loadedConfig()

	delay := c.CommandDelay()
	if commandDelayMS >= 0 {
		delay = time.Duration(commandDelayMS) * time.Millisecond
	}
	ctrl := service.NewAvatarController(
		service.WithDelay(delay),
		service.WithExampleDelay(c.ExampleDelay()),
		service.WithControllerLogger(logger.Named("avatar")),
	)
	defer ctrl.Close()

	if exampleName != "" {
		ok, err := ctrl.RunExample(ctx, exampleName)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: example %q", ErrRejected, exampleName)
		}
	} else {
		input := strings.Join(args, " ")
		if avatar.IsBlank(input) {
			return ErrBlankInput
		}
		if !ctrl.Submit(ctx, input) {
			return fmt.Errorf("%w: %q", ErrRejected, input)
		}
	}
	if err := waitIdle(ctx, func() bool { return ctrl.Snapshot().Processing }); err != nil {
		return err
	}

	state := ctrl.Snapshot()
	return printJSON(cmd.OutOrStdout(), commandOutput{
		Command:     state.Command,
		Action:      state.Action,
		Explanation: state.Explanation,
		Steps:       avatar.PipelineSteps(),
	})
}

// waitIdle polls until processing reports false or ctx is done.
func waitIdle(ctx context.Context, processing func() bool) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for processing() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
