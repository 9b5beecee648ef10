package cli

import (
	"fmt"
	"strings"

	"github.com/okian/nexera/internal/domain/avatar"
	"github.com/okian/nexera/internal/domain/scene"
	"github.com/spf13/cobra"
)

var (
	poseAction string
	poseT      float64
	poseFrames int
	poseStep   float64
	poseRig    bool
)

var poseCmd = &cobra.Command{
	Use:   "pose",
	Short: "Evaluate the avatar pose for an action",
	Long: `Print the pose of an action at time t in seconds. With --frames,
print that many samples spaced --step seconds apart starting at t.`,
	Example: `  nexera pose --action walk --t 0.25
  nexera pose --action wave --frames 30 --step 0.033`,
	Args: cobra.NoArgs,
	RunE: runPose,
}

func init() {
	names := make([]string, 0, len(avatar.Actions()))
	for _, a := range avatar.Actions() {
		names = append(names, string(a))
	}
	poseCmd.Flags().StringVar(&poseAction, "action", string(avatar.ActionIdle), "Action: "+strings.Join(names, ", "))
	poseCmd.Flags().Float64Var(&poseT, "t", 0, "Time in seconds")
	poseCmd.Flags().IntVar(&poseFrames, "frames", 0, "Number of frames to sample (0 prints a single pose)")
	poseCmd.Flags().Float64Var(&poseStep, "step", 1.0/60, "Seconds between frames")
	poseCmd.Flags().BoolVar(&poseRig, "rig", false, "Include the posed avatar rig for a single pose")
}

type poseOutput struct {
	Action avatar.Action `json:"action"`
	T      float64       `json:"t"`
	Pose   avatar.Sample `json:"pose"`
	Rig    *scene.Rig    `json:"rig,omitempty"`
}

type trackOutput struct {
	Action avatar.Action  `json:"action"`
	Frames []avatar.Frame `json:"frames"`
}

func runPose(cmd *cobra.Command, _ []string) error {
	action, err := avatar.ParseAction(poseAction)
	if err != nil {
		return err
	}

	if poseFrames < 0 {
		return fmt.Errorf("frames must not be negative: %d", poseFrames)
	}
	if poseFrames > 0 {
		return printJSON(cmd.OutOrStdout(), trackOutput{
			Action: action,
			Frames: avatar.Track(action, poseT, poseStep, poseFrames),
		})
	}

	out := poseOutput{Action: action, T: poseT, Pose: avatar.Pose(action, poseT)}
	if poseRig {
		rig := scene.Apply(scene.AvatarRig(), out.Pose)
		out.Rig = &rig
	}
	return printJSON(cmd.OutOrStdout(), out)
}
